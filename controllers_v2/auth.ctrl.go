package v2controllers

import (
	"net/http"

	"github.com/getAlby/votehub.go/lib/responses"
	"github.com/getAlby/votehub.go/lib/service"
	"github.com/getAlby/votehub.go/lib/tokens"
	"github.com/labstack/echo/v4"
)

// AuthController : Auth controller struct
type AuthController struct {
	svc *service.RegistryService
}

func NewAuthController(svc *service.RegistryService) *AuthController {
	return &AuthController{svc: svc}
}

type AuthRequestBody struct {
	Account string `json:"account" validate:"required,max=256"`
}

type AuthResponseBody struct {
	AccessToken string `json:"access_token"`
}

// Auth godoc
// @Summary      Issue an access token
// @Description  Issues an access token carrying the given account identity. Requires the admin token.
// @Accept       json
// @Produce      json
// @Tags         Auth
// @Param        AuthRequestBody  body      AuthRequestBody  true  "Account identity"
// @Success      200              {object}  AuthResponseBody
// @Failure      400              {object}  responses.ErrorResponse
// @Failure      401              {object}  responses.ErrorResponse
// @Failure      500              {object}  responses.ErrorResponse
// @Router       /v2/auth [post]
// @Security     AdminToken
func (controller *AuthController) Auth(c echo.Context) error {
	var body AuthRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load auth request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid auth request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	accessToken, err := tokens.GenerateAccessToken(controller.svc.Config.JWTSecret, controller.svc.Config.JWTAccessTokenExpiry, body.Account)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &AuthResponseBody{
		AccessToken: accessToken,
	})
}
