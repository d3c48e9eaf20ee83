package tokens

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/getAlby/votehub.go/common"
	"github.com/getAlby/votehub.go/lib/responses"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

type jwtCustomClaims struct {
	Account string `json:"account"`

	jwt.StandardClaims
}

// GenerateAccessToken : Generate Access Token for an account identity
func GenerateAccessToken(secret []byte, expiryInSeconds int, account string) (string, error) {
	claims := &jwtCustomClaims{
		Account: account,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Second * time.Duration(expiryInSeconds)).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	t, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return t, nil
}

// ParseAccessToken returns the account identity of a valid token.
func ParseAccessToken(secret []byte, tokenString string) (string, error) {
	claims := &jwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected Signing Method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Account == "" {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Account, nil
}

// Middleware authenticates bearer tokens and stores the caller identity
// on the echo context.
func Middleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, found := strings.CutPrefix(auth, "Bearer ")
			if !found || tokenString == "" {
				return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
			}
			account, err := ParseAccessToken(secret, tokenString)
			if err != nil {
				c.Logger().Debugf("Rejected access token: %v", err)
				return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
			}
			c.Set(common.CallerContextKey, account)
			return next(c)
		}
	}
}
