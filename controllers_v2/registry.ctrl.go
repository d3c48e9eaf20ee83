package v2controllers

import (
	"bytes"
	"net/http"

	"github.com/getAlby/votehub.go/lib/registry"
	"github.com/getAlby/votehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// RegistryController : Registry info controller struct
type RegistryController struct {
	svc *service.RegistryService
}

func NewRegistryController(svc *service.RegistryService) *RegistryController {
	return &RegistryController{svc: svc}
}

type RegistryResponseBody struct {
	Owner      string `json:"owner"`
	EventCount int    `json:"event_count"`
}

// GetRegistry godoc
// @Summary      Registry info
// @Description  Returns the registry owner and the number of events
// @Accept       json
// @Produce      json
// @Tags         Registry
// @Success      200  {object}  RegistryResponseBody
// @Router       /v2/registry [get]
func (controller *RegistryController) GetRegistry(c echo.Context) error {
	return c.JSON(http.StatusOK, &RegistryResponseBody{
		Owner:      controller.svc.Owner(),
		EventCount: controller.svc.EventCount(),
	})
}

// GetSnapshot godoc
// @Summary      Download a registry snapshot
// @Description  Returns the full registry state as a versioned snapshot document
// @Produce      json
// @Tags         Registry
// @Success      200  {object}  registry.Snapshot
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/registry/snapshot [get]
func (controller *RegistryController) GetSnapshot(c echo.Context) error {
	var buf bytes.Buffer
	if err := registry.EncodeSnapshot(&buf, controller.svc.Snapshot()); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="registry-snapshot.json"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, buf.Bytes())
}
