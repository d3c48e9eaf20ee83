package v2controllers

import (
	"errors"
	"net/http"

	"github.com/getAlby/votehub.go/lib/registry"
	"github.com/getAlby/votehub.go/lib/responses"
	"github.com/getAlby/votehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// EventController : Add event controller struct
type EventController struct {
	svc *service.RegistryService
}

func NewEventController(svc *service.RegistryService) *EventController {
	return &EventController{svc: svc}
}

type AddEventRequestBody struct {
	Title           string           `json:"title"`
	EstimatedBudget *registry.Budget `json:"estimated_budget" validate:"required" swaggertype:"string" example:"1000000"`
	Description     string           `json:"description"`
}

type EventCountResponseBody struct {
	Count int `json:"count"`
}

// AddEvent godoc
// @Summary      Add an event
// @Description  Appends a new event to the registry. The caller becomes the creator.
// @Accept       json
// @Produce      json
// @Tags         Event
// @Param        event  body      AddEventRequestBody  true  "Add Event"
// @Success      200    {object}  registry.Event
// @Failure      400    {object}  responses.ErrorResponse
// @Failure      401    {object}  responses.ErrorResponse
// @Failure      500    {object}  responses.ErrorResponse
// @Router       /v2/events [post]
// @Security     OAuth2Password
func (controller *EventController) AddEvent(c echo.Context) error {
	var body AddEventRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load add event request body: %v", err)
		if errors.Is(err, registry.ErrInvalidBudget) {
			return c.JSON(http.StatusBadRequest, responses.InvalidBudgetError)
		}
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid add event request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	event, err := controller.svc.AddEvent(c.Request().Context(), callContext(c), body.Title, *body.EstimatedBudget, body.Description)
	if err != nil {
		c.Logger().Errorf("Failed to add event: %v", err)
		resp := responses.RegistryError(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	return c.JSON(http.StatusOK, &event)
}

// ListEvents godoc
// @Summary      List events
// @Description  Returns every event in creation order
// @Accept       json
// @Produce      json
// @Tags         Event
// @Success      200  {object}  []registry.Event
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/events [get]
func (controller *EventController) ListEvents(c echo.Context) error {
	return c.JSON(http.StatusOK, controller.svc.ListEvents())
}

// EventCount godoc
// @Summary      Count events
// @Description  Returns the number of events in the registry
// @Accept       json
// @Produce      json
// @Tags         Event
// @Success      200  {object}  EventCountResponseBody
// @Router       /v2/events/count [get]
func (controller *EventController) EventCount(c echo.Context) error {
	return c.JSON(http.StatusOK, &EventCountResponseBody{
		Count: controller.svc.EventCount(),
	})
}

// GetEvent godoc
// @Summary      Get an event
// @Description  Returns a single event by id
// @Accept       json
// @Produce      json
// @Tags         Event
// @Param        id   path      int  true  "Event id"
// @Success      200  {object}  registry.Event
// @Failure      400  {object}  responses.ErrorResponse  "id is not an integer or does not fit in int64"
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/events/{id} [get]
func (controller *EventController) GetEvent(c echo.Context) error {
	id, err := eventIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	event, err := controller.svc.GetEvent(id)
	if err != nil {
		resp := responses.RegistryError(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}
	return c.JSON(http.StatusOK, &event)
}
