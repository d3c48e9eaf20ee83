package v2controllers

import (
	"net/http"

	"github.com/getAlby/votehub.go/lib/responses"
	"github.com/getAlby/votehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// VoteController : Add vote controller struct
type VoteController struct {
	svc *service.RegistryService
}

func NewVoteController(svc *service.RegistryService) *VoteController {
	return &VoteController{svc: svc}
}

type AddVoteResponseBody struct {
	EventID int64  `json:"event_id"`
	Voter   string `json:"voter"`
}

type TotalVotesResponseBody struct {
	EventID    int64 `json:"event_id"`
	TotalVotes int64 `json:"total_votes"`
}

// AddVote godoc
// @Summary      Vote for an event
// @Description  Records one vote by the caller. Repeated votes by the same caller are counted.
// @Accept       json
// @Produce      json
// @Tags         Vote
// @Param        id   path      int  true  "Event id"
// @Success      200  {object}  AddVoteResponseBody
// @Failure      400  {object}  responses.ErrorResponse  "id is not an integer or does not fit in int64"
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/events/{id}/votes [post]
// @Security     OAuth2Password
func (controller *VoteController) AddVote(c echo.Context) error {
	id, err := eventIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	call := callContext(c)
	err = controller.svc.AddVote(c.Request().Context(), call, id)
	if err != nil {
		c.Logger().Errorf("Failed to add vote for event %d: %v", id, err)
		resp := responses.RegistryError(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}
	return c.JSON(http.StatusOK, &AddVoteResponseBody{
		EventID: id,
		Voter:   call.Caller,
	})
}

// GetTotalVotes godoc
// @Summary      Get the vote count of an event
// @Accept       json
// @Produce      json
// @Tags         Vote
// @Param        id   path      int  true  "Event id"
// @Success      200  {object}  TotalVotesResponseBody
// @Failure      400  {object}  responses.ErrorResponse  "id is not an integer or does not fit in int64"
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/events/{id}/votes [get]
func (controller *VoteController) GetTotalVotes(c echo.Context) error {
	id, err := eventIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	total, err := controller.svc.GetTotalVotes(id)
	if err != nil {
		resp := responses.RegistryError(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}
	return c.JSON(http.StatusOK, &TotalVotesResponseBody{
		EventID:    id,
		TotalVotes: total,
	})
}
