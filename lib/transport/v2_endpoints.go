package transport

import (
	v2controllers "github.com/getAlby/votehub.go/controllers_v2"
	"github.com/getAlby/votehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterV2Endpoints(svc *service.RegistryService, e *echo.Echo, secured *echo.Group, securedWithStrictRateLimit *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	e.GET("/v2/health", v2controllers.NewHealthController().Check)
	//issuing identities requires the admin token
	if svc.Config.AdminToken != "" {
		e.POST("/v2/auth", v2controllers.NewAuthController(svc).Auth, strictRateLimitMiddleware, adminMw, logMw)
	}

	eventCtrl := v2controllers.NewEventController(svc)
	voteCtrl := v2controllers.NewVoteController(svc)
	registryCtrl := v2controllers.NewRegistryController(svc)

	e.GET("/v2/registry", registryCtrl.GetRegistry, logMw)
	e.GET("/v2/registry/snapshot", registryCtrl.GetSnapshot, logMw)
	e.GET("/v2/events", eventCtrl.ListEvents, logMw)
	e.GET("/v2/events/count", eventCtrl.EventCount, logMw)
	e.GET("/v2/events/:id", eventCtrl.GetEvent, logMw)
	e.GET("/v2/events/:id/votes", voteCtrl.GetTotalVotes, logMw)

	secured.POST("/v2/events", eventCtrl.AddEvent)
	securedWithStrictRateLimit.POST("/v2/events/:id/votes", voteCtrl.AddVote)
}
