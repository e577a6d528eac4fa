package match

import (
	"time"

	"github.com/gin-gonic/gin"

	mw "github.com/DhavalSuthar-24/crease/internal/middleware"
	"github.com/DhavalSuthar-24/crease/pkg/rmiddleware"
)

// RouteConfig carries what the match routes need from the application config.
type RouteConfig struct {
	JWTSecret          string
	RateLimitPerMinute int
}

// MatchRoutes sets up all match-related routes.
func MatchRoutes(router *gin.RouterGroup, service *MatchService, cfg RouteConfig) {
	matchController := NewMatchController(service)

	public := router.Group("/matches")
	{
		public.GET("", matchController.ListMatches)
		public.GET("/:id", matchController.GetMatch)
		public.GET("/:id/bowler-rotation", matchController.GetBowlerRotation)
	}

	scorers := router.Group("/matches")
	scorers.Use(mw.AuthMiddleware(cfg.JWTSecret), rmiddleware.ScorerOrAdminMiddleware())
	{
		scorers.POST("", matchController.CreateMatch)
		scorers.POST("/:id/balls", mw.RateLimitMiddleware(cfg.RateLimitPerMinute, time.Minute), matchController.ProcessBall)
		scorers.POST("/:id/overs", matchController.StartNewOver)
		scorers.PUT("/:id/batsmen", matchController.UpdateBatsmen)
	}

	admin := router.Group("/matches")
	admin.Use(mw.AuthMiddleware(cfg.JWTSecret), rmiddleware.AdminMiddleware())
	{
		admin.PATCH("/:id", matchController.UpdateMatch)
		admin.POST("/:id/abandon", matchController.AbandonMatch)
	}
}
