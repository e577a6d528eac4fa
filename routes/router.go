package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/DhavalSuthar-24/crease/config"
	"github.com/DhavalSuthar-24/crease/internal/live"
	"github.com/DhavalSuthar-24/crease/internal/match"
	pv "github.com/DhavalSuthar-24/crease/pkg/validator"
)

func SetupRoutes(cfg *config.Config, service *match.MatchService, ws *live.WebSocketHandler) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Binding errors report json field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		pv.Configure(v)
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "crease",
			"docs":    "/swagger/index.html",
		})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	match.MatchRoutes(api, service, match.RouteConfig{
		JWTSecret:          cfg.JWT.AccessTokenSecret,
		RateLimitPerMinute: cfg.Scoring.RateLimitPerMinute,
	})

	// Live scorecards
	r.GET("/ws/matches/:id", ws.ServeWs)

	return r
}
