package server

import (
	"github.com/omkarchillalndss/cryptominerpp/log"
	"github.com/omkarchillalndss/cryptominerpp/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	engine *services.Engine
	logger log.Logger
}

func NewServer(engine *services.Engine, logger log.Logger) *Server {
	return &Server{
		engine: engine,
		logger: logger,
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(s.requestLogger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/users/signup", s.signup)
		api.GET("/users/:wallet", s.getUser)

		api.POST("/mining/start", s.startSession)
		api.POST("/mining/upgrade", s.upgradeMultiplier)
		api.POST("/mining/stop", s.stopSession)
		api.POST("/mining/claim", s.claimSession)
		api.GET("/mining/current/:wallet", s.currentSession)

		api.POST("/referral/apply", s.applyReferralCode)
		api.GET("/referral/:wallet", s.referralStats)

		api.POST("/ads/claim", s.claimAdReward)
		api.GET("/ads/status/:wallet", s.adRewardStatus)

		api.GET("/leaderboard", s.leaderboard)

		api.GET("/notifications/:wallet", s.notifications)
		api.POST("/notifications/:wallet/read", s.markNotificationsRead)

		api.GET("/admin/stats", s.dashboardStats)
		api.GET("/admin/activity", s.adminActivity)
		api.GET("/admin/config", s.getConfig)
		api.PUT("/admin/config", s.updateConfig)
	}

	return router
}
