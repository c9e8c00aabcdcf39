package server

import (
	"net/http"

	"github.com/omkarchillalndss/cryptominerpp/assets"
	"github.com/omkarchillalndss/cryptominerpp/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type walletRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
}

type startSessionRequest struct {
	WalletAddress          string `json:"walletAddress" binding:"required"`
	PlannedDurationSeconds int64  `json:"plannedDurationSeconds" binding:"required"`
	Multiplier             int    `json:"multiplier"`
}

type applyReferralRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
	ReferralCode  string `json:"referralCode" binding:"required"`
}

func (s *Server) signup(c *gin.Context) {
	var req walletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "walletAddress required"})
		return
	}

	account, created, err := s.engine.Signup(req.WalletAddress)
	if err != nil {
		s.respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, account)
}

func (s *Server) getUser(c *gin.Context) {
	view, err := s.engine.GetUser(c.Param("wallet"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (s *Server) startSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "walletAddress & plannedDurationSeconds required"})
		return
	}

	session, err := s.engine.StartSession(req.WalletAddress, req.PlannedDurationSeconds, req.Multiplier)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (s *Server) upgradeMultiplier(c *gin.Context) {
	var req walletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "walletAddress required"})
		return
	}

	multiplier, err := s.engine.UpgradeMultiplier(req.WalletAddress)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"multiplier": multiplier})
}

func (s *Server) stopSession(c *gin.Context) {
	var req walletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "walletAddress required"})
		return
	}

	if err := s.engine.StopSession(req.WalletAddress); err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) claimSession(c *gin.Context) {
	var req walletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "walletAddress required"})
		return
	}

	receipt, err := s.engine.ClaimSession(req.WalletAddress, c.GetHeader("Idempotency-Key"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"awarded":    receipt.Awarded,
		"newBalance": receipt.NewBalance,
	})
}

func (s *Server) currentSession(c *gin.Context) {
	view, err := s.engine.CurrentSession(c.Param("wallet"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (s *Server) applyReferralCode(c *gin.Context) {
	var req applyReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "walletAddress & referralCode required"})
		return
	}

	application, err := s.engine.ApplyReferralCode(req.WalletAddress, req.ReferralCode)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

func (s *Server) referralStats(c *gin.Context) {
	stats, err := s.engine.ReferralStats(c.Param("wallet"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (s *Server) claimAdReward(c *gin.Context) {
	var req walletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "walletAddress required"})
		return
	}

	result, err := s.engine.ClaimAdReward(req.WalletAddress, c.GetHeader("Idempotency-Key"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) adRewardStatus(c *gin.Context) {
	status, err := s.engine.AdRewardStatus(c.Param("wallet"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (s *Server) leaderboard(c *gin.Context) {
	entries, err := s.engine.Leaderboard()
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (s *Server) notifications(c *gin.Context) {
	notifications, err := s.engine.Notifications(c.Param("wallet"), 50)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (s *Server) markNotificationsRead(c *gin.Context) {
	if err := s.engine.MarkNotificationsRead(c.Param("wallet")); err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) adminActivity(c *gin.Context) {
	activities, err := s.engine.RecentActivity(50)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, activities)
}

func (s *Server) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, assets.Settings)
}

func (s *Server) updateConfig(c *gin.Context) {
	// Start from the current values so omitted fields stay untouched.
	next := *assets.Settings
	if err := c.ShouldBindJSON(&next); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed settings payload"})
		return
	}

	assets.UpdateEngineSettings(&next)
	s.logger.Info("engine settings updated")

	c.JSON(http.StatusOK, assets.Settings)
}

func (s *Server) dashboardStats(c *gin.Context) {
	stats, err := s.engine.DashboardStats()
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (s *Server) respondError(c *gin.Context, err error) {
	var limitErr *model.DailyLimitError
	if errors.As(err, &limitErr) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"message":      "Daily limit reached",
			"claimedCount": limitErr.ClaimedCount,
			"maxClaims":    limitErr.MaxClaims,
			"resetAt":      limitErr.ResetAt,
		})
		return
	}

	switch {
	case errors.Is(err, model.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, model.ErrNoActiveSession):
		c.JSON(http.StatusNotFound, gin.H{"message": "No active session"})
	case errors.Is(err, model.ErrInvalidReferralCode):
		c.JSON(http.StatusNotFound, gin.H{"message": "Invalid referral code"})
	case errors.Is(err, model.ErrSessionAlreadyOpen):
		c.JSON(http.StatusConflict, gin.H{"message": "Session already open"})
	case errors.Is(err, model.ErrInvalidDuration):
		c.JSON(http.StatusBadRequest, gin.H{"message": "plannedDurationSeconds must be positive"})
	case errors.Is(err, model.ErrReferralCodeUsed):
		c.JSON(http.StatusBadRequest, gin.H{"message": "You have already used a referral code"})
	case errors.Is(err, model.ErrOwnReferralCode):
		c.JSON(http.StatusBadRequest, gin.H{"message": "You cannot use your own referral code"})
	default:
		s.logger.Error("request failed: %s", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Temporary failure, please retry"})
	}
}
