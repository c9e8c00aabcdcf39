package model

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TotalSignups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "miner_signups_total",
		Help: "Count of created accounts",
	})

	SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "miner_sessions_started_total",
		Help: "Count of opened mining sessions",
	})

	SessionsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "miner_sessions_settled_total",
		Help: "Count of settled mining sessions",
	},
		[]string{"trigger"},
	)

	ReferralPayouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "miner_referral_payouts_total",
		Help: "Count of referral bonus payouts",
	})

	AdRewardClaims = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "miner_ad_reward_claims_total",
		Help: "Count of ad reward claim attempts",
	},
		[]string{"result"},
	)

	DanglingReferralCodes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "miner_dangling_referral_codes_total",
		Help: "Count of settlements whose referrer code resolved to nothing",
	})
)

// Label values for SessionsSettled.
const (
	SettleTriggerClaim = "claim"
	SettleTriggerStop  = "stop"
	SettleTriggerSweep = "sweep"
)
