package assets

import (
	"encoding/json"
	"os"

	"github.com/shopspring/decimal"
)

// EngineSettings holds the tunable reward parameters. They live in a JSON
// file next to the binary so an operator can adjust the economy without a
// rebuild; missing fields are backfilled with defaults and written back.
type EngineSettings struct {
	BaseRate      decimal.Decimal `json:"base_rate"`
	MaxMultiplier int             `json:"max_multiplier"`

	ReferralBonusRate       decimal.Decimal `json:"referral_bonus_rate"`
	ReferralCodeOwnerReward decimal.Decimal `json:"referral_code_owner_reward"`
	ReferralCodeUserReward  decimal.Decimal `json:"referral_code_user_reward"`

	AdRewardOptions  []int64 `json:"ad_reward_options"`
	MaxDailyAdClaims int     `json:"max_daily_ad_claims"`

	SweepGraceHours int `json:"sweep_grace_hours"`
}

var Settings *EngineSettings

var settingsPath string

func UploadEngineSettings(path string) {
	settingsPath = path

	settings := &EngineSettings{}
	data, err := os.ReadFile(path)
	if err == nil {
		_ = json.Unmarshal(data, settings)
	}

	validateSettings(settings)

	Settings = settings
	SaveEngineSettings()
}

func validateSettings(settings *EngineSettings) {
	if settings.BaseRate.Sign() <= 0 {
		settings.BaseRate = decimal.NewFromFloat(0.01)
	}

	if settings.MaxMultiplier < 1 {
		settings.MaxMultiplier = 6
	}

	if settings.ReferralBonusRate.Sign() <= 0 {
		settings.ReferralBonusRate = decimal.NewFromFloat(0.1)
	}

	if settings.ReferralCodeOwnerReward.Sign() <= 0 {
		settings.ReferralCodeOwnerReward = decimal.NewFromInt(200)
	}

	if settings.ReferralCodeUserReward.Sign() <= 0 {
		settings.ReferralCodeUserReward = decimal.NewFromInt(100)
	}

	if len(settings.AdRewardOptions) == 0 {
		settings.AdRewardOptions = []int64{10, 20, 30, 40, 50, 60}
	}

	if settings.MaxDailyAdClaims < 1 {
		settings.MaxDailyAdClaims = 6
	}

	if settings.SweepGraceHours < 1 {
		settings.SweepGraceHours = 24
	}
}

// UpdateEngineSettings validates and applies new parameters in place, so
// every holder of the settings pointer sees them, then persists the file.
func UpdateEngineSettings(next *EngineSettings) {
	validateSettings(next)
	*Settings = *next
	SaveEngineSettings()
}

func SaveEngineSettings() {
	data, err := json.MarshalIndent(Settings, "", "  ")
	if err != nil {
		panic(err)
	}

	if err = os.WriteFile(settingsPath, data, 0600); err != nil {
		panic(err)
	}
}
