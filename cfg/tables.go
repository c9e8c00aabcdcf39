package cfg

// Table bodies passed to CREATE TABLE IF NOT EXISTS on startup.
const (
	AccountTable = `
	wallet VARCHAR(128) NOT NULL PRIMARY KEY,
	balance DECIMAL(20,6) NOT NULL DEFAULT 0,
	referral_code VARCHAR(16) NOT NULL,
	referrer_code VARCHAR(16) DEFAULT NULL,
	referral_bonus_accrued DECIMAL(20,6) NOT NULL DEFAULT 0,
	created_at BIGINT NOT NULL,
	UNIQUE KEY referral_code_idx (referral_code)`

	SessionTable = `
	id CHAR(36) NOT NULL PRIMARY KEY,
	wallet VARCHAR(128) NOT NULL,
	status VARCHAR(16) NOT NULL DEFAULT 'mining',
	start_time BIGINT NOT NULL,
	planned_duration BIGINT NOT NULL,
	multiplier INT NOT NULL DEFAULT 1,
	multiplier_set_at BIGINT NOT NULL,
	carried_balance DECIMAL(20,6) NOT NULL DEFAULT 0,
	settled_amount DECIMAL(20,6) DEFAULT NULL,
	settled_at BIGINT DEFAULT NULL,
	KEY wallet_status_idx (wallet, status),
	KEY wallet_start_idx (wallet, start_time)`

	ReferralBonusTable = `
	id CHAR(36) NOT NULL PRIMARY KEY,
	session_id CHAR(36) NOT NULL,
	referrer_wallet VARCHAR(128) NOT NULL,
	referred_wallet VARCHAR(128) NOT NULL,
	bonus_amount DECIMAL(20,6) NOT NULL,
	settlement_amount DECIMAL(20,6) NOT NULL,
	created_at BIGINT NOT NULL,
	UNIQUE KEY session_idx (session_id),
	KEY referrer_created_idx (referrer_wallet, created_at)`

	AdRewardGrantTable = `
	id CHAR(36) NOT NULL PRIMARY KEY,
	wallet VARCHAR(128) NOT NULL,
	amount DECIMAL(20,6) NOT NULL,
	created_at BIGINT NOT NULL,
	KEY wallet_created_idx (wallet, created_at)`

	NotificationTable = `
	id CHAR(36) NOT NULL PRIMARY KEY,
	wallet VARCHAR(128) NOT NULL,
	ntype VARCHAR(32) NOT NULL,
	title VARCHAR(255) NOT NULL,
	message TEXT NOT NULL,
	is_read BOOL NOT NULL DEFAULT FALSE,
	created_at BIGINT NOT NULL,
	KEY wallet_created_idx (wallet, created_at)`

	ActivityTable = `
	id CHAR(36) NOT NULL PRIMARY KEY,
	wallet VARCHAR(128) NOT NULL,
	atype VARCHAR(32) NOT NULL,
	message VARCHAR(255) NOT NULL,
	created_at BIGINT NOT NULL,
	KEY created_idx (created_at)`
)
