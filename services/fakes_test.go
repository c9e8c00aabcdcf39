package services

import (
	"sort"
	"sync"
	"time"

	"github.com/omkarchillalndss/cryptominerpp/assets"
	"github.com/omkarchillalndss/cryptominerpp/db"
	"github.com/omkarchillalndss/cryptominerpp/model"

	"github.com/shopspring/decimal"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

// memStore backs every store interface with in-process maps, mirroring the
// conditional-update semantics of the MySQL layer.
type memStore struct {
	mu            sync.Mutex
	accounts      map[string]*model.Account
	sessions      map[string]*model.Session
	bonuses       map[string]*model.ReferralBonusRecord
	grants        []*model.AdRewardGrant
	notifications []*model.Notification
	receipts      map[string]*model.ClaimReceipt
	adReceipts    map[string]*model.AdRewardReceipt
	activities    []*model.Activity
}

func newMemStore() *memStore {
	return &memStore{
		accounts:   make(map[string]*model.Account),
		sessions:   make(map[string]*model.Session),
		bonuses:    make(map[string]*model.ReferralBonusRecord),
		receipts:   make(map[string]*model.ClaimReceipt),
		adReceipts: make(map[string]*model.AdRewardReceipt),
	}
}

func (m *memStore) Create(account *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *account
	m.accounts[account.Wallet] = &clone
	return nil
}

func (m *memStore) GetByWallet(wallet string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[wallet]
	if !ok {
		return nil, model.ErrUserNotFound
	}

	clone := *account
	return &clone, nil
}

func (m *memStore) GetByReferralCode(code string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, account := range m.accounts {
		if account.ReferralCode == code {
			clone := *account
			return &clone, nil
		}
	}

	return nil, model.ErrUserNotFound
}

func (m *memStore) ApplyReferral(wallet, code string, userReward, ownerReward decimal.Decimal) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[wallet]
	if !ok {
		return decimal.Zero, model.ErrUserNotFound
	}
	if account.ReferrerCode != "" {
		return decimal.Zero, model.ErrReferralCodeUsed
	}

	for _, owner := range m.accounts {
		if owner.ReferralCode == code {
			account.ReferrerCode = code
			account.Balance = account.Balance.Add(userReward)
			owner.Balance = owner.Balance.Add(ownerReward)
			owner.ReferralBonusAccrued = owner.ReferralBonusAccrued.Add(ownerReward)
			return account.Balance, nil
		}
	}

	return decimal.Zero, model.ErrUserNotFound
}

func (m *memStore) CountReferrals(code string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, account := range m.accounts {
		if account.ReferrerCode == code {
			count++
		}
	}
	return count, nil
}

func (m *memStore) Leaderboard(limit int) ([]*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	accounts := make([]*model.Account, 0, len(m.accounts))
	for _, account := range m.accounts {
		clone := *account
		accounts = append(accounts, &clone)
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Balance.GreaterThan(accounts[j].Balance)
	})

	if len(accounts) > limit {
		accounts = accounts[:limit]
	}
	return accounts, nil
}

func (m *memStore) createSession(session *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *session
	m.sessions[session.ID] = &clone
	return nil
}

func (m *memStore) GetOpen(wallet string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, session := range m.sessions {
		if session.Wallet == wallet && session.Status == model.StatusMining {
			clone := *session
			return &clone, nil
		}
	}

	return nil, model.ErrNoActiveSession
}

func (m *memStore) UpgradeMultiplier(wallet string, max int, now int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, session := range m.sessions {
		if session.Wallet == wallet && session.Status == model.StatusMining {
			if session.Multiplier < max {
				session.Multiplier++
			}
			session.MultiplierSetAt = now
			return session.Multiplier, nil
		}
	}

	return 0, model.ErrNoActiveSession
}

func (m *memStore) SettleAndCredit(sessionID, wallet string, awarded decimal.Decimal, settledAt int64) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok || session.Status != model.StatusMining {
		return decimal.Zero, model.ErrNoActiveSession
	}

	session.Status = model.StatusSettled
	session.SettledAmount = awarded
	session.SettledAt = settledAt

	account := m.accounts[wallet]
	account.Balance = account.Balance.Add(awarded)
	return account.Balance, nil
}

func (m *memStore) Abandon(sessionID string, amount decimal.Decimal, settledAt int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok || session.Status != model.StatusMining {
		return model.ErrNoActiveSession
	}

	session.Status = model.StatusSettled
	session.SettledAmount = amount
	session.SettledAt = settledAt
	return nil
}

func (m *memStore) ExpiredOpen(before int64, limit int) ([]*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expired []*model.Session
	for _, session := range m.sessions {
		if session.Status == model.StatusMining && session.Deadline() < before {
			clone := *session
			expired = append(expired, &clone)
		}
		if len(expired) == limit {
			break
		}
	}
	return expired, nil
}

func (m *memStore) PayOut(record *model.ReferralBonusRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bonuses[record.SessionID]; ok {
		return model.ErrBonusAlreadyPaid
	}

	clone := *record
	m.bonuses[record.SessionID] = &clone

	referrer := m.accounts[record.ReferrerWallet]
	referrer.Balance = referrer.Balance.Add(record.BonusAmount)
	referrer.ReferralBonusAccrued = referrer.ReferralBonusAccrued.Add(record.BonusAmount)
	return nil
}

func (m *memStore) ListByReferrer(wallet string, limit int) ([]*model.ReferralBonusRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var records []*model.ReferralBonusRecord
	for _, record := range m.bonuses {
		if record.ReferrerWallet == wallet {
			clone := *record
			records = append(records, &clone)
		}
		if len(records) == limit {
			break
		}
	}
	return records, nil
}

func (m *memStore) CountInWindow(wallet string, from, to int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, grant := range m.grants {
		if grant.Wallet == wallet && grant.CreatedAt >= from && grant.CreatedAt < to {
			count++
		}
	}
	return count, nil
}

func (m *memStore) Grant(grant *model.AdRewardGrant) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[grant.Wallet]
	if !ok {
		return decimal.Zero, model.ErrUserNotFound
	}

	clone := *grant
	m.grants = append(m.grants, &clone)
	account.Balance = account.Balance.Add(grant.Amount)
	return account.Balance, nil
}

func (m *memStore) Append(n *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *n
	m.notifications = append(m.notifications, &clone)
	return nil
}

func (m *memStore) ListByWallet(wallet string, limit int) ([]*model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var notifications []*model.Notification
	for _, n := range m.notifications {
		if n.Wallet == wallet {
			clone := *n
			notifications = append(notifications, &clone)
		}
		if len(notifications) == limit {
			break
		}
	}
	return notifications, nil
}

func (m *memStore) MarkAllRead(wallet string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, n := range m.notifications {
		if n.Wallet == wallet {
			n.IsRead = true
		}
	}
	return nil
}

func (m *memStore) SaveClaimReceipt(key string, receipt *model.ClaimReceipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *receipt
	m.receipts[key] = &clone
	return nil
}

func (m *memStore) GetClaimReceipt(key string) (*model.ClaimReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	receipt, ok := m.receipts[key]
	if !ok {
		return nil, nil
	}

	clone := *receipt
	return &clone, nil
}

func (m *memStore) SaveAdRewardReceipt(key string, receipt *model.AdRewardReceipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *receipt
	m.adReceipts[key] = &clone
	return nil
}

func (m *memStore) GetAdRewardReceipt(key string) (*model.AdRewardReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	receipt, ok := m.adReceipts[key]
	if !ok {
		return nil, nil
	}

	clone := *receipt
	return &clone, nil
}

func (m *memStore) AppendActivity(a *model.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *a
	m.activities = append(m.activities, &clone)
	return nil
}

func (m *memStore) Recent(limit int) ([]*model.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var activities []*model.Activity
	for i := len(m.activities) - 1; i >= 0 && len(activities) < limit; i-- {
		clone := *m.activities[i]
		activities = append(activities, &clone)
	}
	return activities, nil
}

func (m *memStore) Collect() (*db.DashboardStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := &db.DashboardStats{
		TotalUsers:      len(m.accounts),
		ReferralPayouts: len(m.bonuses),
		AdRewardGrants:  len(m.grants),
	}

	for _, session := range m.sessions {
		if session.Status == model.StatusMining {
			stats.OpenSessions++
		} else {
			stats.SettledSessions++
		}
	}

	for _, account := range m.accounts {
		stats.TotalBalance = stats.TotalBalance.Add(account.Balance)
	}
	return stats, nil
}

func testParams() *assets.EngineSettings {
	return &assets.EngineSettings{
		BaseRate:                decimal.NewFromFloat(0.01),
		MaxMultiplier:           6,
		ReferralBonusRate:       decimal.NewFromFloat(0.1),
		ReferralCodeOwnerReward: decimal.NewFromInt(200),
		ReferralCodeUserReward:  decimal.NewFromInt(100),
		AdRewardOptions:         []int64{10, 20, 30, 40, 50, 60},
		MaxDailyAdClaims:        6,
		SweepGraceHours:         24,
	}
}

func newTestEngine() (*Engine, *memStore, *fakeClock) {
	store := newMemStore()
	clock := newFakeClock()

	stores := Stores{
		Accounts:      store,
		Sessions:      sessionStoreAdapter{store},
		Bonuses:       store,
		Grants:        store,
		Notifications: store,
		Receipts:      store,
		Activities:    activityStoreAdapter{store},
		Stats:         store,
	}

	return NewEngine(stores, testParams(), clock, nopLogger{}, time.UTC), store, clock
}

// sessionStoreAdapter resolves the Create name collision between the
// account and session store interfaces on memStore.
type sessionStoreAdapter struct {
	*memStore
}

func (a sessionStoreAdapter) Create(session *model.Session) error {
	return a.memStore.createSession(session)
}

// activityStoreAdapter resolves the Append name collision between the
// notification and activity store interfaces on memStore.
type activityStoreAdapter struct {
	*memStore
}

func (a activityStoreAdapter) Append(act *model.Activity) error {
	return a.memStore.AppendActivity(act)
}
