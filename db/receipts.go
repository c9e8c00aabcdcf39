package db

import (
	"strconv"
	"strings"
	"time"

	"github.com/omkarchillalndss/cryptominerpp/model"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	claimReceiptPrefix    = "claim_receipt:"
	adRewardReceiptPrefix = "ad_reward_receipt:"
	claimReceiptTTL       = 24 * time.Hour
)

// ReceiptStore keeps settlement receipts in Redis so a retried claim
// carrying the original idempotency key replays the original outcome
// instead of reaching the state machine a second time.
type ReceiptStore struct {
	rdb *redis.Client
}

func NewReceiptStore(rdb *redis.Client) *ReceiptStore {
	return &ReceiptStore{rdb: rdb}
}

func (s *ReceiptStore) SaveClaimReceipt(key string, receipt *model.ClaimReceipt) error {
	value := receipt.SessionID + "?" + receipt.Awarded.String() + "?" + receipt.NewBalance.String()

	_, err := s.rdb.Set(claimReceiptPrefix+key, value, claimReceiptTTL).Result()
	if err != nil {
		return errors.Wrap(err, "save claim receipt")
	}

	return nil
}

// GetClaimReceipt returns nil without error when no receipt is stored.
func (s *ReceiptStore) GetClaimReceipt(key string) (*model.ClaimReceipt, error) {
	value, err := s.rdb.Get(claimReceiptPrefix + key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get claim receipt")
	}

	return decodeClaimReceipt(value)
}

func (s *ReceiptStore) SaveAdRewardReceipt(key string, receipt *model.AdRewardReceipt) error {
	value := receipt.GrantID +
		"?" + receipt.Reward.String() +
		"?" + receipt.NewBalance.String() +
		"?" + strconv.Itoa(receipt.ClaimedCount) +
		"?" + strconv.Itoa(receipt.RemainingClaims)

	_, err := s.rdb.Set(adRewardReceiptPrefix+key, value, claimReceiptTTL).Result()
	if err != nil {
		return errors.Wrap(err, "save ad reward receipt")
	}

	return nil
}

// GetAdRewardReceipt returns nil without error when no receipt is stored.
func (s *ReceiptStore) GetAdRewardReceipt(key string) (*model.AdRewardReceipt, error) {
	value, err := s.rdb.Get(adRewardReceiptPrefix + key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get ad reward receipt")
	}

	return decodeAdRewardReceipt(value)
}

func decodeClaimReceipt(value string) (*model.ClaimReceipt, error) {
	parts := strings.Split(value, "?")
	if len(parts) != 3 {
		return nil, errors.Errorf("malformed claim receipt: %q", value)
	}

	awarded, err := decimal.NewFromString(parts[1])
	if err != nil {
		return nil, errors.Wrap(err, "decode awarded")
	}

	balance, err := decimal.NewFromString(parts[2])
	if err != nil {
		return nil, errors.Wrap(err, "decode balance")
	}

	return &model.ClaimReceipt{
		SessionID:  parts[0],
		Awarded:    awarded,
		NewBalance: balance,
	}, nil
}

func decodeAdRewardReceipt(value string) (*model.AdRewardReceipt, error) {
	parts := strings.Split(value, "?")
	if len(parts) != 5 {
		return nil, errors.Errorf("malformed ad reward receipt: %q", value)
	}

	reward, err := decimal.NewFromString(parts[1])
	if err != nil {
		return nil, errors.Wrap(err, "decode reward")
	}

	balance, err := decimal.NewFromString(parts[2])
	if err != nil {
		return nil, errors.Wrap(err, "decode balance")
	}

	claimed, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, errors.Wrap(err, "decode claimed count")
	}

	remaining, err := strconv.Atoi(parts[4])
	if err != nil {
		return nil, errors.Wrap(err, "decode remaining claims")
	}

	return &model.AdRewardReceipt{
		GrantID:         parts[0],
		Reward:          reward,
		NewBalance:      balance,
		ClaimedCount:    claimed,
		RemainingClaims: remaining,
	}, nil
}
