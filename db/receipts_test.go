package db

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecodeClaimReceipt(t *testing.T) {
	receipt, err := decodeClaimReceipt("3f1c9a2e?432?532.5")
	if err != nil {
		t.Fatalf("decode: %s", err)
	}

	if receipt.SessionID != "3f1c9a2e" {
		t.Errorf("session id = %s", receipt.SessionID)
	}
	if !receipt.Awarded.Equal(decimal.RequireFromString("432")) {
		t.Errorf("awarded = %s, want 432", receipt.Awarded.String())
	}
	if !receipt.NewBalance.Equal(decimal.RequireFromString("532.5")) {
		t.Errorf("balance = %s, want 532.5", receipt.NewBalance.String())
	}
}

func TestDecodeClaimReceiptMalformed(t *testing.T) {
	cases := []string{
		"",
		"id-only",
		"id?432",
		"id?432?532?extra",
		"id?not-a-number?532",
		"id?432?not-a-number",
	}

	for _, value := range cases {
		if _, err := decodeClaimReceipt(value); err == nil {
			t.Errorf("decodeClaimReceipt(%q) succeeded", value)
		}
	}
}

func TestDecodeAdRewardReceipt(t *testing.T) {
	receipt, err := decodeAdRewardReceipt("9b2d4e1a?30?130?2?4")
	if err != nil {
		t.Fatalf("decode: %s", err)
	}

	if receipt.GrantID != "9b2d4e1a" {
		t.Errorf("grant id = %s", receipt.GrantID)
	}
	if !receipt.Reward.Equal(decimal.RequireFromString("30")) {
		t.Errorf("reward = %s, want 30", receipt.Reward.String())
	}
	if !receipt.NewBalance.Equal(decimal.RequireFromString("130")) {
		t.Errorf("balance = %s, want 130", receipt.NewBalance.String())
	}
	if receipt.ClaimedCount != 2 || receipt.RemainingClaims != 4 {
		t.Errorf("counters = %d/%d, want 2/4", receipt.ClaimedCount, receipt.RemainingClaims)
	}
}

func TestDecodeAdRewardReceiptMalformed(t *testing.T) {
	cases := []string{
		"",
		"id?30?130?2",
		"id?30?130?2?4?extra",
		"id?not-a-number?130?2?4",
		"id?30?130?x?4",
		"id?30?130?2?x",
	}

	for _, value := range cases {
		if _, err := decodeAdRewardReceipt(value); err == nil {
			t.Errorf("decodeAdRewardReceipt(%q) succeeded", value)
		}
	}
}
