package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountKind_IsCustom(t *testing.T) {
	assert.True(t, KindCustomBasic.IsCustom())
	assert.True(t, KindCustomBxgy.IsCustom())
	assert.False(t, KindAutomaticBasic.IsCustom())
	assert.False(t, KindAutomaticBxgy.IsCustom())
}

func TestDiscountKind_RemoteID(t *testing.T) {
	assert.Equal(t, "gid://shopify/DiscountCodeNode/42", KindCustomBasic.RemoteID("42"))
	assert.Equal(t, "gid://shopify/DiscountCodeNode/42", KindCustomBxgy.RemoteID("42"))
	assert.Equal(t, "gid://shopify/DiscountAutomaticNode/42", KindAutomaticBasic.RemoteID("42"))
}

func TestKindFromRemoteID(t *testing.T) {
	tests := []struct {
		remoteID string
		bxgy     bool
		want     DiscountKind
		wantErr  bool
	}{
		{"gid://shopify/DiscountCodeNode/1", false, KindCustomBasic, false},
		{"gid://shopify/DiscountCodeNode/1", true, KindCustomBxgy, false},
		{"gid://shopify/DiscountAutomaticNode/1", false, KindAutomaticBasic, false},
		{"gid://shopify/DiscountAutomaticNode/1", true, KindAutomaticBxgy, false},
		{"gid://shopify/PriceRule/1", false, "", true},
	}

	for _, tt := range tests {
		kind, err := KindFromRemoteID(tt.remoteID, tt.bxgy)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, kind)
	}
}

func TestNumericRemoteID(t *testing.T) {
	assert.Equal(t, "42", NumericRemoteID("gid://shopify/DiscountCodeNode/42"))
	assert.Equal(t, "42", NumericRemoteID("42"))
}

func TestDiscountCode_Status(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name string
		code DiscountCode
		want string
	}{
		{"active with no end date", DiscountCode{IsActive: true}, "active"},
		{"active with future end", DiscountCode{IsActive: true, EndsAt: &future}, "active"},
		{"expired by end date", DiscountCode{IsActive: true, EndsAt: &past}, "expired"},
		{"inactive", DiscountCode{IsActive: false}, "inactive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.Status(now))
		})
	}
}
