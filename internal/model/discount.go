package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DiscountMethod is how a discount is applied at checkout.
type DiscountMethod string

const (
	MethodCustom    DiscountMethod = "CUSTOM"    // redeemed with a code
	MethodAutomatic DiscountMethod = "AUTOMATIC" // applied without a code
)

// DiscountScope is what a discount applies to.
type DiscountScope string

const (
	ScopeProduct  DiscountScope = "PRODUCT"
	ScopeOrder    DiscountScope = "ORDER"
	ScopeShipping DiscountScope = "SHIPPING"
	ScopeBuyXGetY DiscountScope = "BUYXGETY"
)

// DiscountType is the unit of the discount value.
type DiscountType string

const (
	TypePercent DiscountType = "PERCENT"
	TypeAmount  DiscountType = "AMOUNT"
)

// DiscountKind tags the remote variant of a discount. It is decided once at
// creation (or webhook ingestion) and stored, so reads never have to re-derive
// it from the remote id string.
type DiscountKind string

const (
	KindCustomBasic    DiscountKind = "custom-basic"
	KindAutomaticBasic DiscountKind = "automatic-basic"
	KindCustomBxgy     DiscountKind = "custom-bxgy"
	KindAutomaticBxgy  DiscountKind = "automatic-bxgy"
)

// IsCustom reports whether the discount is code-redeemed.
func (k DiscountKind) IsCustom() bool {
	return k == KindCustomBasic || k == KindCustomBxgy
}

// Remote global-id node names used by the platform.
const (
	nodeCustom    = "DiscountCodeNode"
	nodeAutomatic = "DiscountAutomaticNode"
)

// RemoteID builds the platform global id for a numeric discount id.
func (k DiscountKind) RemoteID(numericID string) string {
	node := nodeCustom
	if !k.IsCustom() {
		node = nodeAutomatic
	}
	return fmt.Sprintf("gid://shopify/%s/%s", node, numericID)
}

// KindFromRemoteID derives the discount kind from a platform global id. This
// is only valid at the webhook ingestion boundary, where the remote id is all
// the platform gives us; stored rows carry the kind as a first-class field.
func KindFromRemoteID(remoteID string, bxgy bool) (DiscountKind, error) {
	switch {
	case strings.Contains(remoteID, nodeCustom):
		if bxgy {
			return KindCustomBxgy, nil
		}
		return KindCustomBasic, nil
	case strings.Contains(remoteID, nodeAutomatic):
		if bxgy {
			return KindAutomaticBxgy, nil
		}
		return KindAutomaticBasic, nil
	default:
		return "", fmt.Errorf("unrecognised remote discount id %q", remoteID)
	}
}

// NumericRemoteID extracts the trailing numeric part of a platform global id.
func NumericRemoteID(remoteID string) string {
	if i := strings.LastIndex(remoteID, "/"); i >= 0 {
		return remoteID[i+1:]
	}
	return remoteID
}

// DiscountCode is the local mirror of a remote discount. The remote platform
// is the source of truth for configuration; this row exists for listing,
// filtering and usage analytics.
type DiscountCode struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	Shop           string          `json:"shop" db:"shop"`
	Code           string          `json:"code" db:"code"`
	Title          string          `json:"title" db:"title"`
	DiscountID     string          `json:"discountId" db:"discount_id"`
	Kind           DiscountKind    `json:"kind" db:"kind"`
	StartsAt       time.Time       `json:"startsAt" db:"starts_at"`
	EndsAt         *time.Time      `json:"endsAt" db:"ends_at"`
	DiscountAmount float64         `json:"discountAmount" db:"discount_amount"`
	DiscountType   DiscountType    `json:"discountType" db:"discount_type"`
	DiscountMethod DiscountMethod  `json:"discountMethod" db:"discount_method"`
	DiscountScope  DiscountScope   `json:"discountScope" db:"discount_scope"`
	UsageLimit     int             `json:"usageLimit" db:"usage_limit"`
	UsedCount      int             `json:"usedCount" db:"used_count"`
	IsActive       bool            `json:"isActive" db:"is_active"`
	IsMultiple     bool            `json:"isMultiple" db:"is_multiple"`
	AdvancedRule   json.RawMessage `json:"advancedRule,omitempty" db:"advanced_rule"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`
}

// Status derives the listing status of a row at the given instant.
func (d *DiscountCode) Status(now time.Time) string {
	if d.EndsAt != nil && d.EndsAt.Before(now) {
		return "expired"
	}
	if d.IsActive {
		return "active"
	}
	return "inactive"
}
