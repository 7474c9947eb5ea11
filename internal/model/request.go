package model

import (
	"encoding/json"
	"time"
)

// CustomerGetsRequest describes the benefit side of a discount as submitted by
// the admin UI. Exactly one of Percentage or DiscountAmount is meaningful;
// shipping discounts use DiscountAmount, everything else uses Percentage.
type CustomerGetsRequest struct {
	Percentage     float64  `json:"percentage"`
	DiscountAmount float64  `json:"discountAmount"`
	Quantity       int      `json:"quantity"`
	ProductIDs     []string `json:"productIDs"`
	CollectionIDs  []string `json:"collectionIDs"`
}

// CustomerBuysRequest describes the purchase-threshold side of a Buy-X-Get-Y
// discount.
type CustomerBuysRequest struct {
	Quantity      int      `json:"quantity"`
	ProductIDs    []string `json:"productIDs"`
	CollectionIDs []string `json:"collectionIDs"`
}

// CreateDiscountRequest is the UI-shaped payload for creating a basic
// (product/order/shipping) discount.
type CreateDiscountRequest struct {
	Shop              string              `json:"shop"`
	Title             string              `json:"title"`
	Codes             []string            `json:"codes"`
	Method            DiscountMethod      `json:"method"`
	Scope             DiscountScope       `json:"scope"`
	StartsAt          time.Time           `json:"startsAt"`
	EndsAt            *time.Time          `json:"endsAt"`
	UsageLimit        int                 `json:"usageLimit"`
	OncePerCustomer   bool                `json:"oncePerCustomer"`
	CustomerGets      CustomerGetsRequest `json:"customerGets"`
	AddCustomerIDs    []string            `json:"addCustomerIDs"`
	RemoveCustomerIDs []string            `json:"removeCustomerIDs"`
	RemoveProductIDs  []string            `json:"removeProductIDs"`
	RemoveCollections []string            `json:"removeCollectionIDs"`
	AdvancedRule      json.RawMessage     `json:"advancedRule,omitempty"`
}

// PrimaryCode returns the first requested code, the one mirrored locally.
func (r *CreateDiscountRequest) PrimaryCode() string {
	if len(r.Codes) == 0 {
		return ""
	}
	return r.Codes[0]
}

// CreateBxgyRequest is the UI-shaped payload for creating a Buy-X-Get-Y
// discount.
type CreateBxgyRequest struct {
	Shop         string              `json:"shop"`
	Title        string              `json:"title"`
	Codes        []string            `json:"codes"`
	Method       DiscountMethod      `json:"method"`
	StartsAt     time.Time           `json:"startsAt"`
	EndsAt       *time.Time          `json:"endsAt"`
	UsageLimit   int                 `json:"usageLimit"`
	UsesPerOrder int                 `json:"usesPerOrder"`
	CustomerBuys CustomerBuysRequest `json:"customerBuys"`
	CustomerGets CustomerGetsRequest `json:"customerGets"`
	AdvancedRule json.RawMessage     `json:"advancedRule,omitempty"`
}

// PrimaryCode returns the first requested code.
func (r *CreateBxgyRequest) PrimaryCode() string {
	if len(r.Codes) == 0 {
		return ""
	}
	return r.Codes[0]
}

// UpdateDiscountRequest updates an existing basic discount. ID is the local
// row id, DiscountID the remote global id.
type UpdateDiscountRequest struct {
	Shop       string `json:"shop"`
	ID         string `json:"id"`
	DiscountID string `json:"discountId"`
	CreateDiscountRequest
}

// UpdateBxgyRequest updates an existing Buy-X-Get-Y discount.
type UpdateBxgyRequest struct {
	Shop       string `json:"shop"`
	ID         string `json:"id"`
	DiscountID string `json:"discountId"`
	CreateBxgyRequest
}

// DeleteDiscountRequest identifies a single discount to delete. All three
// identifiers must match the local row before any remote call is made.
type DeleteDiscountRequest struct {
	Shop       string `json:"shop"`
	ID         string `json:"id"`
	Code       string `json:"code"`
	DiscountID string `json:"discountId"`
}

// DeleteRedeemCodesRequest removes generated codes under one parent discount.
type DeleteRedeemCodesRequest struct {
	Shop       string   `json:"shop"`
	DiscountID string   `json:"discountId"`
	Codes      []string `json:"codes"`
}

// ImportCodesRequest bulk-imports redeem codes from a gzipped code file
// (local path or S3 key) into an existing code discount.
type ImportCodesRequest struct {
	Shop       string `json:"shop"`
	DiscountID string `json:"discountId"`
	File       string `json:"file"`
}

// ListDiscountsQuery carries list filtering and paging parameters.
type ListDiscountsQuery struct {
	Shop   string
	Status string // "", "active", "expired"
	Search string // case-insensitive code substring
	Page   int
	Limit  int
}
