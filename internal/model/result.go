package model

import (
	"encoding/json"
	"time"
)

// CommandResult is the uniform outcome of every discount command. Handlers
// relay it to the UI verbatim.
type CommandResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Succeeded builds a successful result.
func Succeeded(message string) *CommandResult {
	return &CommandResult{Success: true, Message: message}
}

// Failed builds a failed result.
func Failed(message string) *CommandResult {
	return &CommandResult{Success: false, Message: message}
}

// DiscountRow is a listing row: the local record plus the live usage count
// fetched from the platform for custom discounts.
type DiscountRow struct {
	DiscountCode
	Status     string `json:"status"`
	LiveUsage  int    `json:"liveUsage"`
	UsageKnown bool   `json:"usageKnown"`
}

// DayBucket is one day of the trailing creation histogram.
type DayBucket struct {
	Day     time.Time `json:"day"`
	Active  int       `json:"active"`
	Used    int       `json:"used"`
	Expired int       `json:"expired"`
}

// ListStats are the aggregate counters shown on the dashboard.
type ListStats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Expired int `json:"expired"`
	Used    int `json:"used"`
}

// ListDiscountsResult is the full listing response.
type ListDiscountsResult struct {
	Discounts []DiscountRow `json:"discounts"`
	Stats     ListStats     `json:"stats"`
	Histogram []DayBucket   `json:"histogram"`
	Page      int           `json:"page"`
	Limit     int           `json:"limit"`
	Total     int           `json:"total"`
}

// DiscountDetail merges the remote discount configuration with the UI-only
// fields that live solely in the local store.
type DiscountDetail struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Code          string          `json:"code,omitempty"`
	StartsAt      time.Time       `json:"startsAt"`
	EndsAt        *time.Time      `json:"endsAt,omitempty"`
	Percentage    float64         `json:"percentage"`
	Status        string          `json:"status"`
	UsageLimit    int             `json:"usageLimit"`
	UsedCount     int             `json:"usedCount"`
	Method        DiscountMethod  `json:"method"`
	DiscountScope DiscountScope   `json:"discountScope"`
	IsMultiple    bool            `json:"isMultiple"`
	AdvancedRule  json.RawMessage `json:"advancedRule,omitempty"`
}

// DeleteAllResult reports the outcome of a delete-all sweep.
type DeleteAllResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Deleted int    `json:"deleted"`
	Failed  int    `json:"failed"`
}
