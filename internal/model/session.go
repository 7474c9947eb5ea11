package model

import "time"

// Session holds the per-shop access token installed by the platform SDK. The
// core treats this table as read-only.
type Session struct {
	Shop        string    `json:"shop" db:"shop"`
	AccessToken string    `json:"-" db:"access_token"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
