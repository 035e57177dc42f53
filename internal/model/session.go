package model

import "time"

// OwnerKind distinguishes which principal a session belongs to.
type OwnerKind string

const (
	OwnerAdmin OwnerKind = "admin"
	OwnerUser  OwnerKind = "user"
)

// Session is the verified identity attached to a request. It is built
// exactly once, at the verify boundary, from a session-table join.
type Session struct {
	OwnerKind OwnerKind
	OwnerID   int
	ExpiresAt time.Time
}

// DailyCallCount tracks AI explanation calls per user per calendar day.
// The (user, date) pair is unique; the counter is upserted.
type DailyCallCount struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	CallDate  time.Time `json:"callDate"`
	CallCount int       `json:"callCount"`
}

// QuotaStatus is the wire shape for GET /api/users/daily-calls.
type QuotaStatus struct {
	DailyUsed  int  `json:"dailyUsed"`
	DailyLimit int  `json:"dailyLimit"`
	Unlimited  bool `json:"unlimited"`
}
