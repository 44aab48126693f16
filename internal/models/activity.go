package models

import (
	"time"
)

// Activity actions recorded in the audit trail.
const (
	ActionLogin          = "login"
	ActionRegister       = "register"
	ActionForgotPassword = "forgot_password"
)

// Activity results. Free text by contract; these are the values the
// directory itself writes.
const (
	ResultSuccess       = "success"
	ResultWrongPassword = "failed - wrong password"
	ResultEmailSent     = "email sent"
)

// ActivityEntry is one append-only audit row. Entries are written as a
// side effect of security-relevant actions and never read back by the
// directory operations.
type ActivityEntry struct {
	ID         int64     `json:"id" db:"id"`
	OccurredAt time.Time `json:"occurred_at" db:"occurred_at"`
	Email      string    `json:"email" db:"email"`
	Action     string    `json:"action" db:"action"`
	Result     string    `json:"result" db:"result"`
}
