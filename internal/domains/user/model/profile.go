package model

import "innstay/shared/model"

const (
	ProfileTableName  = "profiles"
	ProfileEntityName = "profile"

	ProfileFieldID     = "id"
	ProfileFieldUserID = "user_id"
	ProfileFieldRole   = "role"
	ProfileFieldPhone  = "phone"
)

// Profile holds the booking-platform identity of a user. Every user has
// exactly one profile; the role on it drives endpoint authorization and
// the phone number is where SMS notifications go.
type Profile struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`
	Role   string `db:"role"`
	Phone  string `db:"phone"`
	model.Metadata
}
