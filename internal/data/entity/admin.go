package entity

import "time"

type Admin struct {
	ID       int64       `db:"id"`
	UserID   string      `db:"user_id"`
	Email    string      `db:"email"`
	MobileNo string      `db:"mobile_no"`
	Digest   string      `db:"digest"`
	Status   AdminStatus `db:"status"`

	VerificationCode *string    `db:"verification_code"`
	CodeExpiresAt    *time.Time `db:"verification_code_expires_at"`
	IsVerified       bool       `db:"is_verified"`

	CreateDate time.Time `db:"create_date"`
}
