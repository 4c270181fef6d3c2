package entity

import "time"

// Credential is the authentication record bound one-to-one to a user_id.
// AdviserID is nil for admin/root principals.
type Credential struct {
	UserID         string           `db:"user_id"`
	Email          string           `db:"email"`
	MobileNo       string           `db:"mobile_no"`
	AdviserID      *int64           `db:"adviser_id"`
	Digest         string           `db:"digest"`
	CredentialType CredentialType   `db:"credential_type"`
	Status         CredentialStatus `db:"status"`
	RBAC           RBAC             `db:"rbac"`

	// Verification-code fields gate the initial password set. The code is
	// cleared together with the expiry when it is consumed.
	VerificationCode *string    `db:"verification_code"`
	CodeExpiresAt    *time.Time `db:"verification_code_expires_at"`
	IsVerified       bool       `db:"is_verified"`
}
