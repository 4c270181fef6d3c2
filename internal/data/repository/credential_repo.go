package repository

import (
	"context"
	"fmt"
	"time"

	"adviser-portal/internal/data/entity"
	"adviser-portal/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CredentialRepository interface {
	FindByUserID(ctx context.Context, userID string) (*entity.Credential, error)
	UpdateStatus(ctx context.Context, userID string, status entity.CredentialStatus) error
	SetDigest(ctx context.Context, userID, digest string) error

	// Verification-code protocol. Consume is the single authority: it clears
	// the code, sets the digest and activates the credential in one
	// conditional update, so a raced second consume naturally misses.
	SaveVerificationCode(ctx context.Context, email, code string, expiresAt time.Time) error
	FindByVerificationCode(ctx context.Context, code string) (*entity.Credential, error)
	ConsumePassword(ctx context.Context, userID, code, digest string) error
}

type credentialRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCredentialRepository(db database.PgxIface, log *zap.Logger) CredentialRepository {
	return &credentialRepository{
		db:  db,
		log: log.With(zap.String("repository", "credentials")),
	}
}

const credentialColumns = `user_id, email, mobile_no, adviser_id, digest, credential_type, status, rbac,
	       verification_code, verification_code_expires_at, is_verified`

func scanCredential(row pgx.Row) (*entity.Credential, error) {
	var cred entity.Credential
	err := row.Scan(
		&cred.UserID,
		&cred.Email,
		&cred.MobileNo,
		&cred.AdviserID,
		&cred.Digest,
		&cred.CredentialType,
		&cred.Status,
		&cred.RBAC,
		&cred.VerificationCode,
		&cred.CodeExpiresAt,
		&cred.IsVerified,
	)
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *credentialRepository) FindByUserID(ctx context.Context, userID string) (*entity.Credential, error) {
	query := `
		SELECT ` + credentialColumns + `
		FROM credentials
		WHERE user_id = $1
	`

	cred, err := scanCredential(r.db.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find credential",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("find credential %s: %w", userID, classify(err))
	}

	return cred, nil
}

func (r *credentialRepository) UpdateStatus(ctx context.Context, userID string, status entity.CredentialStatus) error {
	query := `UPDATE credentials SET status = $2 WHERE user_id = $1`

	result, err := r.db.Exec(ctx, query, userID, status)
	if err != nil {
		r.log.Error("Failed to update credential status",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update credential status %s: %w", userID, classify(err))
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *credentialRepository) SetDigest(ctx context.Context, userID, digest string) error {
	query := `UPDATE credentials SET digest = $2 WHERE user_id = $1`

	result, err := r.db.Exec(ctx, query, userID, digest)
	if err != nil {
		r.log.Error("Failed to set digest", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("set digest %s: %w", userID, classify(err))
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *credentialRepository) SaveVerificationCode(ctx context.Context, email, code string, expiresAt time.Time) error {
	query := `
		UPDATE credentials
		SET verification_code = $2,
		    verification_code_expires_at = $3,
		    is_verified = false
		WHERE email = $1
	`

	result, err := r.db.Exec(ctx, query, email, code, expiresAt)
	if err != nil {
		r.log.Error("Failed to save verification code",
			zap.Error(err),
			zap.String("email", email),
		)
		return fmt.Errorf("save verification code for %s: %w", email, classify(err))
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *credentialRepository) FindByVerificationCode(ctx context.Context, code string) (*entity.Credential, error) {
	query := `
		SELECT ` + credentialColumns + `
		FROM credentials
		WHERE verification_code = $1
		  AND verification_code_expires_at > NOW()
	`

	cred, err := scanCredential(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to look up verification code", zap.Error(err))
		return nil, fmt.Errorf("find credential by code: %w", classify(err))
	}

	return cred, nil
}

// ConsumePassword re-validates code match and expiry inside the UPDATE itself.
// Zero affected rows means the code no longer matches or has expired.
func (r *credentialRepository) ConsumePassword(ctx context.Context, userID, code, digest string) error {
	query := `
		UPDATE credentials
		SET digest = $3,
		    status = $4,
		    verification_code = NULL,
		    verification_code_expires_at = NULL,
		    is_verified = true
		WHERE user_id = $1
		  AND verification_code = $2
		  AND verification_code_expires_at > NOW()
	`

	result, err := r.db.Exec(ctx, query, userID, code, digest, entity.CredentialActive)
	if err != nil {
		r.log.Error("Failed to consume verification code",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("consume verification code %s: %w", userID, classify(err))
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
