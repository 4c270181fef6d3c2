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

type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin) error
	FindByUserID(ctx context.Context, userID string) (*entity.Admin, error)
	FindByStatus(ctx context.Context, status entity.AdminStatus) ([]*entity.Admin, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Admin, error)
	CountAll(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, userID string, status entity.AdminStatus) error

	SaveVerificationCode(ctx context.Context, email, code string, expiresAt time.Time) error
	FindByVerificationCode(ctx context.Context, code string) (*entity.Admin, error)
	ConsumePassword(ctx context.Context, userID, code, digest string) error
}

type adminRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAdminRepository(db database.PgxIface, log *zap.Logger) AdminRepository {
	return &adminRepository{
		db:  db,
		log: log.With(zap.String("repository", "admins")),
	}
}

const adminColumns = `id, user_id, email, mobile_no, digest, status,
	       verification_code, verification_code_expires_at, is_verified, create_date`

func scanAdmin(row pgx.Row) (*entity.Admin, error) {
	var admin entity.Admin
	err := row.Scan(
		&admin.ID,
		&admin.UserID,
		&admin.Email,
		&admin.MobileNo,
		&admin.Digest,
		&admin.Status,
		&admin.VerificationCode,
		&admin.CodeExpiresAt,
		&admin.IsVerified,
		&admin.CreateDate,
	)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	query := `
		INSERT INTO admins (user_id, email, mobile_no, digest, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, create_date
	`

	err := r.db.QueryRow(ctx, query,
		admin.UserID,
		admin.Email,
		admin.MobileNo,
		admin.Digest,
		admin.Status,
	).Scan(&admin.ID, &admin.CreateDate)

	if err != nil {
		r.log.Error("Failed to create admin",
			zap.Error(err),
			zap.String("user_id", admin.UserID),
		)
		return fmt.Errorf("create admin %s: %w", admin.UserID, classify(err))
	}

	return nil
}

func (r *adminRepository) FindByUserID(ctx context.Context, userID string) (*entity.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE user_id = $1`

	admin, err := scanAdmin(r.db.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find admin",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("find admin %s: %w", userID, classify(err))
	}

	return admin, nil
}

func (r *adminRepository) FindByStatus(ctx context.Context, status entity.AdminStatus) ([]*entity.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE status = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		r.log.Error("Failed to list admins by status",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("list admins by status %s: %w", status, classify(err))
	}
	defer rows.Close()

	var admins []*entity.Admin
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			r.log.Error("Failed to scan admin row", zap.Error(err))
			return nil, fmt.Errorf("scan admin row: %w", err)
		}
		admins = append(admins, admin)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate admin rows: %w", err)
	}

	return admins, nil
}

func (r *adminRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list admins", zap.Error(err))
		return nil, fmt.Errorf("list admins: %w", classify(err))
	}
	defer rows.Close()

	var admins []*entity.Admin
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			r.log.Error("Failed to scan admin row", zap.Error(err))
			return nil, fmt.Errorf("scan admin row: %w", err)
		}
		admins = append(admins, admin)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate admin rows: %w", err)
	}

	return admins, nil
}

func (r *adminRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM admins`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count admins", zap.Error(err))
		return 0, fmt.Errorf("count admins: %w", err)
	}

	return count, nil
}

func (r *adminRepository) UpdateStatus(ctx context.Context, userID string, status entity.AdminStatus) error {
	query := `UPDATE admins SET status = $2 WHERE user_id = $1`

	result, err := r.db.Exec(ctx, query, userID, status)
	if err != nil {
		r.log.Error("Failed to update admin status",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update admin status %s: %w", userID, classify(err))
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *adminRepository) SaveVerificationCode(ctx context.Context, email, code string, expiresAt time.Time) error {
	query := `
		UPDATE admins
		SET verification_code = $2,
		    verification_code_expires_at = $3,
		    is_verified = false
		WHERE email = $1
	`

	result, err := r.db.Exec(ctx, query, email, code, expiresAt)
	if err != nil {
		r.log.Error("Failed to save admin verification code",
			zap.Error(err),
			zap.String("email", email),
		)
		return fmt.Errorf("save admin verification code for %s: %w", email, classify(err))
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *adminRepository) FindByVerificationCode(ctx context.Context, code string) (*entity.Admin, error) {
	query := `
		SELECT ` + adminColumns + `
		FROM admins
		WHERE verification_code = $1
		  AND verification_code_expires_at > NOW()
	`

	admin, err := scanAdmin(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to look up admin verification code", zap.Error(err))
		return nil, fmt.Errorf("find admin by code: %w", classify(err))
	}

	return admin, nil
}

// ConsumePassword mirrors the credentials variant: the UPDATE itself is the
// match-and-expiry check, so concurrent consumers cannot both win.
func (r *adminRepository) ConsumePassword(ctx context.Context, userID, code, digest string) error {
	query := `
		UPDATE admins
		SET digest = $3,
		    status = $4,
		    verification_code = NULL,
		    verification_code_expires_at = NULL,
		    is_verified = true
		WHERE user_id = $1
		  AND verification_code = $2
		  AND verification_code_expires_at > NOW()
	`

	result, err := r.db.Exec(ctx, query, userID, code, digest, entity.AdminActive)
	if err != nil {
		r.log.Error("Failed to consume admin verification code",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("consume admin verification code %s: %w", userID, classify(err))
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
