package repository

import (
	"context"
	"errors"
	"fmt"

	"adviser-portal/internal/data/entity"
	"adviser-portal/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AdviserRepository interface {
	// CreateBundle runs the adviser/contact/entity/credential inserts in one
	// transaction. For staff users the adviser and contact parts are nil and
	// the credential points at the parent adviser. On success the generated
	// adviser id is filled back into the bundle.
	CreateBundle(ctx context.Context, bundle *entity.Bundle) error

	FindProfileByUserID(ctx context.Context, userID string) (*entity.AdviserProfile, error)
	FindPersonByUserID(ctx context.Context, userID string) (*entity.PersonEntity, error)
	UpdateStatusByUserID(ctx context.Context, userID string, status entity.AdviserStatus) error

	FindProfiles(ctx context.Context, limit, offset int) ([]*entity.AdviserProfile, error)
	FindProfilesByStatus(ctx context.Context, status entity.AdviserStatus, negate bool, limit, offset int) ([]*entity.AdviserProfile, error)
	CountProfiles(ctx context.Context) (int64, error)
	CountProfilesByStatus(ctx context.Context, status entity.AdviserStatus, negate bool) (int64, error)
}

type adviserRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAdviserRepository(db database.PgxIface, log *zap.Logger) AdviserRepository {
	return &adviserRepository{
		db:  db,
		log: log.With(zap.String("repository", "adviser")),
	}
}

func (r *adviserRepository) CreateBundle(ctx context.Context, bundle *entity.Bundle) error {
	cred := bundle.Credential

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin bundle transaction", zap.Error(err))
		return fmt.Errorf("begin bundle transaction: %w", err)
	}
	// Rollback after a successful commit is a no-op error we can ignore.
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			r.log.Warn("Bundle rollback failed", zap.Error(rbErr))
		}
	}()

	adviserID := int64(-1)
	if bundle.Adviser != nil {
		insertAdviser := `
			INSERT INTO adviser (kra_pin, account_no, partner_number, intermediary_type,
			                     legal_entity_type, country, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		err = tx.QueryRow(ctx, insertAdviser,
			bundle.Adviser.KraPIN,
			bundle.Adviser.AccountNo,
			bundle.Adviser.PartnerNumber,
			bundle.Adviser.IntermediaryType,
			bundle.Adviser.LegalEntityType,
			bundle.Adviser.Country,
			bundle.Adviser.Status,
		).Scan(&adviserID)
		if err != nil {
			r.log.Error("Failed to insert adviser",
				zap.Error(err),
				zap.String("user_id", cred.UserID),
			)
			return fmt.Errorf("insert adviser for %s: %w", cred.UserID, classify(err))
		}
		bundle.Adviser.ID = adviserID
	} else if cred.AdviserID != nil {
		adviserID = *cred.AdviserID
	}

	insertCreds := `
		INSERT INTO credentials (user_id, email, mobile_no, adviser_id, digest,
		                         credential_type, status, rbac)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.Exec(ctx, insertCreds,
		cred.UserID,
		cred.Email,
		cred.MobileNo,
		adviserID,
		cred.Digest,
		cred.CredentialType,
		cred.Status,
		cred.RBAC,
	)
	if err != nil {
		r.log.Error("Failed to insert credential",
			zap.Error(err),
			zap.String("user_id", cred.UserID),
		)
		return fmt.Errorf("insert credential for %s: %w", cred.UserID, classify(err))
	}

	if bundle.Contact != nil {
		bundle.Contact.AdviserID = adviserID
		insertContacts := `
			INSERT INTO adviser_contacts (adviser_id, mobile_no, secondary_mobile_no,
			                              primary_email, secondary_email, fixed_phone_no,
			                              secondary_fixed_phone_no, primary_address,
			                              secondary_address, city, secondary_city, country)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`
		_, err = tx.Exec(ctx, insertContacts,
			bundle.Contact.AdviserID,
			bundle.Contact.MobileNo,
			bundle.Contact.SecondaryMobileNo,
			bundle.Contact.PrimaryEmail,
			bundle.Contact.SecondaryEmail,
			bundle.Contact.FixedPhoneNo,
			bundle.Contact.SecondaryFixedNo,
			bundle.Contact.PrimaryAddress,
			bundle.Contact.SecondaryAddress,
			bundle.Contact.City,
			bundle.Contact.SecondaryCity,
			bundle.Contact.Country,
		)
		if err != nil {
			r.log.Error("Failed to insert contacts",
				zap.Error(err),
				zap.String("user_id", cred.UserID),
			)
			return fmt.Errorf("insert contacts for %s: %w", cred.UserID, classify(err))
		}
	}

	switch {
	case bundle.Entity.Person != nil:
		person := bundle.Entity.Person
		person.AdviserID = adviserID
		insertPerson := `
			INSERT INTO adviser_person (adviser_id, user_id, id_number, id_type,
			                            date_of_birth, first_name, last_name, full_names, gender)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		_, err = tx.Exec(ctx, insertPerson,
			person.AdviserID,
			person.UserID,
			person.IDNumber,
			person.IDType,
			person.DateOfBirth,
			person.FirstName,
			person.LastName,
			person.FullNames,
			person.Gender,
		)
	case bundle.Entity.NonPerson != nil:
		nonPerson := bundle.Entity.NonPerson
		nonPerson.AdviserID = adviserID
		insertNonPerson := `
			INSERT INTO adviser_nonperson (adviser_id, user_id, id_number, id_type,
			                               date_of_incorporation, names)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err = tx.Exec(ctx, insertNonPerson,
			nonPerson.AdviserID,
			nonPerson.UserID,
			nonPerson.IDNumber,
			nonPerson.IDType,
			nonPerson.DateOfIncorporation,
			nonPerson.Names,
		)
	}
	if err != nil {
		r.log.Error("Failed to insert legal entity",
			zap.Error(err),
			zap.String("user_id", cred.UserID),
			zap.String("entity_type", string(bundle.Entity.Kind())),
		)
		return fmt.Errorf("insert legal entity for %s: %w", cred.UserID, classify(err))
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit bundle", zap.Error(err), zap.String("user_id", cred.UserID))
		return fmt.Errorf("commit bundle for %s: %w", cred.UserID, classify(err))
	}

	return nil
}

const profileSelect = `
	SELECT a.id, c.user_id,
	       COALESCE(p.full_names, np.names, '') AS names,
	       c.email, c.mobile_no,
	       COALESCE(ct.fixed_phone_no, ''),
	       COALESCE(ct.primary_address, ''),
	       COALESCE(ct.city, ''),
	       a.kra_pin, a.account_no, a.partner_number, a.intermediary_type, a.status
	FROM credentials c
	JOIN adviser a ON a.id = c.adviser_id
	LEFT JOIN adviser_contacts ct ON ct.adviser_id = a.id
	LEFT JOIN adviser_person p ON p.adviser_id = a.id AND p.user_id = c.user_id
	LEFT JOIN adviser_nonperson np ON np.adviser_id = a.id
`

func scanProfile(row pgx.Row) (*entity.AdviserProfile, error) {
	var profile entity.AdviserProfile
	err := row.Scan(
		&profile.AdviserID,
		&profile.UserID,
		&profile.Names,
		&profile.Email,
		&profile.MobileNo,
		&profile.FixedPhone,
		&profile.Address,
		&profile.City,
		&profile.KraPIN,
		&profile.AccountNumber,
		&profile.PartnerNumber,
		&profile.IntermediaryType,
		&profile.Status,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *adviserRepository) FindProfileByUserID(ctx context.Context, userID string) (*entity.AdviserProfile, error) {
	query := profileSelect + ` WHERE c.user_id = $1`

	profile, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find adviser profile",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("find adviser profile %s: %w", userID, classify(err))
	}

	return profile, nil
}

func (r *adviserRepository) FindPersonByUserID(ctx context.Context, userID string) (*entity.PersonEntity, error) {
	query := `
		SELECT adviser_id, user_id, id_number, id_type, date_of_birth,
		       first_name, last_name, full_names, gender
		FROM adviser_person
		WHERE user_id = $1
	`

	var person entity.PersonEntity
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&person.AdviserID,
		&person.UserID,
		&person.IDNumber,
		&person.IDType,
		&person.DateOfBirth,
		&person.FirstName,
		&person.LastName,
		&person.FullNames,
		&person.Gender,
	)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find person record",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("find person %s: %w", userID, classify(err))
	}

	return &person, nil
}

func (r *adviserRepository) UpdateStatusByUserID(ctx context.Context, userID string, status entity.AdviserStatus) error {
	query := `
		UPDATE adviser
		SET status = $2
		FROM credentials c
		WHERE c.adviser_id = adviser.id AND c.user_id = $1
	`

	result, err := r.db.Exec(ctx, query, userID, status)
	if err != nil {
		r.log.Error("Failed to update adviser status",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update adviser status %s: %w", userID, classify(err))
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *adviserRepository) FindProfiles(ctx context.Context, limit, offset int) ([]*entity.AdviserProfile, error) {
	query := profileSelect + ` ORDER BY a.id LIMIT $1 OFFSET $2`
	return r.queryProfiles(ctx, query, limit, offset)
}

func (r *adviserRepository) FindProfilesByStatus(ctx context.Context, status entity.AdviserStatus, negate bool, limit, offset int) ([]*entity.AdviserProfile, error) {
	op := "="
	if negate {
		op = "<>"
	}
	query := profileSelect + ` WHERE a.status ` + op + ` $3 ORDER BY a.id LIMIT $1 OFFSET $2`
	return r.queryProfiles(ctx, query, limit, offset, status)
}

func (r *adviserRepository) queryProfiles(ctx context.Context, query string, args ...any) ([]*entity.AdviserProfile, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list adviser profiles", zap.Error(err))
		return nil, fmt.Errorf("list adviser profiles: %w", classify(err))
	}
	defer rows.Close()

	var profiles []*entity.AdviserProfile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			r.log.Error("Failed to scan adviser profile row", zap.Error(err))
			return nil, fmt.Errorf("scan adviser profile row: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate adviser profile rows: %w", err)
	}

	return profiles, nil
}

func (r *adviserRepository) CountProfiles(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM adviser`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count advisers", zap.Error(err))
		return 0, fmt.Errorf("count advisers: %w", err)
	}

	return count, nil
}

func (r *adviserRepository) CountProfilesByStatus(ctx context.Context, status entity.AdviserStatus, negate bool) (int64, error) {
	op := "="
	if negate {
		op = "<>"
	}
	query := `SELECT COUNT(*) FROM adviser WHERE status ` + op + ` $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, status).Scan(&count); err != nil {
		r.log.Error("Failed to count advisers by status", zap.Error(err))
		return 0, fmt.Errorf("count advisers by status: %w", err)
	}

	return count, nil
}
