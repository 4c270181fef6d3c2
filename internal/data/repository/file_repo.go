package repository

import (
	"context"
	"fmt"

	"adviser-portal/internal/data/entity"
	"adviser-portal/pkg/database"

	"go.uber.org/zap"
)

type FileRepository interface {
	Create(ctx context.Context, file *entity.ApplicantFile) error
	FindByUserID(ctx context.Context, userID string) ([]*entity.ApplicantFile, error)
}

type fileRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFileRepository(db database.PgxIface, log *zap.Logger) FileRepository {
	return &fileRepository{
		db:  db,
		log: log.With(zap.String("repository", "applicant_files")),
	}
}

func (r *fileRepository) Create(ctx context.Context, file *entity.ApplicantFile) error {
	query := `
		INSERT INTO applicant_filedata (user_id, file_desc, file_data)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, file.UserID, file.FileDesc, file.FileData).Scan(&file.ID)
	if err != nil {
		r.log.Error("Failed to store applicant file",
			zap.Error(err),
			zap.String("user_id", file.UserID),
			zap.String("file_desc", file.FileDesc),
		)
		return fmt.Errorf("store applicant file for %s: %w", file.UserID, classify(err))
	}

	return nil
}

func (r *fileRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.ApplicantFile, error) {
	query := `
		SELECT id, user_id, file_desc, file_data
		FROM applicant_filedata
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list applicant files",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("list applicant files for %s: %w", userID, classify(err))
	}
	defer rows.Close()

	var files []*entity.ApplicantFile
	for rows.Next() {
		var file entity.ApplicantFile
		if err := rows.Scan(&file.ID, &file.UserID, &file.FileDesc, &file.FileData); err != nil {
			r.log.Error("Failed to scan applicant file row", zap.Error(err))
			return nil, fmt.Errorf("scan applicant file row: %w", err)
		}
		files = append(files, &file)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate applicant file rows: %w", err)
	}

	return files, nil
}
