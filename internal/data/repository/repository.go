package repository

import (
	"adviser-portal/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Credential CredentialRepository
	Adviser    AdviserRepository
	Admin      AdminRepository
	Event      EventRepository
	File       FileRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Credential: NewCredentialRepository(db, log),
		Adviser:    NewAdviserRepository(db, log),
		Admin:      NewAdminRepository(db, log),
		Event:      NewEventRepository(db, log),
		File:       NewFileRepository(db, log),
	}
}
