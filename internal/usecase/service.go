package usecase

import (
	"adviser-portal/internal/data/repository"
	"adviser-portal/internal/gateway"
	"adviser-portal/pkg/token"
	"adviser-portal/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Registration RegistrationService
	Auth         AuthService
	Verification VerificationService
	Admin        AdminService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	tokens *token.Service,
	verifier gateway.IdentityVerifier,
	mailer gateway.Mailer,
	log *zap.Logger,
) *Service {
	audit := newAuditor(repo.Event, config.Audit.StoreEvents, log)

	return &Service{
		Registration: NewRegistrationService(repo, config, verifier, mailer, audit, log),
		Auth:         NewAuthService(repo, config, tokens, audit, log),
		Verification: NewVerificationService(repo, config, mailer, audit, log),
		Admin:        NewAdminService(repo, config, mailer, audit, log),
	}
}
