package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adviser-portal/internal/data/entity"
	"adviser-portal/internal/data/repository"
	"adviser-portal/internal/dto/request"
	"adviser-portal/internal/dto/response"
	"adviser-portal/internal/gateway"
	"adviser-portal/pkg/utils"

	"go.uber.org/zap"
)

// VerificationService owns the one-time-code password protocol for both
// adviser credentials and admin records. A code is valid for the configured
// window; consuming it sets the digest, activates the record and clears the
// code in one conditional update, so the first writer wins and a raced second
// attempt fails as invalid-or-expired.
type VerificationService interface {
	IssueCode(ctx context.Context, req *request.IssueCodeRequest) error
	CheckCode(ctx context.Context, code string) (string, error)
	SetPassword(ctx context.Context, req *request.SetPasswordRequest) (*response.SetPasswordResponse, error)

	IssueAdminCode(ctx context.Context, req *request.IssueCodeRequest) error
	SetAdminPassword(ctx context.Context, req *request.SetPasswordRequest) (*response.SetPasswordResponse, error)
}

type verificationService struct {
	repo   *repository.Repository
	config *utils.Config
	mailer gateway.Mailer
	audit  *auditor
	log    *zap.Logger
}

func NewVerificationService(
	repo *repository.Repository,
	config *utils.Config,
	mailer gateway.Mailer,
	audit *auditor,
	log *zap.Logger,
) VerificationService {
	return &verificationService{
		repo:   repo,
		config: config,
		mailer: mailer,
		audit:  audit,
		log:    log,
	}
}

func (s *verificationService) expiry() time.Time {
	return time.Now().Add(time.Duration(s.config.Code.ExpiryHours) * time.Hour)
}

func (s *verificationService) IssueCode(ctx context.Context, req *request.IssueCodeRequest) error {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Issue code validation failed", zap.Any("errors", errs))
		return validationError(errs)
	}

	// 2. Resolve the credential to get the registered email
	cred, err := s.repo.Credential.FindByUserID(ctx, req.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, req.UserID)
	}
	if err != nil {
		s.log.Error("Failed to fetch credential for code issue", zap.Error(err), zap.String("user_id", req.UserID))
		return fmt.Errorf("fetch credential: %w", err)
	}

	// 3. Generate and persist a fresh code. Re-issuing replaces any earlier
	//    code, which invalidates outstanding links for this identity.
	code := utils.GenerateVerificationCode()
	if err := s.repo.Credential.SaveVerificationCode(ctx, cred.Email, code, s.expiry()); err != nil {
		s.log.Error("Failed to save verification code", zap.Error(err), zap.String("user_id", req.UserID))
		return fmt.Errorf("save verification code: %w", err)
	}

	// 4. Mail the link to the identity itself; delivery failure does not
	//    invalidate the stored code.
	link := fmt.Sprintf("%s/set-password?code=%s", s.config.Client.URL, code)
	if err := s.mailer.SendVerificationLink(ctx, []string{cred.Email}, link); err != nil {
		s.log.Warn("Code mail delivery failed", zap.Error(err), zap.String("user_id", req.UserID))
	}

	s.audit.record(req.UserID, "code_issue", "/adviser/issue-code", "verification", "issue", "success",
		auditPayload(req, nil))
	s.log.Info("Verification code issued", zap.String("user_id", req.UserID))

	return nil
}

// CheckCode resolves an unexpired code to its user_id. The code stays valid
// until SetPassword consumes it.
func (s *verificationService) CheckCode(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("%w: code is required", ErrValidation)
	}

	cred, err := s.repo.Credential.FindByVerificationCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrCodeInvalidOrExpired
	}
	if err != nil {
		s.log.Error("Failed to check verification code", zap.Error(err))
		return "", fmt.Errorf("check verification code: %w", err)
	}

	return cred.UserID, nil
}

func (s *verificationService) SetPassword(ctx context.Context, req *request.SetPasswordRequest) (*response.SetPasswordResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Set password validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	// 2. Resolve the code to its credential
	cred, err := s.repo.Credential.FindByVerificationCode(ctx, req.Code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCodeInvalidOrExpired
	}
	if err != nil {
		s.log.Error("Failed to resolve verification code", zap.Error(err))
		return nil, fmt.Errorf("resolve verification code: %w", err)
	}

	// 3. Activation must be a legal move. An already-Active credential goes
	//    through the reset path, not the onboarding set.
	if !entity.CanTransitionCredential(cred.Status, entity.CredentialActive) {
		s.log.Warn("Password set on credential in non-settable state",
			zap.String("user_id", cred.UserID),
			zap.String("status", string(cred.Status)),
		)
		return nil, fmt.Errorf("%w: credential is %s", ErrInvalidTransition, cred.Status)
	}

	// 4. Hash and consume. The conditional update re-validates match and
	//    expiry, so a code cleared by a concurrent consumer fails here.
	digest, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash new password", zap.Error(err))
		return nil, fmt.Errorf("hash new password: %w", err)
	}

	err = s.repo.Credential.ConsumePassword(ctx, cred.UserID, req.Code, digest)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCodeInvalidOrExpired
	}
	if err != nil {
		s.log.Error("Failed to consume verification code", zap.Error(err), zap.String("user_id", cred.UserID))
		return nil, fmt.Errorf("consume verification code: %w", err)
	}

	resp := &response.SetPasswordResponse{
		UserID: cred.UserID,
		Status: string(entity.CredentialActive),
	}

	// The code and the new password never reach the trail.
	s.audit.record(cred.UserID, "password_set", "/adviser/set-password", "verification", "consume", "success",
		auditPayload(map[string]string{"user_id": cred.UserID}, resp))
	s.log.Info("Password set, credential activated", zap.String("user_id", cred.UserID))

	return resp, nil
}

func (s *verificationService) IssueAdminCode(ctx context.Context, req *request.IssueCodeRequest) error {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Issue admin code validation failed", zap.Any("errors", errs))
		return validationError(errs)
	}

	// 2. Resolve the admin record
	admin, err := s.repo.Admin.FindByUserID(ctx, req.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, req.UserID)
	}
	if err != nil {
		s.log.Error("Failed to fetch admin for code issue", zap.Error(err), zap.String("user_id", req.UserID))
		return fmt.Errorf("fetch admin: %w", err)
	}

	// 3. Generate and persist
	code := utils.GenerateVerificationCode()
	if err := s.repo.Admin.SaveVerificationCode(ctx, admin.Email, code, s.expiry()); err != nil {
		s.log.Error("Failed to save admin verification code", zap.Error(err), zap.String("user_id", req.UserID))
		return fmt.Errorf("save admin verification code: %w", err)
	}

	// 4. Mail the link
	link := fmt.Sprintf("%s/set-admin-password?code=%s", s.config.Client.URL, code)
	if err := s.mailer.SendVerificationLink(ctx, []string{admin.Email}, link); err != nil {
		s.log.Warn("Admin code mail delivery failed", zap.Error(err), zap.String("user_id", req.UserID))
	}

	s.audit.record(req.UserID, "code_issue", "/admin/invite-admin", "verification", "issue", "success",
		auditPayload(req, nil))
	s.log.Info("Admin verification code issued", zap.String("user_id", req.UserID))

	return nil
}

func (s *verificationService) SetAdminPassword(ctx context.Context, req *request.SetPasswordRequest) (*response.SetPasswordResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Set admin password validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	// 2. Resolve the code
	admin, err := s.repo.Admin.FindByVerificationCode(ctx, req.Code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCodeInvalidOrExpired
	}
	if err != nil {
		s.log.Error("Failed to resolve admin verification code", zap.Error(err))
		return nil, fmt.Errorf("resolve admin verification code: %w", err)
	}

	// 3. Activation must be a legal move
	if !entity.CanTransitionAdmin(admin.Status, entity.AdminActive) {
		s.log.Warn("Admin password set in non-settable state",
			zap.String("user_id", admin.UserID),
			zap.String("status", string(admin.Status)),
		)
		return nil, fmt.Errorf("%w: admin is %s", ErrInvalidTransition, admin.Status)
	}

	// 4. Hash and consume
	digest, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash new admin password", zap.Error(err))
		return nil, fmt.Errorf("hash new admin password: %w", err)
	}

	err = s.repo.Admin.ConsumePassword(ctx, admin.UserID, req.Code, digest)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCodeInvalidOrExpired
	}
	if err != nil {
		s.log.Error("Failed to consume admin verification code", zap.Error(err), zap.String("user_id", admin.UserID))
		return nil, fmt.Errorf("consume admin verification code: %w", err)
	}

	resp := &response.SetPasswordResponse{
		UserID: admin.UserID,
		Status: string(entity.AdminActive),
	}

	s.audit.record(admin.UserID, "password_set", "/admin/set-admin-password", "verification", "consume", "success",
		auditPayload(map[string]string{"user_id": admin.UserID}, resp))
	s.log.Info("Admin password set, record activated", zap.String("user_id", admin.UserID))

	return resp, nil
}
