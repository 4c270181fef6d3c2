package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"adviser-portal/internal/data/entity"
	"adviser-portal/internal/data/repository"
	"adviser-portal/internal/dto/request"
	"adviser-portal/internal/dto/response"
	"adviser-portal/pkg/token"
	"adviser-portal/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	SignIn(ctx context.Context, req *request.SignInRequest) (*response.SignInResponse, error)
	AdminSignIn(ctx context.Context, req *request.SignInRequest) (*response.SignInResponse, error)
	RootSignIn(ctx context.Context, req *request.RootSignInRequest) (*response.SignInResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	tokens *token.Service
	audit  *auditor
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	tokens *token.Service,
	audit *auditor,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		tokens: tokens,
		audit:  audit,
		log:    log,
	}
}

func (s *authService) SignIn(ctx context.Context, req *request.SignInRequest) (*response.SignInResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Sign-in validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	// 2. Fetch the credential. Unknown user and wrong password collapse into
	//    one answer so callers cannot probe which accounts exist.
	cred, err := s.repo.Credential.FindByUserID(ctx, req.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("Sign-in for unknown user", zap.String("user_id", req.UserID))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		s.log.Error("Failed to fetch credential", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, fmt.Errorf("fetch credential: %w", err)
	}

	// 3. Verify password
	if !utils.CheckPasswordHash(req.Password, cred.Digest) {
		s.log.Warn("Sign-in with wrong password", zap.String("user_id", req.UserID))
		return nil, ErrInvalidCredentials
	}

	// 4. Only an Active credential may authenticate
	if cred.Status != entity.CredentialActive {
		s.log.Warn("Sign-in on non-active credential",
			zap.String("user_id", req.UserID),
			zap.String("status", string(cred.Status)),
		)
		return nil, ErrInvalidCredentials
	}

	// 5. Assemble the claim payload from the full profile
	claims := token.Claims{
		UserID:   cred.UserID,
		Role:     string(cred.CredentialType),
		Email:    cred.Email,
		MobileNo: cred.MobileNo,
	}

	profile, err := s.repo.Adviser.FindProfileByUserID(ctx, cred.UserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.Error("Failed to fetch adviser profile", zap.Error(err), zap.String("user_id", cred.UserID))
		return nil, fmt.Errorf("fetch adviser profile: %w", err)
	}
	if profile != nil {
		claims.Names = profile.Names
		claims.Adviser = &token.AdviserClaims{
			Names:            profile.Names,
			AdviserID:        profile.AdviserID,
			Address:          profile.Address,
			MobileNo:         profile.MobileNo,
			FixedPhone:       profile.FixedPhone,
			Email:            profile.Email,
			KraPIN:           profile.KraPIN,
			AccountNumber:    profile.AccountNumber,
			PartnerNumber:    profile.PartnerNumber,
			IntermediaryType: string(profile.IntermediaryType),
		}
	}

	// 6. Sign the token
	signed, err := s.tokens.Sign(claims)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", cred.UserID))
		return nil, fmt.Errorf("sign token: %w", err)
	}

	// Only the identity and role reach the trail; the token never does.
	s.audit.record(cred.UserID, "sign_in", "/adviser/sign-in", "auth", "adviser", "success",
		auditPayload(map[string]string{"user_id": cred.UserID, "role": claims.Role}, nil))
	s.log.Info("Adviser signed in",
		zap.String("user_id", cred.UserID),
		zap.String("role", claims.Role),
	)

	resp := &response.SignInResponse{
		Token:    signed,
		UserID:   cred.UserID,
		Role:     claims.Role,
		Names:    claims.Names,
		Verified: cred.IsVerified,
	}
	if profile != nil {
		resp.Status = string(profile.Status)
	}
	return resp, nil
}

func (s *authService) AdminSignIn(ctx context.Context, req *request.SignInRequest) (*response.SignInResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Admin sign-in validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	// 2. Fetch the admin record
	admin, err := s.repo.Admin.FindByUserID(ctx, req.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("Admin sign-in for unknown user", zap.String("user_id", req.UserID))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		s.log.Error("Failed to fetch admin", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, fmt.Errorf("fetch admin: %w", err)
	}

	// 3. Verify password and status
	if !utils.CheckPasswordHash(req.Password, admin.Digest) {
		s.log.Warn("Admin sign-in with wrong password", zap.String("user_id", req.UserID))
		return nil, ErrInvalidCredentials
	}
	if admin.Status != entity.AdminActive {
		s.log.Warn("Sign-in on non-active admin",
			zap.String("user_id", req.UserID),
			zap.String("status", string(admin.Status)),
		)
		return nil, ErrInvalidCredentials
	}

	// 4. Sign the token
	signed, err := s.tokens.Sign(token.Claims{
		UserID:   admin.UserID,
		Role:     string(entity.CredentialAdmin),
		Email:    admin.Email,
		MobileNo: admin.MobileNo,
	})
	if err != nil {
		s.log.Error("Failed to sign admin token", zap.Error(err), zap.String("user_id", admin.UserID))
		return nil, fmt.Errorf("sign admin token: %w", err)
	}

	s.audit.record(admin.UserID, "sign_in", "/admin/admin-sign-in", "auth", "admin", "success",
		auditPayload(map[string]string{"user_id": admin.UserID, "role": string(entity.CredentialAdmin)}, nil))
	s.log.Info("Admin signed in", zap.String("user_id", admin.UserID))

	return &response.SignInResponse{
		Token:    signed,
		UserID:   admin.UserID,
		Role:     string(entity.CredentialAdmin),
		Status:   string(admin.Status),
		Verified: admin.IsVerified,
	}, nil
}

// RootSignIn compares the shared secret, not a per-user password. A match
// issues a root token with a fixed subject.
func (s *authService) RootSignIn(_ context.Context, req *request.RootSignInRequest) (*response.SignInResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Root sign-in validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	// 2. Constant-time secret comparison
	if s.config.Root.Secret == "" ||
		subtle.ConstantTimeCompare([]byte(req.Secret), []byte(s.config.Root.Secret)) != 1 {
		s.log.Warn("Root sign-in with wrong secret")
		return nil, ErrInvalidCredentials
	}

	// 3. Sign the token
	signed, err := s.tokens.Sign(token.Claims{
		UserID: "root",
		Role:   string(entity.CredentialRoot),
	})
	if err != nil {
		s.log.Error("Failed to sign root token", zap.Error(err))
		return nil, fmt.Errorf("sign root token: %w", err)
	}

	s.audit.record("root", "sign_in", "/admin/root-sign-in", "auth", "root", "success",
		auditPayload(map[string]string{"user_id": "root", "role": string(entity.CredentialRoot)}, nil))
	s.log.Info("Root signed in")

	return &response.SignInResponse{
		Token:    signed,
		UserID:   "root",
		Role:     string(entity.CredentialRoot),
		Verified: true,
	}, nil
}
