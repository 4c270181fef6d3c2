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

type AdminService interface {
	CreateAdmin(ctx context.Context, req *request.CreateAdminRequest) (*response.AdminResponse, error)
	UpdateAdminStatus(ctx context.Context, req *request.UpdateStatusRequest) (*response.StatusResponse, error)
	UpdateAdviserStatus(ctx context.Context, req *request.UpdateStatusRequest) (*response.StatusResponse, error)
	UpdateCredentialStatus(ctx context.Context, req *request.UpdateStatusRequest) (*response.StatusResponse, error)

	GetAdviser(ctx context.Context, userID string) (*response.AdviserResponse, error)
	ListAdvisers(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.AdviserResponse], error)
	ListNewApplicants(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.AdviserResponse], error)
	ListAdmins(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.AdminResponse], error)
	ListEvents(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.EventResponse], error)
	GetEvent(ctx context.Context, eventID int64) (*response.EventDetailResponse, error)
}

type adminService struct {
	repo   *repository.Repository
	config *utils.Config
	mailer gateway.Mailer
	audit  *auditor
	log    *zap.Logger
}

func NewAdminService(
	repo *repository.Repository,
	config *utils.Config,
	mailer gateway.Mailer,
	audit *auditor,
	log *zap.Logger,
) AdminService {
	return &adminService{
		repo:   repo,
		config: config,
		mailer: mailer,
		audit:  audit,
		log:    log,
	}
}

// CreateAdmin provisions an admin record. With a password it is born Active;
// without one it starts Pending with a locked digest and a password-set link
// is mailed out, the same invite protocol advisers use.
func (s *adminService) CreateAdmin(ctx context.Context, req *request.CreateAdminRequest) (*response.AdminResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create admin validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	// 2. Duplicate pre-check
	existing, err := s.repo.Admin.FindByUserID(ctx, req.UserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.Error("Failed to check existing admin", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, fmt.Errorf("check existing admin: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrConflict, req.UserID)
	}

	// 3. Hash password or lock the account pending the invite flow
	status := entity.AdminActive
	plaintext := req.Password
	if plaintext == "" {
		plaintext = utils.GenerateLockedPassword()
		status = entity.AdminPending
	}
	digest, err := utils.HashPassword(plaintext)
	if err != nil {
		s.log.Error("Failed to hash admin password", zap.Error(err))
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	// 4. Persist
	admin := &entity.Admin{
		UserID:   req.UserID,
		Email:    req.Email,
		MobileNo: req.MobileNo,
		Digest:   digest,
		Status:   status,
	}
	if err := s.repo.Admin.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, fmt.Errorf("%w: %s", ErrConflict, req.UserID)
		}
		s.log.Error("Failed to create admin", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, fmt.Errorf("create admin: %w", err)
	}

	// 5. Pending admins get the invite mail; failure is non-fatal
	if status == entity.AdminPending {
		s.inviteAdmin(ctx, admin)
	}

	resp := response.NewAdminResponse(*admin)

	s.audit.record(req.UserID, "admin_create", "/admin/create-admin", "admin", string(status), "success",
		auditPayload(map[string]string{"user_id": req.UserID, "email": req.Email}, resp))
	s.log.Info("Admin created",
		zap.String("user_id", admin.UserID),
		zap.String("status", string(admin.Status)),
	)

	return &resp, nil
}

func (s *adminService) inviteAdmin(ctx context.Context, admin *entity.Admin) {
	code := utils.GenerateVerificationCode()
	expiresAt := time.Now().Add(time.Duration(s.config.Code.ExpiryHours) * time.Hour)
	if err := s.repo.Admin.SaveVerificationCode(ctx, admin.Email, code, expiresAt); err != nil {
		s.log.Warn("Failed to persist invite code", zap.Error(err), zap.String("user_id", admin.UserID))
		return
	}

	link := fmt.Sprintf("%s/set-admin-password?code=%s", s.config.Client.URL, code)
	if err := s.mailer.SendVerificationLink(ctx, []string{admin.Email}, link); err != nil {
		s.log.Warn("Invite mail delivery failed, admin record stands",
			zap.Error(err),
			zap.String("user_id", admin.UserID),
		)
	}
}

func (s *adminService) UpdateAdminStatus(ctx context.Context, req *request.UpdateStatusRequest) (*response.StatusResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update admin status validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	// 2. Fetch current state and check the move
	admin, err := s.repo.Admin.FindByUserID(ctx, req.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, req.UserID)
	}
	if err != nil {
		s.log.Error("Failed to fetch admin for status update", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, fmt.Errorf("fetch admin: %w", err)
	}

	target := entity.AdminStatus(req.Status)
	if !entity.CanTransitionAdmin(admin.Status, target) {
		return nil, fmt.Errorf("%w: admin %s -> %s", ErrInvalidTransition, admin.Status, target)
	}

	// 3. Apply
	if err := s.repo.Admin.UpdateStatus(ctx, req.UserID, target); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, req.UserID)
		}
		s.log.Error("Failed to update admin status", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, fmt.Errorf("update admin status: %w", err)
	}

	s.audit.record(req.UserID, "status_update", "/admin/update-admin-status", "admin", string(target), "success",
		auditPayload(req, response.StatusResponse{UserID: req.UserID, Status: string(target)}))
	s.log.Info("Admin status updated",
		zap.String("user_id", req.UserID),
		zap.String("from", string(admin.Status)),
		zap.String("to", string(target)),
	)

	return &response.StatusResponse{UserID: req.UserID, Status: string(target)}, nil
}

func (s *adminService) UpdateAdviserStatus(ctx context.Context, req *request.UpdateStatusRequest) (*response.StatusResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update adviser status validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	// 2. Fetch current state and check the move. Only forward transitions
	//    exist, so an approved adviser can never be pushed back to pending.
	profile, err := s.repo.Adviser.FindProfileByUserID(ctx, req.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, req.UserID)
	}
	if err != nil {
		s.log.Error("Failed to fetch adviser for status update", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, fmt.Errorf("fetch adviser: %w", err)
	}

	target := entity.AdviserStatus(req.Status)
	if !entity.CanTransitionAdviser(profile.Status, target) {
		return nil, fmt.Errorf("%w: adviser %s -> %s", ErrInvalidTransition, profile.Status, target)
	}

	// 3. Apply
	if err := s.repo.Adviser.UpdateStatusByUserID(ctx, req.UserID, target); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, req.UserID)
		}
		s.log.Error("Failed to update adviser status", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, fmt.Errorf("update adviser status: %w", err)
	}

	s.audit.record(req.UserID, "status_update", "/admin/update-adviser-status", "adviser", string(target), "success",
		auditPayload(req, response.StatusResponse{UserID: req.UserID, Status: string(target)}))
	s.log.Info("Adviser status updated",
		zap.String("user_id", req.UserID),
		zap.String("from", string(profile.Status)),
		zap.String("to", string(target)),
	)

	return &response.StatusResponse{UserID: req.UserID, Status: string(target)}, nil
}

func (s *adminService) UpdateCredentialStatus(ctx context.Context, req *request.UpdateStatusRequest) (*response.StatusResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update credential status validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	// 2. Fetch current state and check the move
	cred, err := s.repo.Credential.FindByUserID(ctx, req.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, req.UserID)
	}
	if err != nil {
		s.log.Error("Failed to fetch credential for status update", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, fmt.Errorf("fetch credential: %w", err)
	}

	target := entity.CredentialStatus(req.Status)
	if !entity.CanTransitionCredential(cred.Status, target) {
		return nil, fmt.Errorf("%w: credential %s -> %s", ErrInvalidTransition, cred.Status, target)
	}

	// 3. Apply
	if err := s.repo.Credential.UpdateStatus(ctx, req.UserID, target); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, req.UserID)
		}
		s.log.Error("Failed to update credential status", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, fmt.Errorf("update credential status: %w", err)
	}

	s.audit.record(req.UserID, "status_update", "/admin/update-credential-status", "credential", string(target), "success",
		auditPayload(req, response.StatusResponse{UserID: req.UserID, Status: string(target)}))
	s.log.Info("Credential status updated",
		zap.String("user_id", req.UserID),
		zap.String("from", string(cred.Status)),
		zap.String("to", string(target)),
	)

	return &response.StatusResponse{UserID: req.UserID, Status: string(target)}, nil
}

func (s *adminService) GetAdviser(ctx context.Context, userID string) (*response.AdviserResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}

	profile, err := s.repo.Adviser.FindProfileByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, userID)
	}
	if err != nil {
		s.log.Error("Failed to fetch adviser profile", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("fetch adviser profile: %w", err)
	}

	resp := response.NewAdviserResponse(*profile)
	return &resp, nil
}

func (s *adminService) ListAdvisers(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.AdviserResponse], error) {
	perPage := utils.ClampPageSize(page.PerPage, s.config.App.PageSize)
	offset := utils.CalculateOffset(page.Page, perPage)

	profiles, err := s.repo.Adviser.FindProfiles(ctx, perPage, offset)
	if err != nil {
		s.log.Error("Failed to list advisers", zap.Error(err))
		return nil, fmt.Errorf("list advisers: %w", err)
	}
	total, err := s.repo.Adviser.CountProfiles(ctx)
	if err != nil {
		s.log.Error("Failed to count advisers", zap.Error(err))
		return nil, fmt.Errorf("count advisers: %w", err)
	}

	return pagedProfiles(profiles, page.Page, perPage, total), nil
}

func (s *adminService) ListNewApplicants(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.AdviserResponse], error) {
	perPage := utils.ClampPageSize(page.PerPage, s.config.App.PageSize)
	offset := utils.CalculateOffset(page.Page, perPage)

	profiles, err := s.repo.Adviser.FindProfilesByStatus(ctx, entity.AdviserPendingApproval, false, perPage, offset)
	if err != nil {
		s.log.Error("Failed to list new applicants", zap.Error(err))
		return nil, fmt.Errorf("list new applicants: %w", err)
	}
	total, err := s.repo.Adviser.CountProfilesByStatus(ctx, entity.AdviserPendingApproval, false)
	if err != nil {
		s.log.Error("Failed to count new applicants", zap.Error(err))
		return nil, fmt.Errorf("count new applicants: %w", err)
	}

	return pagedProfiles(profiles, page.Page, perPage, total), nil
}

func pagedProfiles(profiles []*entity.AdviserProfile, page, perPage int, total int64) *response.PaginatedResponse[response.AdviserResponse] {
	items := make([]response.AdviserResponse, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, response.NewAdviserResponse(*p))
	}
	resp := response.NewPaginatedResponse(items, page, perPage, int(total), utils.CalculateTotalPages(total, perPage))
	return &resp
}

func (s *adminService) ListAdmins(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.AdminResponse], error) {
	perPage := utils.ClampPageSize(page.PerPage, s.config.App.PageSize)
	offset := utils.CalculateOffset(page.Page, perPage)

	admins, err := s.repo.Admin.FindAll(ctx, perPage, offset)
	if err != nil {
		s.log.Error("Failed to list admins", zap.Error(err))
		return nil, fmt.Errorf("list admins: %w", err)
	}
	total, err := s.repo.Admin.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count admins", zap.Error(err))
		return nil, fmt.Errorf("count admins: %w", err)
	}

	items := make([]response.AdminResponse, 0, len(admins))
	for _, a := range admins {
		items = append(items, response.NewAdminResponse(*a))
	}
	resp := response.NewPaginatedResponse(items, page.Page, perPage, int(total), utils.CalculateTotalPages(total, perPage))
	return &resp, nil
}

func (s *adminService) ListEvents(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.EventResponse], error) {
	perPage := utils.ClampPageSize(page.PerPage, s.config.App.PageSize)
	offset := utils.CalculateOffset(page.Page, perPage)

	events, err := s.repo.Event.FindAll(ctx, perPage, offset)
	if err != nil {
		s.log.Error("Failed to list events", zap.Error(err))
		return nil, fmt.Errorf("list events: %w", err)
	}
	total, err := s.repo.Event.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count events", zap.Error(err))
		return nil, fmt.Errorf("count events: %w", err)
	}

	items := make([]response.EventResponse, 0, len(events))
	for _, e := range events {
		items = append(items, response.NewEventResponse(*e))
	}
	resp := response.NewPaginatedResponse(items, page.Page, perPage, int(total), utils.CalculateTotalPages(total, perPage))
	return &resp, nil
}

func (s *adminService) GetEvent(ctx context.Context, eventID int64) (*response.EventDetailResponse, error) {
	if eventID < 1 {
		return nil, fmt.Errorf("%w: event id is required", ErrValidation)
	}

	full, err := s.repo.Event.FindByID(ctx, eventID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: event %d", ErrNotFound, eventID)
	}
	if err != nil {
		s.log.Error("Failed to fetch event", zap.Error(err), zap.Int64("event_id", eventID))
		return nil, fmt.Errorf("fetch event: %w", err)
	}

	resp := response.NewEventDetailResponse(*full)
	return &resp, nil
}
