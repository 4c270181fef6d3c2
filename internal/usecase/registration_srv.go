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

type RegistrationService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error)
	SaveApplicantFile(ctx context.Context, req *request.SaveFileRequest) (*response.SaveFileResponse, error)
	QueryPlatformAdviser(ctx context.Context, req *request.PlatformAdviserQuery) (*gateway.IdentityRecord, error)
}

type registrationService struct {
	repo     *repository.Repository
	config   *utils.Config
	verifier gateway.IdentityVerifier
	mailer   gateway.Mailer
	audit    *auditor
	log      *zap.Logger
}

func NewRegistrationService(
	repo *repository.Repository,
	config *utils.Config,
	verifier gateway.IdentityVerifier,
	mailer gateway.Mailer,
	audit *auditor,
	log *zap.Logger,
) RegistrationService {
	return &registrationService{
		repo:     repo,
		config:   config,
		verifier: verifier,
		mailer:   mailer,
		audit:    audit,
		log:      log,
	}
}

func (s *registrationService) Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	kind := entity.RegistrationKind(req.Kind)

	// 2. A staff user cannot register under itself
	if kind == entity.RegStaff && req.AdviserUserID == req.UserID {
		s.log.Warn("Staff registration references itself", zap.String("user_id", req.UserID))
		return nil, fmt.Errorf("%w: staff user cannot be its own adviser", ErrInvalidRequest)
	}
	if kind == entity.RegStaff && req.AdviserUserID == "" {
		return nil, fmt.Errorf("%w: adviser_user_id is required for staff", ErrValidation)
	}

	// 3. Duplicate pre-check. The store's uniqueness constraint is the real
	//    backstop; this read only gives a friendlier early answer.
	existing, err := s.repo.Credential.FindByUserID(ctx, req.UserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.Error("Failed to check existing credential", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, fmt.Errorf("check existing credential: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrConflict, req.UserID)
	}

	// 4. Resolve the parent adviser for staff users
	var parentAdviserID *int64
	if kind == entity.RegStaff {
		parent, err := s.repo.Credential.FindByUserID(ctx, req.AdviserUserID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidParent, req.AdviserUserID)
		}
		if err != nil {
			s.log.Error("Failed to resolve parent adviser", zap.Error(err), zap.String("adviser_user_id", req.AdviserUserID))
			return nil, fmt.Errorf("resolve parent adviser: %w", err)
		}
		if parent.CredentialType != entity.CredentialAdviserAdmin || parent.AdviserID == nil {
			return nil, fmt.Errorf("%w: %s is not an adviser admin", ErrInvalidParent, req.AdviserUserID)
		}
		parentAdviserID = parent.AdviserID
	}

	// 5. Hash the password. A missing password gets a random one, locking the
	//    account until the verification-code flow sets a real password.
	credStatus := entity.CredentialActive
	plaintext := req.Password
	if plaintext == "" {
		plaintext = utils.GenerateLockedPassword()
		credStatus = entity.CredentialNotSet
	}
	digest, err := utils.HashPassword(plaintext)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 6. Assemble and persist the bundle
	bundle, err := s.buildBundle(kind, req, digest, credStatus, parentAdviserID)
	if err != nil {
		return nil, err
	}

	if kind == entity.RegApplicant {
		s.autoApprove(ctx, bundle, req)
	}

	if err := s.repo.Adviser.CreateBundle(ctx, bundle); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			// Lost the race against a concurrent registration for the same id.
			return nil, fmt.Errorf("%w: %s", ErrConflict, req.UserID)
		}
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidParent, req.AdviserUserID)
		}
		s.log.Error("Failed to create registration bundle", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, fmt.Errorf("create registration bundle: %w", err)
	}

	// 7. A pending registration triggers the password-set mail to active
	//    admins. Failure here never rolls the registration back.
	adviserStatus := entity.AdviserStatus("")
	if bundle.Adviser != nil {
		adviserStatus = bundle.Adviser.Status
	}
	if adviserStatus == entity.AdviserPendingApproval {
		s.notifyPending(ctx, bundle.Credential.Email)
	}

	resp := &response.RegisterResponse{
		UserID:           bundle.Credential.UserID,
		CredentialType:   string(bundle.Credential.CredentialType),
		CredentialStatus: string(bundle.Credential.Status),
		AdviserStatus:    string(adviserStatus),
	}
	if bundle.Adviser != nil {
		resp.AdviserID = bundle.Adviser.ID
	} else if bundle.Credential.AdviserID != nil {
		resp.AdviserID = *bundle.Credential.AdviserID
	}

	s.audit.record(req.UserID, "registration", "/adviser/register-adviser", "register", string(kind), "success",
		auditPayload(map[string]string{"user_id": req.UserID, "reg_type": string(kind)}, resp))
	s.log.Info("Identity registered",
		zap.String("user_id", req.UserID),
		zap.String("kind", string(kind)),
		zap.String("adviser_status", string(adviserStatus)),
	)

	return resp, nil
}

// buildBundle maps a registration kind onto the rows it creates. Staff users
// carry no adviser or contact row of their own; they attach to the parent.
func (s *registrationService) buildBundle(
	kind entity.RegistrationKind,
	req *request.RegisterRequest,
	digest string,
	credStatus entity.CredentialStatus,
	parentAdviserID *int64,
) (*entity.Bundle, error) {
	cred := &entity.Credential{
		UserID:   req.UserID,
		Email:    req.Adviser.PrimaryEmail,
		MobileNo: req.Adviser.MobileNo,
		Digest:   digest,
		Status:   credStatus,
		RBAC:     entity.RBACRegistered,
	}

	bundle := &entity.Bundle{Credential: cred}

	switch kind {
	case entity.RegMigrated:
		cred.CredentialType = entity.CredentialAdviserAdmin
		bundle.Adviser = s.newAdviser(req, entity.IntermediaryMigrated, entity.AdviserApproved)
		bundle.Contact = s.newContact(req)
	case entity.RegApplicant:
		cred.CredentialType = entity.CredentialAdviserApplicant
		bundle.Adviser = s.newAdviser(req, entity.IntermediaryApplicant, entity.AdviserPendingApproval)
		bundle.Contact = s.newContact(req)
	case entity.RegStaff:
		cred.CredentialType = entity.CredentialAdviserUser
		cred.AdviserID = parentAdviserID
	default:
		return nil, fmt.Errorf("%w: unknown registration kind %q", ErrValidation, kind)
	}

	legalEntity, err := s.newLegalEntity(kind, req)
	if err != nil {
		return nil, err
	}
	bundle.Entity = legalEntity

	return bundle, nil
}

func (s *registrationService) newAdviser(req *request.RegisterRequest, intermediary entity.IntermediaryType, status entity.AdviserStatus) *entity.Adviser {
	legalType := entity.LegalEntityPerson
	if req.LegalEntityType == string(entity.LegalEntityNonPerson) {
		legalType = entity.LegalEntityNonPerson
	}

	return &entity.Adviser{
		KraPIN:           req.Adviser.KraPIN,
		AccountNo:        req.Adviser.AccountNo,
		PartnerNumber:    req.Adviser.PartnerNumber,
		IntermediaryType: intermediary,
		LegalEntityType:  legalType,
		Country:          req.Adviser.Country,
		Status:           status,
	}
}

func (s *registrationService) newContact(req *request.RegisterRequest) *entity.Contact {
	return &entity.Contact{
		MobileNo:          req.Adviser.MobileNo,
		SecondaryMobileNo: req.Adviser.SecondaryMobile,
		PrimaryEmail:      req.Adviser.PrimaryEmail,
		SecondaryEmail:    req.Adviser.SecondaryEmail,
		FixedPhoneNo:      req.Adviser.PrimaryPhone,
		SecondaryFixedNo:  req.Adviser.SecondaryPhone,
		PrimaryAddress:    req.Adviser.PrimaryAddress,
		SecondaryAddress:  req.Adviser.SecondaryAddress,
		City:              req.Adviser.City,
		SecondaryCity:     req.Adviser.SecondaryCity,
		Country:           req.Adviser.Country,
	}
}

// newLegalEntity builds the person / non-person variant. Staff users always
// get a person row; for advisers the legal_entity_type discriminant decides.
func (s *registrationService) newLegalEntity(kind entity.RegistrationKind, req *request.RegisterRequest) (entity.LegalEntity, error) {
	if kind != entity.RegStaff && req.LegalEntityType == string(entity.LegalEntityNonPerson) {
		incorporated, err := parseDate(req.Adviser.DateOfIncorporation)
		if err != nil {
			return entity.LegalEntity{}, fmt.Errorf("%w: date_of_incorporation: %v", ErrValidation, err)
		}
		names := req.Adviser.Names
		if names == "" {
			names = req.Adviser.FullNames
		}
		return entity.LegalEntity{NonPerson: &entity.NonPersonEntity{
			UserID:              req.UserID,
			IDNumber:            req.Adviser.IDNumber,
			IDType:              req.Adviser.IDType,
			DateOfIncorporation: incorporated,
			Names:               names,
		}}, nil
	}

	born, err := parseDate(req.Adviser.DateOfBirth)
	if err != nil {
		return entity.LegalEntity{}, fmt.Errorf("%w: date_of_birth: %v", ErrValidation, err)
	}
	return entity.LegalEntity{Person: &entity.PersonEntity{
		UserID:      req.UserID,
		IDNumber:    req.Adviser.IDNumber,
		IDType:      req.Adviser.IDType,
		DateOfBirth: born,
		FirstName:   req.Adviser.FirstName,
		LastName:    req.Adviser.LastName,
		FullNames:   req.Adviser.FullNames,
		Gender:      req.Adviser.Gender,
	}}, nil
}

// autoApprove upgrades an applicant to Approved when the national registry
// confirms the identity document. Lookup failures leave the applicant pending.
func (s *registrationService) autoApprove(ctx context.Context, bundle *entity.Bundle, req *request.RegisterRequest) {
	if s.verifier == nil {
		return
	}

	record, err := s.verifier.Verify(ctx, req.Adviser.IDNumber, req.Adviser.IDType)
	if err != nil {
		s.log.Warn("Identity verification unavailable, applicant stays pending",
			zap.Error(err),
			zap.String("user_id", req.UserID),
		)
		return
	}
	if record.Valid {
		bundle.Adviser.Status = entity.AdviserApproved
	}
}

// notifyPending issues a verification code against the new identity's email
// and mails the password-set link to every active admin.
func (s *registrationService) notifyPending(ctx context.Context, email string) {
	admins, err := s.repo.Admin.FindByStatus(ctx, entity.AdminActive)
	if err != nil {
		s.log.Warn("Failed to fetch admin recipients, skipping notification", zap.Error(err))
		return
	}

	code := utils.GenerateVerificationCode()
	expiresAt := time.Now().Add(time.Duration(s.config.Code.ExpiryHours) * time.Hour)
	if err := s.repo.Credential.SaveVerificationCode(ctx, email, code, expiresAt); err != nil {
		s.log.Warn("Failed to persist verification code", zap.Error(err), zap.String("email", email))
		return
	}

	recipients := make([]string, 0, len(admins))
	for _, admin := range admins {
		recipients = append(recipients, admin.Email)
	}
	if len(recipients) == 0 {
		s.log.Warn("No active admins to notify", zap.String("email", email))
		return
	}

	link := fmt.Sprintf("%s/set-password?code=%s", s.config.Client.URL, code)
	if err := s.mailer.SendVerificationLink(ctx, recipients, link); err != nil {
		s.log.Warn("Notification delivery failed, registration stands",
			zap.Error(err),
			zap.String("email", email),
		)
	}
}

func (s *registrationService) SaveApplicantFile(ctx context.Context, req *request.SaveFileRequest) (*response.SaveFileResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Save file validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	// 2. The file must belong to a known identity
	if _, err := s.repo.Credential.FindByUserID(ctx, req.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, req.UserID)
		}
		s.log.Error("Failed to check file owner", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, fmt.Errorf("check file owner: %w", err)
	}

	// 3. Store the file record
	file := &entity.ApplicantFile{
		UserID:   req.UserID,
		FileDesc: req.FileDesc,
		FileData: req.FileData,
	}
	if err := s.repo.File.Create(ctx, file); err != nil {
		s.log.Error("Failed to store applicant file", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, fmt.Errorf("store applicant file: %w", err)
	}

	resp := &response.SaveFileResponse{FileID: file.ID, UserID: file.UserID}

	// File data itself stays out of the trail; the descriptor is enough.
	s.audit.record(req.UserID, "file_upload", "/adviser/save-applicant-file", "register", "file", "success",
		auditPayload(map[string]string{"user_id": req.UserID, "file_desc": req.FileDesc}, resp))

	return resp, nil
}

func (s *registrationService) QueryPlatformAdviser(ctx context.Context, req *request.PlatformAdviserQuery) (*gateway.IdentityRecord, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Platform query validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	// 2. Proxy the registry lookup
	record, err := s.verifier.Verify(ctx, req.IDNumber, req.IDType)
	if err != nil {
		if errors.Is(err, gateway.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no registry match", ErrNotFound)
		}
		s.log.Error("Registry lookup failed", zap.Error(err), zap.String("id_type", req.IDType))
		return nil, fmt.Errorf("registry lookup: %w", err)
	}

	return record, nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}
