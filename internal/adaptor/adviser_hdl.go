package adaptor

import (
	"encoding/json"
	"net/http"

	"adviser-portal/internal/dto/request"
	"adviser-portal/internal/usecase"
	"adviser-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdviserHandler struct {
	registration usecase.RegistrationService
	auth         usecase.AuthService
	verification usecase.VerificationService
	admin        usecase.AdminService
	log          *zap.Logger
}

func NewAdviserHandler(service *usecase.Service, log *zap.Logger) *AdviserHandler {
	return &AdviserHandler{
		registration: service.Registration,
		auth:         service.Auth,
		verification: service.Verification,
		admin:        service.Admin,
		log:          log,
	}
}

// Register handles POST /adviser/register-adviser
func (h *AdviserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.registration.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful", resp)
}

// SignIn handles POST /adviser/sign-in
func (h *AdviserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req request.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.auth.SignIn(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "sign in")
		return
	}

	// Token travels both in the header and the payload.
	w.Header().Set("x-access-token", resp.Token)
	utils.ResponseSuccess(w, "Sign-in successful", resp)
}

// IssueCode handles POST /adviser/issue-code
func (h *AdviserHandler) IssueCode(w http.ResponseWriter, r *http.Request) {
	var req request.IssueCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.verification.IssueCode(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "issue code")
		return
	}

	utils.ResponseSuccess(w, "Verification code issued", nil)
}

// CheckCode handles GET /adviser/check-code/{code}
func (h *AdviserHandler) CheckCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	userID, err := h.verification.CheckCode(r.Context(), code)
	if err != nil {
		handleServiceError(w, h.log, err, "check code")
		return
	}

	utils.ResponseSuccess(w, "Code is valid", map[string]string{"user_id": userID})
}

// SetPassword handles POST /adviser/set-password
func (h *AdviserHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.SetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.verification.SetPassword(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "set password")
		return
	}

	utils.ResponseSuccess(w, "Password set", resp)
}

// GetProfile handles GET /adviser/profile for the signed-in identity.
func (h *AdviserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	resp, err := h.admin.GetAdviser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile fetched", resp)
}

// SaveApplicantFile handles POST /adviser/save-applicant-file
func (h *AdviserHandler) SaveApplicantFile(w http.ResponseWriter, r *http.Request) {
	var req request.SaveFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.registration.SaveApplicantFile(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "save applicant file")
		return
	}

	utils.ResponseCreated(w, "File stored", resp)
}

// QueryPlatformAdviser handles POST /adviser/query-platform-adviser
func (h *AdviserHandler) QueryPlatformAdviser(w http.ResponseWriter, r *http.Request) {
	var req request.PlatformAdviserQuery
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	record, err := h.registration.QueryPlatformAdviser(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "query platform adviser")
		return
	}

	utils.ResponseSuccess(w, "Registry record fetched", record)
}
