package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"adviser-portal/internal/dto/request"
	"adviser-portal/internal/usecase"
	"adviser-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	auth         usecase.AuthService
	verification usecase.VerificationService
	admin        usecase.AdminService
	log          *zap.Logger
}

func NewAdminHandler(service *usecase.Service, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		auth:         service.Auth,
		verification: service.Verification,
		admin:        service.Admin,
		log:          log,
	}
}

// RootSignIn handles POST /admin/root-sign-in
func (h *AdminHandler) RootSignIn(w http.ResponseWriter, r *http.Request) {
	var req request.RootSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.auth.RootSignIn(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "root sign in")
		return
	}

	w.Header().Set("x-access-token", resp.Token)
	utils.ResponseSuccess(w, "Sign-in successful", resp)
}

// AdminSignIn handles POST /admin/admin-sign-in
func (h *AdminHandler) AdminSignIn(w http.ResponseWriter, r *http.Request) {
	var req request.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.auth.AdminSignIn(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "admin sign in")
		return
	}

	w.Header().Set("x-access-token", resp.Token)
	utils.ResponseSuccess(w, "Sign-in successful", resp)
}

// CreateAdmin handles POST /admin/create-admin
func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.admin.CreateAdmin(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create admin")
		return
	}

	utils.ResponseCreated(w, "Admin created", resp)
}

// InviteAdmin handles POST /admin/invite-admin: re-issues the password-set
// code for an existing admin record.
func (h *AdminHandler) InviteAdmin(w http.ResponseWriter, r *http.Request) {
	var req request.IssueCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.verification.IssueAdminCode(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "invite admin")
		return
	}

	utils.ResponseSuccess(w, "Invite sent", nil)
}

// SetAdminPassword handles POST /admin/set-admin-password
func (h *AdminHandler) SetAdminPassword(w http.ResponseWriter, r *http.Request) {
	var req request.SetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.verification.SetAdminPassword(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "set admin password")
		return
	}

	utils.ResponseSuccess(w, "Password set", resp)
}

// UpdateAdminStatus handles PUT /admin/update-admin-status
func (h *AdminHandler) UpdateAdminStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.admin.UpdateAdminStatus(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update admin status")
		return
	}

	utils.ResponseSuccess(w, "Status updated", resp)
}

// UpdateAdviserStatus handles PUT /admin/update-adviser-status
func (h *AdminHandler) UpdateAdviserStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.admin.UpdateAdviserStatus(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update adviser status")
		return
	}

	utils.ResponseSuccess(w, "Status updated", resp)
}

// UpdateCredentialStatus handles PUT /admin/update-credential-status
func (h *AdminHandler) UpdateCredentialStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.admin.UpdateCredentialStatus(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update credential status")
		return
	}

	utils.ResponseSuccess(w, "Status updated", resp)
}

// GetAdviser handles GET /admin/adviser/{userId}
func (h *AdminHandler) GetAdviser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	resp, err := h.admin.GetAdviser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get adviser")
		return
	}

	utils.ResponseSuccess(w, "Adviser fetched", resp)
}

// ListAdvisers handles GET /admin/advisers?page=&per_page=
func (h *AdminHandler) ListAdvisers(w http.ResponseWriter, r *http.Request) {
	resp, err := h.admin.ListAdvisers(r.Context(), pageFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list advisers")
		return
	}

	utils.ResponseSuccess(w, "Advisers fetched", resp)
}

// ListNewApplicants handles GET /admin/new-applicants?page=&per_page=
func (h *AdminHandler) ListNewApplicants(w http.ResponseWriter, r *http.Request) {
	resp, err := h.admin.ListNewApplicants(r.Context(), pageFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list new applicants")
		return
	}

	utils.ResponseSuccess(w, "New applicants fetched", resp)
}

// ListAdmins handles GET /admin/admins?page=&per_page=
func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	resp, err := h.admin.ListAdmins(r.Context(), pageFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list admins")
		return
	}

	utils.ResponseSuccess(w, "Admins fetched", resp)
}

// ListEvents handles GET /admin/events?page=&per_page=
func (h *AdminHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	resp, err := h.admin.ListEvents(r.Context(), pageFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list events")
		return
	}

	utils.ResponseSuccess(w, "Events fetched", resp)
}

// GetEvent handles GET /admin/events/{eventId}
func (h *AdminHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(chi.URLParam(r, "eventId"), 10, 64)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid event id", nil)
		return
	}

	resp, err := h.admin.GetEvent(r.Context(), eventID)
	if err != nil {
		handleServiceError(w, h.log, err, "get event")
		return
	}

	utils.ResponseSuccess(w, "Event fetched", resp)
}

func pageFromQuery(r *http.Request) request.PaginatedRequest {
	return request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 0),
	}
}
