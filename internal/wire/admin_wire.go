package wire

import (
	"adviser-portal/internal/adaptor"
	"adviser-portal/pkg/middleware"
	"adviser-portal/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	handler *adaptor.AdminHandler,
	tokens *token.Service,
	log *zap.Logger,
) {
	// Public admin surface
	r.Post("/admin/root-sign-in", handler.RootSignIn)
	r.Post("/admin/admin-sign-in", handler.AdminSignIn)
	r.Post("/admin/set-admin-password", handler.SetAdminPassword)

	// Root-only surface
	r.Group(func(r chi.Router) {
		r.Use(middleware.VerifyToken(tokens, log))
		r.Use(middleware.Root(log))

		r.Post("/admin/create-admin", handler.CreateAdmin)
		r.Put("/admin/update-admin-status", handler.UpdateAdminStatus)
	})

	// Admin (admin or root) surface
	r.Group(func(r chi.Router) {
		r.Use(middleware.VerifyToken(tokens, log))
		r.Use(middleware.Admin(log))

		r.Post("/admin/invite-admin", handler.InviteAdmin)
		r.Put("/admin/update-adviser-status", handler.UpdateAdviserStatus)
		r.Put("/admin/update-credential-status", handler.UpdateCredentialStatus)

		r.Get("/admin/adviser/{userId}", handler.GetAdviser)
		r.Get("/admin/advisers", handler.ListAdvisers)
		r.Get("/admin/new-applicants", handler.ListNewApplicants)
		r.Get("/admin/admins", handler.ListAdmins)
		r.Get("/admin/events", handler.ListEvents)
		r.Get("/admin/events/{eventId}", handler.GetEvent)
	})
}
