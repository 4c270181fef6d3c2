package wire

import (
	"adviser-portal/internal/adaptor"
	"adviser-portal/pkg/middleware"
	"adviser-portal/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdviser(
	r chi.Router,
	handler *adaptor.AdviserHandler,
	tokens *token.Service,
	log *zap.Logger,
) {
	// Public onboarding surface
	r.Post("/adviser/register-adviser", handler.Register)
	r.Post("/adviser/sign-in", handler.SignIn)
	r.Post("/adviser/issue-code", handler.IssueCode)
	r.Get("/adviser/check-code/{code}", handler.CheckCode)
	r.Post("/adviser/set-password", handler.SetPassword)

	// Authenticated adviser surface
	r.Group(func(r chi.Router) {
		r.Use(middleware.VerifyToken(tokens, log))

		r.Get("/adviser/profile", handler.GetProfile)
		r.Post("/adviser/save-applicant-file", handler.SaveApplicantFile)
		r.Post("/adviser/query-platform-adviser", handler.QueryPlatformAdviser)
	})
}
