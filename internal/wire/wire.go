package wire

import (
	"net/http"

	"adviser-portal/internal/adaptor"
	"adviser-portal/internal/data/repository"
	"adviser-portal/internal/gateway"
	"adviser-portal/internal/usecase"
	"adviser-portal/pkg/middleware"
	"adviser-portal/pkg/token"
	"adviser-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring builds the services, handlers and routes from their dependencies.
func Wiring(repo *repository.Repository, config *utils.Config, tokens *token.Service, logger *zap.Logger) *App {
	verifier := gateway.NewIdentityVerifier(config.External.IPRSBaseURL, config.External.IPRSAPIKey, logger)
	mailer := gateway.NewMailer(config.External.MailAPIURL, config.External.MailFrom, logger)

	service := usecase.NewService(repo, config, tokens, verifier, mailer, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, tokens, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, tokens *token.Service, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Routes
	wireAdviser(r, handler.Adviser, tokens, logger)
	wireAdmin(r, handler.Admin, tokens, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
