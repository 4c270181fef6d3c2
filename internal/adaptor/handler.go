package adaptor

import (
	"errors"
	"net/http"

	"adviser-portal/internal/usecase"
	"adviser-portal/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Adviser *AdviserHandler
	Admin   *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Adviser: NewAdviserHandler(service, log),
		Admin:   NewAdminHandler(service, log),
	}
}

// handleServiceError maps domain errors onto HTTP responses. Anything not in
// the taxonomy is a 500 with a generic message; detail stays in the logs.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidParent), errors.Is(err, usecase.ErrInvalidRequest):
		log.Warn(operation+" failed - domain rule", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrCodeInvalidOrExpired):
		log.Warn(operation+" failed - code invalid or expired", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn(operation+" failed - transition not allowed", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
