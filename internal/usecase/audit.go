package usecase

import (
	"context"
	"encoding/json"
	"time"

	"adviser-portal/internal/data/entity"
	"adviser-portal/internal/data/repository"
	"adviser-portal/pkg/utils"

	"go.uber.org/zap"
)

// auditor writes trace events in the background. Every write is
// fire-and-forget: a failed audit insert is logged and swallowed, never
// surfaced to the operation it describes.
type auditor struct {
	events  repository.EventRepository
	enabled bool
	log     *zap.Logger
}

func newAuditor(events repository.EventRepository, enabled bool, log *zap.Logger) *auditor {
	return &auditor{
		events:  events,
		enabled: enabled,
		log:     log.With(zap.String("component", "auditor")),
	}
}

func (a *auditor) record(userID, eventType, endpoint, process, step, status string, payload *entity.EventPayload) {
	if !a.enabled {
		return
	}
	if payload != nil && payload.Result == "" {
		payload.Result = status
	}

	event := &entity.Event{
		TraceID:   utils.GenerateUUIDString(),
		UserID:    userID,
		EventType: eventType,
		Endpoint:  endpoint,
		Direction: "inbound",
		Process:   process,
		Step:      step,
		Status:    status,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := a.events.Store(ctx, event, payload); err != nil {
			a.log.Warn("Audit event dropped",
				zap.Error(err),
				zap.String("user_id", userID),
				zap.String("event_type", eventType),
			)
		}
	}()
}

// auditPayload serialises the request and response views of an operation for
// the event_payload row. Callers pass sanitised views only: no passwords,
// verification codes or signed tokens.
func auditPayload(request, response any) *entity.EventPayload {
	return &entity.EventPayload{
		Request:  auditJSON(request),
		Response: auditJSON(response),
	}
}

func auditJSON(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
