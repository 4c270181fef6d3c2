package repository

import (
	"context"
	"fmt"

	"adviser-portal/internal/data/entity"
	"adviser-portal/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EventRepository interface {
	// Store writes an event and its payload. Callers treat failures as
	// log-only; an audit write must never fail the traced operation.
	Store(ctx context.Context, event *entity.Event, payload *entity.EventPayload) error
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Event, error)
	FindByID(ctx context.Context, eventID int64) (*entity.FullEvent, error)
	CountAll(ctx context.Context) (int64, error)
}

type eventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEventRepository(db database.PgxIface, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "events")),
	}
}

func (r *eventRepository) Store(ctx context.Context, event *entity.Event, payload *entity.EventPayload) error {
	insertEvent := `
		INSERT INTO event (trace_id, user_id, event_type, endpoint, direction, process, step, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, insertEvent,
		event.TraceID,
		event.UserID,
		event.EventType,
		event.Endpoint,
		event.Direction,
		event.Process,
		event.Step,
		event.Status,
	).Scan(&event.ID)
	if err != nil {
		r.log.Error("Failed to store event",
			zap.Error(err),
			zap.String("user_id", event.UserID),
			zap.String("event_type", event.EventType),
		)
		return fmt.Errorf("store event for %s: %w", event.UserID, classify(err))
	}

	if payload == nil {
		return nil
	}

	insertPayload := `
		INSERT INTO event_payload (event_id, request, result, response)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.Exec(ctx, insertPayload, event.ID, payload.Request, payload.Result, payload.Response); err != nil {
		r.log.Error("Failed to store event payload",
			zap.Error(err),
			zap.Int64("event_id", event.ID),
		)
		return fmt.Errorf("store event payload %d: %w", event.ID, classify(err))
	}

	return nil
}

func (r *eventRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Event, error) {
	query := `
		SELECT id, trace_id, user_id, create_date, event_type, endpoint,
		       direction, process, step, status
		FROM event
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list events", zap.Error(err))
		return nil, fmt.Errorf("list events: %w", classify(err))
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		var event entity.Event
		err := rows.Scan(
			&event.ID,
			&event.TraceID,
			&event.UserID,
			&event.CreateDate,
			&event.EventType,
			&event.Endpoint,
			&event.Direction,
			&event.Process,
			&event.Step,
			&event.Status,
		)
		if err != nil {
			r.log.Error("Failed to scan event row", zap.Error(err))
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}

	return events, nil
}

func (r *eventRepository) FindByID(ctx context.Context, eventID int64) (*entity.FullEvent, error) {
	// Payload rows are optional; an event written without one must still
	// resolve, so this is a left join with empty-string fallbacks.
	query := `
		SELECT e.id, COALESCE(ep.id, 0) AS epid, e.trace_id, e.user_id, e.create_date, e.event_type,
		       e.endpoint, e.direction, e.process, e.step, e.status,
		       COALESCE(ep.request, ''), COALESCE(ep.result, ''), COALESCE(ep.response, '')
		FROM event e
		LEFT JOIN event_payload ep ON e.id = ep.event_id
		WHERE e.id = $1
		LIMIT 1
	`

	var full entity.FullEvent
	err := r.db.QueryRow(ctx, query, eventID).Scan(
		&full.ID,
		&full.PayloadID,
		&full.TraceID,
		&full.UserID,
		&full.CreateDate,
		&full.EventType,
		&full.Endpoint,
		&full.Direction,
		&full.Process,
		&full.Step,
		&full.Status,
		&full.Request,
		&full.Result,
		&full.Response,
	)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find event", zap.Error(err), zap.Int64("event_id", eventID))
		return nil, fmt.Errorf("find event %d: %w", eventID, classify(err))
	}

	return &full, nil
}

func (r *eventRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM event`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count events", zap.Error(err))
		return 0, fmt.Errorf("count events: %w", err)
	}

	return count, nil
}
