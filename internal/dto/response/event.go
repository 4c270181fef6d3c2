package response

import (
	"time"

	"adviser-portal/internal/data/entity"
)

type EventResponse struct {
	ID         int64     `json:"id"`
	TraceID    string    `json:"trace_id"`
	UserID     string    `json:"user_id"`
	CreateDate time.Time `json:"create_date"`
	EventType  string    `json:"event_type"`
	Endpoint   string    `json:"endpoint"`
	Direction  string    `json:"direction"`
	Process    string    `json:"process"`
	Step       string    `json:"step"`
	Status     string    `json:"status"`
}

func NewEventResponse(e entity.Event) EventResponse {
	return EventResponse{
		ID:         e.ID,
		TraceID:    e.TraceID,
		UserID:     e.UserID,
		CreateDate: e.CreateDate,
		EventType:  e.EventType,
		Endpoint:   e.Endpoint,
		Direction:  e.Direction,
		Process:    e.Process,
		Step:       e.Step,
		Status:     e.Status,
	}
}

type EventDetailResponse struct {
	EventResponse
	Request  string `json:"request"`
	Result   string `json:"result"`
	Response string `json:"response"`
}

func NewEventDetailResponse(e entity.FullEvent) EventDetailResponse {
	return EventDetailResponse{
		EventResponse: NewEventResponse(e.Event),
		Request:       e.Request,
		Result:        e.Result,
		Response:      e.Response,
	}
}
