package entity

import "time"

// Event is an audit trace row. Writes are fire-and-forget; a failed event
// insert never fails the operation it describes.
type Event struct {
	ID         int64     `db:"id"`
	TraceID    string    `db:"trace_id"`
	UserID     string    `db:"user_id"`
	CreateDate time.Time `db:"create_date"`
	EventType  string    `db:"event_type"`
	Endpoint   string    `db:"endpoint"`
	Direction  string    `db:"direction"`
	Process    string    `db:"process"`
	Step       string    `db:"step"`
	Status     string    `db:"status"`
}

type EventPayload struct {
	ID       int64  `db:"id"`
	EventID  int64  `db:"event_id"`
	Request  string `db:"request"`
	Result   string `db:"result"`
	Response string `db:"response"`
}

// FullEvent joins event and event_payload for detail reads.
type FullEvent struct {
	Event
	PayloadID int64  `db:"epid"`
	Request   string `db:"request"`
	Result    string `db:"result"`
	Response  string `db:"response"`
}
