package domain

import "time"

// StatusClientClosedRequest is stored when the connection went away before
// any status was written.
const StatusClientClosedRequest = 499

// MetricRecord is one observation of a single request.
type MetricRecord struct {
	ID         string    `json:"id" bson:"_id"`
	SubjectID  string    `json:"subject_id" bson:"subject_id"`
	Method     string    `json:"method" bson:"method"`
	Path       string    `json:"path" bson:"path"`
	Status     int       `json:"status" bson:"status"`
	ElapsedMs  int64     `json:"elapsed_ms" bson:"elapsed_ms"`
	CapturedAt time.Time `json:"captured_at" bson:"captured_at"`
	RemoteAddr string    `json:"remote_addr,omitempty" bson:"remote_addr,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	// Aborted is set when the connection closed before the handler finished.
	Aborted bool `json:"aborted,omitempty" bson:"aborted,omitempty"`
}
