// Package model defines the domain types used across the application.
package model

import "time"

// InitialCursor is the from_date used for the first poll after start.
const InitialCursor int64 = 1

// DateLayout is the format of HomeworkRecord.DateUpdated.
const DateLayout = "2006-01-02T15:04:05Z"

// HomeworkRecord is a single homework entry reported by the review API.
type HomeworkRecord struct {
	Name        string `validate:"required"`
	Status      string `validate:"required"`
	DateUpdated string
}

// FailureKind classifies why a poll cycle failed.
type FailureKind string

// Supported failure kinds.
const (
	FailureTransport           FailureKind = "transport_failure"
	FailureEndpointUnavailable FailureKind = "endpoint_unavailable"
	FailureMalformedPayload    FailureKind = "malformed_payload"
	FailureEmptyResponse       FailureKind = "empty_response"
	FailureWrongShape          FailureKind = "wrong_shape"
	FailureMissingField        FailureKind = "missing_field"
	FailureInvalidRecord       FailureKind = "invalid_record"
	FailureUnknownStatus       FailureKind = "unknown_status"
	FailureUnknown             FailureKind = "unknown"
)

// OutcomeKind is the tag of a cycle Outcome.
type OutcomeKind string

// Supported outcome kinds.
const (
	OutcomeNoChange      OutcomeKind = "no_change"
	OutcomeStatusChanged OutcomeKind = "status_changed"
	OutcomeFailed        OutcomeKind = "failed"
)

// Outcome is the result of one poll cycle.
// Message is set for StatusChanged and Failed; Failure and Err only for Failed.
// Cursor is the cursor to use for the next poll.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Failure FailureKind
	Err     error
	Cursor  int64
}

// CycleEntry is one journaled poll cycle.
type CycleEntry struct {
	ID           int64
	CursorBefore int64
	CursorAfter  int64
	Outcome      OutcomeKind
	Failure      FailureKind
	Message      string
	Notified     bool
	CreatedAt    time.Time
}
