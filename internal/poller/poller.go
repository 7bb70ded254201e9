// Package poller runs the poll, detect and notify loop for one tracked homework.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"homework_bot/internal/homework"
	"homework_bot/internal/model"
	"homework_bot/internal/notify"
	"homework_bot/internal/practicum"
	"homework_bot/internal/storage"
	"homework_bot/internal/telegram"
)

// Client fetches the raw API payload for a cursor.
type Client interface {
	Poll(ctx context.Context, cursor int64) (any, error)
}

// Sender is the interface for delivering notifications.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Poller polls the homework API and reports status changes and failures.
// It is not safe for concurrent use; Run drives it from a single goroutine.
type Poller struct {
	client  Client
	sender  Sender
	journal storage.Journal
	log     *slog.Logger
	pacer   *pacer

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	cursor    int64
	lastError string
}

// New creates a Poller that waits interval (randomized by ±jitter) between cycles.
func New(client Client, sender Sender, journal storage.Journal, log *slog.Logger, interval time.Duration, jitter float64) *Poller {
	if journal == nil {
		journal = storage.Nop{}
	}
	return &Poller{
		client:  client,
		sender:  sender,
		journal: journal,
		log:     log,
		pacer:   newPacer(interval, jitter),
		now:     time.Now,
		sleep:   sleep,
		cursor:  model.InitialCursor,
	}
}

// Cursor returns the from_date used for the next poll.
func (p *Poller) Cursor() int64 {
	return p.cursor
}

// Run polls until ctx is cancelled. Failures never stop the loop.
func (p *Poller) Run(ctx context.Context) {
	for {
		wait := p.Cycle(ctx)
		if ctx.Err() != nil {
			return
		}
		p.log.Debug("waiting for next cycle", "wait", wait)
		if err := p.sleep(ctx, wait); err != nil {
			return
		}
	}
}

// Cycle runs one poll cycle and returns how long to wait before the next one.
func (p *Poller) Cycle(ctx context.Context) time.Duration {
	before := p.cursor
	out := p.poll(ctx)
	if ctx.Err() != nil {
		return 0
	}

	notified, shorten := p.handle(ctx, out)
	p.cursor = out.Cursor

	entry := model.CycleEntry{
		CursorBefore: before,
		CursorAfter:  p.cursor,
		Outcome:      out.Kind,
		Failure:      out.Failure,
		Message:      out.Message,
		Notified:     notified,
		CreatedAt:    p.now().UTC(),
	}
	if err := p.journal.Append(ctx, &entry); err != nil {
		p.log.Error("journal cycle", "error", err)
	}

	wait := p.pacer.next()
	if shorten {
		wait /= 2
	}
	return wait
}

func (p *Poller) poll(ctx context.Context) model.Outcome {
	p.log.Debug("polling homework statuses", "from_date", p.cursor)

	raw, err := p.client.Poll(ctx, p.cursor)
	if err != nil {
		return p.failed(err)
	}

	snap, err := homework.Validate(raw)
	if err != nil {
		return p.failed(err)
	}
	if snap.Empty {
		return model.Outcome{Kind: model.OutcomeNoChange, Cursor: p.advance(p.now().Unix())}
	}

	rec, err := homework.DecodeRecord(snap.Latest)
	if err != nil {
		return p.failed(err)
	}
	p.logUpdated(rec)

	msg, err := homework.Translate(rec)
	if err != nil {
		return p.failed(err)
	}

	next := snap.CurrentDate
	if next == 0 {
		next = p.now().Unix()
		p.log.Warn("response has no usable current_date, using local time", "cursor", next)
	}
	return model.Outcome{Kind: model.OutcomeStatusChanged, Message: msg, Cursor: p.advance(next)}
}

func (p *Poller) failed(err error) model.Outcome {
	return model.Outcome{
		Kind:    model.OutcomeFailed,
		Message: notify.FormatFailure(err),
		Failure: KindOf(err),
		Err:     err,
		Cursor:  p.cursor,
	}
}

// advance never moves the cursor backwards.
func (p *Poller) advance(to int64) int64 {
	return max(p.cursor, to)
}

func (p *Poller) logUpdated(rec model.HomeworkRecord) {
	if rec.DateUpdated == "" {
		return
	}
	at, err := time.Parse(model.DateLayout, rec.DateUpdated)
	if err != nil {
		p.log.Warn("unparsable date_updated", "homework", rec.Name, "date_updated", rec.DateUpdated, "error", err)
		return
	}
	p.log.Info("homework updated", "homework", rec.Name, "status", rec.Status, "updated_at", at.Format(time.DateTime))
}

// handle notifies the operator about out. It reports whether a message was
// delivered and whether the next wait should be shortened.
func (p *Poller) handle(ctx context.Context, out model.Outcome) (notified, shorten bool) {
	switch out.Kind {
	case model.OutcomeNoChange:
		p.log.Info("homework status unchanged", "since", p.cursor)
		p.lastError = ""
		return false, false

	case model.OutcomeStatusChanged:
		p.lastError = ""
		return p.send(ctx, out.Message)

	default:
		p.log.Error("poll cycle failed", "critical", true, "kind", out.Failure, "error", out.Err)
		if !notify.ShouldSend(out.Message, p.lastError) {
			p.log.Debug("failure already reported, not notifying", "kind", out.Failure)
			return false, false
		}
		notified, shorten = p.send(ctx, out.Message)
		p.lastError = out.Message
		return notified, shorten
	}
}

// send delivers text on a best-effort basis; errors are logged and swallowed.
func (p *Poller) send(ctx context.Context, text string) (sent, shorten bool) {
	if err := p.sender.Send(ctx, text); err != nil {
		p.log.Error("send notification", "error", err)
		return false, errors.Is(err, telegram.ErrNetwork)
	}
	return true, false
}

// KindOf classifies a cycle error.
func KindOf(err error) model.FailureKind {
	switch {
	case errors.Is(err, practicum.ErrTransport):
		return model.FailureTransport
	case errors.Is(err, practicum.ErrEndpointUnavailable):
		return model.FailureEndpointUnavailable
	case errors.Is(err, practicum.ErrMalformedPayload):
		return model.FailureMalformedPayload
	case errors.Is(err, homework.ErrEmptyResponse):
		return model.FailureEmptyResponse
	case errors.Is(err, homework.ErrWrongShape):
		return model.FailureWrongShape
	case errors.Is(err, homework.ErrMissingField):
		return model.FailureMissingField
	case errors.Is(err, homework.ErrInvalidRecord):
		return model.FailureInvalidRecord
	case errors.Is(err, homework.ErrUnknownStatus):
		return model.FailureUnknownStatus
	default:
		return model.FailureUnknown
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
