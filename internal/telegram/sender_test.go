package telegram

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"syscall"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/go-cmp/cmp"
)

type sentMsg struct {
	ChatID int64
	Text   string
}

type mockAPI struct {
	sent []sentMsg
	err  error
}

func (m *mockAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m.err != nil {
		return tgbotapi.Message{}, m.err
	}
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		m.sent = append(m.sent, sentMsg{ChatID: msg.ChatID, Text: msg.Text})
	}
	return tgbotapi.Message{}, nil
}

func TestSend(t *testing.T) {
	api := &mockAPI{}
	s := newSender(api, 42, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := s.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []sentMsg{{ChatID: 42, Text: "hello"}}
	if diff := cmp.Diff(want, api.sent); diff != "" {
		t.Errorf("sent mismatch (-want +got):\n%s", diff)
	}
}

func TestSendErrors(t *testing.T) {
	tests := []struct {
		name    string
		apiErr  error
		wantErr error
	}{
		{
			name:    "api refused",
			apiErr:  &tgbotapi.Error{Code: 400, Message: "Bad Request: chat not found"},
			wantErr: ErrRejected,
		},
		{
			name:    "network failure",
			apiErr:  &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
			wantErr: ErrNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSender(&mockAPI{err: tt.apiErr}, 42, slog.New(slog.NewTextHandler(io.Discard, nil)))
			err := s.Send(context.Background(), "hello")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSendCancelled(t *testing.T) {
	api := &mockAPI{}
	s := newSender(api, 42, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Send(ctx, "hello"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(api.sent) != 0 {
		t.Errorf("expected nothing sent, got %d messages", len(api.sent))
	}
}

type failingTransport struct{}

func (failingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if strings.HasSuffix(req.URL.Path, "/getMe") {
		body := `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"bot","username":"homework_bot"}}`
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}, nil
	}
	return nil, os.NewSyscallError("read", syscall.ECONNRESET)
}

func TestSendNetworkErrorHidesToken(t *testing.T) {
	const token = "123:SECRET"
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Transport: failingTransport{}})
	if err != nil {
		t.Fatalf("create bot api: %v", err)
	}
	s := newSender(api, 42, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err = s.Send(context.Background(), "hello")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected %v, got %v", ErrNetwork, err)
	}
	if strings.Contains(err.Error(), "SECRET") {
		t.Errorf("error %q leaks the bot token", err)
	}
	if !errors.Is(err, syscall.ECONNRESET) {
		t.Errorf("error %q lost its cause", err)
	}
}
