package whisper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"joystick.io/fleet-control/pkg/common"
)

const (
	EventSMSReceived = "sms:received"

	DefaultReplyTimeout = 80 * time.Second
)

var (
	ErrReplyTimeout   = errors.New("SMS response timeout")
	ErrInvalidMessage = errors.New("phone numbers and message are required")
)

// Sender delivers one message to one number. remote.SMSGateway implements it.
type Sender interface {
	Send(ctx context.Context, number, message string) (json.RawMessage, error)
}

type Reply struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type WebhookPayload struct {
	Message     string `json:"message"`
	PhoneNumber string `json:"phoneNumber"`
	ReceivedAt  string `json:"receivedAt"`
}

type WebhookEvent struct {
	Event   string          `json:"event"`
	ID      string          `json:"id"`
	Status  string          `json:"status"`
	Payload *WebhookPayload `json:"payload"`
}

// Whisper sends SMS commands to devices and hands back the first reply from
// the device's number. At most one wait is pending per number; a newer send
// to the same number takes over the wait.
type Whisper struct {
	Gateway      Sender
	ReplyTimeout time.Duration

	mu      sync.Mutex
	pending map[string]chan Reply
}

func New(gateway Sender, replyTimeout time.Duration) *Whisper {
	if replyTimeout <= 0 {
		replyTimeout = DefaultReplyTimeout
	}
	return &Whisper{
		Gateway:      gateway,
		ReplyTimeout: replyTimeout,
		pending:      make(map[string]chan Reply),
	}
}

func (w *Whisper) logger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameWhisper)
}

func (w *Whisper) PendingCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

func (w *Whisper) register(number string) chan Reply {
	ch := make(chan Reply, 1)
	w.mu.Lock()
	w.pending[number] = ch
	w.mu.Unlock()
	return ch
}

func (w *Whisper) release(number string, ch chan Reply) {
	w.mu.Lock()
	if w.pending[number] == ch {
		delete(w.pending, number)
	}
	w.mu.Unlock()
}

// SendAndWait sends message to every number and waits for the reply from the
// first one.
func (w *Whisper) SendAndWait(ctx context.Context, numbers []string, message string) (*Reply, error) {
	if len(numbers) == 0 || numbers[0] == "" || message == "" {
		return nil, ErrInvalidMessage
	}

	key := numbers[0]
	ch := w.register(key)
	defer w.release(key, ch)

	for _, number := range numbers {
		result, err := w.Gateway.Send(ctx, number, message)
		if err != nil {
			return nil, err
		}
		w.logger().Info("SMS sent", zap.String("number", number), zap.ByteString("result", result))
	}

	timer := time.NewTimer(w.ReplyTimeout)
	defer timer.Stop()

	select {
	case reply := <-ch:
		return &reply, nil
	case <-timer.C:
		return nil, fmt.Errorf("%s: %w", key, ErrReplyTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Receive resolves the wait for the sender of a received SMS. It reports
// whether a wait was pending.
func (w *Whisper) Receive(event WebhookEvent) bool {
	if event.Event != EventSMSReceived || event.Payload == nil || event.Payload.PhoneNumber == "" {
		return false
	}

	number := event.Payload.PhoneNumber
	w.mu.Lock()
	ch, ok := w.pending[number]
	if ok {
		delete(w.pending, number)
	}
	w.mu.Unlock()

	if !ok {
		w.logger().Debug("No pending SMS for number", zap.String("number", number))
		return false
	}

	id := event.ID
	if id == "" {
		id = "unknown"
	}
	ch <- Reply{
		ID:        id,
		Status:    event.Status,
		Message:   event.Payload.Message,
		Timestamp: time.Now().UnixMilli(),
	}
	return true
}
