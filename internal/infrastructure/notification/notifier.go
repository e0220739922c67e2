package notification

import (
	"context"
	"time"

	resty "github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Template names for outbound notifications
const (
	TemplateRequestReceived          = "request_received"
	TemplateRequestAccepted          = "request_accepted"
	TemplateRequestRejected          = "request_rejected"
	TemplateAppointmentCreated       = "appointment_created"
	TemplateAppointmentStatusChanged = "appointment_status_changed"
	TemplateAppointmentCanceled      = "appointment_canceled"
)

// Event is a single outbound notification
type Event struct {
	Template  string         `json:"template"`
	Recipient string         `json:"recipient"`
	Data      map[string]any `json:"data,omitempty"`
}

// Notifier delivers notification events to an external sink. Delivery is
// best effort: business operations never fail because a notification
// could not be sent.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// WebhookNotifier posts events to a configured webhook endpoint
type WebhookNotifier struct {
	client *resty.Client
	logger *zap.Logger
}

// NewWebhookNotifier creates a notifier that posts JSON events to url
func NewWebhookNotifier(url string, timeout time.Duration, logger *zap.Logger) *WebhookNotifier {
	client := resty.New().
		SetBaseURL(url).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &WebhookNotifier{
		client: client,
		logger: logger.Named("notifier"),
	}
}

// Notify posts the event. Failures are logged and swallowed.
func (n *WebhookNotifier) Notify(ctx context.Context, event Event) {
	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post("")
	if err != nil {
		n.logger.Warn("notification delivery failed",
			zap.String("template", event.Template),
			zap.String("recipient", event.Recipient),
			zap.Error(err),
		)
		return
	}
	if resp.IsError() {
		n.logger.Warn("notification sink returned error",
			zap.String("template", event.Template),
			zap.String("recipient", event.Recipient),
			zap.Int("status", resp.StatusCode()),
		)
		return
	}
	n.logger.Debug("notification delivered",
		zap.String("template", event.Template),
		zap.String("recipient", event.Recipient),
	)
}

var _ Notifier = (*WebhookNotifier)(nil)

// AsyncNotifier wraps another notifier and dispatches events on a
// goroutine so callers never wait on delivery. A panic in the sink is
// recovered and logged.
type AsyncNotifier struct {
	sink    Notifier
	logger  *zap.Logger
	timeout time.Duration
}

// NewAsyncNotifier wraps sink with fire-and-forget dispatch
func NewAsyncNotifier(sink Notifier, timeout time.Duration, logger *zap.Logger) *AsyncNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AsyncNotifier{
		sink:    sink,
		logger:  logger.Named("notifier"),
		timeout: timeout,
	}
}

// Notify dispatches the event in the background. The caller's context is
// not reused: delivery outlives the request that triggered it.
func (n *AsyncNotifier) Notify(_ context.Context, event Event) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				n.logger.Error("notification dispatch panicked",
					zap.String("template", event.Template),
					zap.Any("panic", r),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		n.sink.Notify(ctx, event)
	}()
}

var _ Notifier = (*AsyncNotifier)(nil)

// NopNotifier discards all events. Used when notifications are disabled.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Event) {}

var _ Notifier = NopNotifier{}
