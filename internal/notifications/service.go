package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"traduce/internal/config"
)

const userAgent = "Traduce/0.1.0"

// Event identifies a notification category.
type Event string

const (
	EventMatchFound     Event = "match_found"
	EventReviewNeeded   Event = "review_needed"
	EventQueueStarted   Event = "queue_started"
	EventQueueCompleted Event = "queue_completed"
	EventError          Event = "error"
	EventTest           Event = "test"
)

// Payload carries event-specific values used to render the message.
type Payload map[string]any

// Service is the notification surface exposed to the workflow manager and CLI.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:      topic,
		client:        &http.Client{Timeout: timeout},
		investigation: cfg.Notifications.Investigation,
		queue:         cfg.Notifications.Queue,
		errors:        cfg.Notifications.Errors,
	}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint      string
	client        *http.Client
	investigation bool
	queue         bool
	errors        bool
}

func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	if !n.enabled(event) {
		return nil
	}
	msg, err := render(event, payload)
	if err != nil {
		return err
	}
	return n.send(ctx, msg)
}

func (n *ntfyService) enabled(event Event) bool {
	switch event {
	case EventMatchFound, EventReviewNeeded:
		return n.investigation
	case EventQueueStarted, EventQueueCompleted:
		return n.queue
	case EventError:
		return n.errors
	default:
		return true
	}
}

func render(event Event, payload Payload) (message, error) {
	switch event {
	case EventMatchFound:
		title := payload.text("title")
		candidate := payload.text("candidate")
		body := fmt.Sprintf("Translation found: %s", title)
		if candidate != "" {
			body = fmt.Sprintf("%s\nMatched: %s", body, candidate)
		}
		if score, ok := payload.number("score"); ok {
			body = fmt.Sprintf("%s (score %d)", body, score)
		}
		return message{
			title:    "Traduce - Match Found",
			body:     body,
			tags:     []string{"traduce", "match", "found"},
			priority: "high",
		}, nil
	case EventReviewNeeded:
		title := payload.text("title")
		body := fmt.Sprintf("Needs review: %s", title)
		if reason := payload.text("reason"); reason != "" {
			body = fmt.Sprintf("%s\n%s", body, reason)
		}
		return message{
			title: "Traduce - Review Needed",
			body:  body,
			tags:  []string{"traduce", "review"},
		}, nil
	case EventQueueStarted:
		count, _ := payload.number("count")
		return message{
			title: "Traduce - Queue Started",
			body:  fmt.Sprintf("Started investigating %d queued books", count),
			tags:  []string{"traduce", "queue", "started"},
		}, nil
	case EventQueueCompleted:
		processed, _ := payload.number("processed")
		failed, _ := payload.number("failed")
		duration := payload.duration("duration").Round(time.Second)
		if duration < 0 {
			duration = 0
		}
		var body string
		title := "Traduce - Queue Complete"
		if failed == 0 {
			body = fmt.Sprintf("Queue complete: %d books investigated in %s", processed, duration)
		} else {
			title = "Traduce - Queue Complete (with errors)"
			body = fmt.Sprintf("Queue complete: %d succeeded, %d failed in %s", processed, failed, duration)
		}
		return message{
			title: title,
			body:  body,
			tags:  []string{"traduce", "queue", "completed"},
		}, nil
	case EventError:
		var builder strings.Builder
		builder.WriteString("Error")
		if label := payload.text("context"); label != "" {
			builder.WriteString(" with ")
			builder.WriteString(label)
		}
		builder.WriteString(": ")
		if err, ok := payload["error"].(error); ok && err != nil {
			builder.WriteString(strings.TrimSpace(err.Error()))
		} else if text := payload.text("error"); text != "" {
			builder.WriteString(text)
		} else {
			builder.WriteString("unknown")
		}
		return message{
			title:    "Traduce - Error",
			body:     builder.String(),
			tags:     []string{"traduce", "error", "alert"},
			priority: "high",
		}, nil
	case EventTest:
		return message{
			title:    "Traduce - Test",
			body:     "Notification system test",
			tags:     []string{"traduce", "test"},
			priority: "low",
		}, nil
	}
	return message{}, fmt.Errorf("unknown notification event %q", event)
}

func (n *ntfyService) send(ctx context.Context, msg message) error {
	if n == nil || n.client == nil {
		return nil
	}
	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.body))
			if err != nil {
				return fmt.Errorf("build ntfy request: %w", err)
			}
			req.Header.Set("User-Agent", userAgent)
			req.Header.Set("Content-Type", "text/plain; charset=utf-8")
			if msg.title != "" {
				req.Header.Set("Title", msg.title)
			}
			if len(msg.tags) > 0 {
				req.Header.Set("Tags", strings.Join(msg.tags, ","))
			}
			if msg.priority != "" && msg.priority != "default" {
				req.Header.Set("Priority", msg.priority)
			}

			resp, err := n.client.Do(req)
			if err != nil {
				return fmt.Errorf("send ntfy notification: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 300 {
				body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
				return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }

func (p Payload) text(key string) string {
	if p == nil {
		return ""
	}
	if value, ok := p[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func (p Payload) number(key string) (int, bool) {
	if p == nil {
		return 0, false
	}
	switch value := p[key].(type) {
	case int:
		return value, true
	case int64:
		return int(value), true
	}
	return 0, false
}

func (p Payload) duration(key string) time.Duration {
	if p == nil {
		return 0
	}
	if value, ok := p[key].(time.Duration); ok {
		return value
	}
	return 0
}
