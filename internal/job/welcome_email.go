package job

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// TypeWelcomeEmail identifies WelcomeEmailJob envelopes.
const TypeWelcomeEmail = "welcome_email"

// Mailer delivers transactional email.
type Mailer interface {
	SendWelcome(ctx context.Context, email string) error
}

// WelcomeEmailPayload is the serialized payload of a WelcomeEmailJob.
type WelcomeEmailPayload struct {
	Email string `json:"email"`
}

// WelcomeEmailJob sends the welcome message to a newly registered user.
type WelcomeEmailJob struct {
	id      uuid.UUID
	payload WelcomeEmailPayload
	mailer  Mailer
}

// Ensure WelcomeEmailJob implements Job interface
var _ Job = (*WelcomeEmailJob)(nil)

// NewWelcomeEmailJob creates a job addressed to email.
func NewWelcomeEmailJob(email string, mailer Mailer) *WelcomeEmailJob {
	return &WelcomeEmailJob{
		id:      uuid.New(),
		payload: WelcomeEmailPayload{Email: email},
		mailer:  mailer,
	}
}

// WelcomeEmailFactory returns a Factory that rebuilds welcome jobs bound to mailer.
func WelcomeEmailFactory(mailer Mailer) Factory {
	return func(id uuid.UUID, payload []byte) (Job, error) {
		var p WelcomeEmailPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("invalid welcome email payload: %w", err)
		}
		if p.Email == "" {
			return nil, fmt.Errorf("invalid welcome email payload: empty email")
		}
		return &WelcomeEmailJob{id: id, payload: p, mailer: mailer}, nil
	}
}

// ID implements Job.
func (j *WelcomeEmailJob) ID() uuid.UUID { return j.id }

// Type implements Job.
func (j *WelcomeEmailJob) Type() string { return TypeWelcomeEmail }

// Email returns the recipient address.
func (j *WelcomeEmailJob) Email() string { return j.payload.Email }

// Payload implements Job.
func (j *WelcomeEmailJob) Payload() []byte {
	// Marshalling a struct with one string field cannot fail.
	b, _ := json.Marshal(j.payload)
	return b
}

// Execute implements Job.
func (j *WelcomeEmailJob) Execute(ctx context.Context) error {
	if j.mailer == nil {
		return fmt.Errorf("welcome email job %s has no mailer", j.id)
	}
	return j.mailer.SendWelcome(ctx, j.payload.Email)
}

// DefaultWelcomeMailDelay is the simulated provider latency used by the
// server and the worker.
const DefaultWelcomeMailDelay = 2 * time.Second

// LogMailer writes deliveries to the log instead of sending mail. Delay
// simulates the latency of a real provider.
type LogMailer struct {
	logger *slog.Logger
	delay  time.Duration
}

// Ensure LogMailer implements Mailer interface
var _ Mailer = (*LogMailer)(nil)

// NewLogMailer creates a LogMailer.
func NewLogMailer(logger *slog.Logger, delay time.Duration) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger.With("component", "mailer"), delay: delay}
}

// SendWelcome implements Mailer.
func (m *LogMailer) SendWelcome(ctx context.Context, email string) error {
	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	m.logger.Info("welcome email sent", "email", email)
	return nil
}
