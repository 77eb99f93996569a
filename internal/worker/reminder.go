// Package worker runs the background jobs: the reminder sweep over fiscal
// obligations and the broker consumer that stamps delivered notifications.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestaocontabil/backend/internal/api/metrics"
	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

const (
	defaultInterval = time.Hour
	defaultWindow   = 7 * 24 * time.Hour
)

// Reminder periodically scans for open obligations approaching their due
// date and notifies the assigned accountant. Each obligation is reminded at
// most once (RemindedAt guard in the repository query).
type Reminder struct {
	obligations   ports.ObligationRepository
	notifications ports.NotificationService
	interval      time.Duration
	window        time.Duration
	log           zerolog.Logger
	now           func() time.Time
}

// NewReminder creates a Reminder. Non-positive interval or window fall back
// to one sweep per hour over a seven-day lookahead.
func NewReminder(obligations ports.ObligationRepository, notifications ports.NotificationService, interval, window time.Duration, log zerolog.Logger) *Reminder {
	if interval <= 0 {
		interval = defaultInterval
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &Reminder{
		obligations:   obligations,
		notifications: notifications,
		interval:      interval,
		window:        window,
		log:           log,
		now:           time.Now,
	}
}

// Start runs the sweep loop until ctx is cancelled. The first sweep fires
// immediately so a freshly deployed service does not wait a full interval.
func (r *Reminder) Start(ctx context.Context) {
	r.sweep(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reminder) sweep(ctx context.Context) {
	started := r.now()
	now := started.UTC()

	due, err := r.obligations.FindDueWithin(ctx, now, r.window)
	if err != nil {
		r.log.Error().Err(err).Msg("reminder sweep: listing due obligations failed")
		return
	}

	reminded := 0
	for _, obligation := range due {
		if err := r.remind(ctx, obligation, now); err != nil {
			r.log.Error().Err(err).
				Str("obligation_id", obligation.ID).
				Msg("reminder failed")
			continue
		}
		reminded++
	}

	if overdue, err := r.obligations.CountOverdue(ctx, now); err == nil {
		metrics.ObligationsOverdueGauge.Set(float64(overdue))
	} else {
		r.log.Warn().Err(err).Msg("reminder sweep: overdue count failed")
	}

	metrics.ReminderSweepDuration.Observe(time.Since(started).Seconds())
	r.log.Info().
		Int("due", len(due)).
		Int("reminded", reminded).
		Msg("reminder sweep completed")
}

func (r *Reminder) remind(ctx context.Context, obligation *domain.Obligation, now time.Time) error {
	// Unassigned obligations have nobody to notify; they are picked up again
	// on the next sweep once assigned.
	if obligation.AssignedTo == "" {
		r.log.Debug().
			Str("obligation_id", obligation.ID).
			Msg("skipping unassigned obligation")
		return nil
	}

	daysLeft := int(obligation.DueDate.Sub(now).Hours() / 24)
	_, err := r.notifications.Notify(ctx, ports.NotifyInput{
		AccountID:    obligation.AssignedTo,
		ClientID:     obligation.ClientID,
		ObligationID: obligation.ID,
		Kind:         domain.NotificationObligationDue,
		Title:        fmt.Sprintf("%s vence em %d dia(s)", obligation.Title, daysLeft),
		Message: fmt.Sprintf("A obrigação %s (competência %s) vence em %s.",
			obligation.Title, obligation.Competence, obligation.DueDate.Format("02/01/2006")),
	})
	if err != nil {
		return err
	}

	metrics.NotificationsPublishedTotal.WithLabelValues(string(domain.NotificationObligationDue)).Inc()
	return r.obligations.MarkReminded(ctx, obligation.ID, now)
}
