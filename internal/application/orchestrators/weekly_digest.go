package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"clubdesk/internal/adapters/email"
	"clubdesk/internal/application/projections"
	"clubdesk/internal/domain/payment"
)

// WeeklyDigestInput carries input for the digest orchestrator.
type WeeklyDigestInput struct {
	AdminEmail string
}

// WeeklyDigestDeps holds dependencies for WeeklyDigest.
type WeeklyDigestDeps struct {
	PaymentStore projections.IncomePaymentStore
	CourseStore  projections.IncomeCourseStore
	Sender       email.Sender
	Now          func() time.Time // nil means time.Now
}

// ExecuteWeeklyDigest emails the admin a revenue summary for the current
// month: headline total plus the per-coach breakdown. Scheduled weekly by
// the server's cron runner.
// PRE: AdminEmail is set
// POST: one email sent, or an error
func ExecuteWeeklyDigest(ctx context.Context, input WeeklyDigestInput, deps WeeklyDigestDeps) error {
	if input.AdminEmail == "" {
		return errors.New("admin email is required")
	}

	incomeDeps := projections.IncomeDeps{
		PaymentStore: deps.PaymentStore,
		CourseStore:  deps.CourseStore,
		Now:          deps.Now,
	}
	summary, err := projections.QueryAnalysisSummary(ctx, projections.IncomeInput{Period: payment.PeriodMonth}, incomeDeps)
	if err != nil {
		return fmt.Errorf("build digest summary: %w", err)
	}

	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Weekly summary, %s</h2>", now().Format("January 2006"))
	fmt.Fprintf(&b, "<p>Month to date: <strong>%.2f</strong> across %d payments.</p>", summary.Total, summary.PaymentCount)
	if len(summary.ByCoach) > 0 {
		b.WriteString("<ul>")
		for _, ci := range summary.ByCoach {
			fmt.Fprintf(&b, "<li>%s: %.2f (%d payments)</li>", ci.Coach, ci.Total, ci.PaymentCount)
		}
		b.WriteString("</ul>")
	}

	_, err = deps.Sender.Send(ctx, email.SendRequest{
		To:      []string{input.AdminEmail},
		Subject: fmt.Sprintf("ClubDesk weekly summary, %s", now().Format("Jan 2 2006")),
		HTML:    b.String(),
	})
	if err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	slog.Info("digest_event", "event", "weekly_digest_sent", "to", input.AdminEmail,
		"total", summary.Total, "payments", summary.PaymentCount)
	return nil
}
