package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"clubdesk/internal/adapters/email"
	"clubdesk/internal/domain/course"
	"clubdesk/internal/domain/payment"
	"clubdesk/internal/domain/student"
)

// PaymentStoreForRecord defines the payment store interface for recording.
type PaymentStoreForRecord interface {
	Create(ctx context.Context, p payment.Payment) (int, error)
}

// StudentStoreForRecord defines the student store interface for recording.
type StudentStoreForRecord interface {
	GetByID(ctx context.Context, id int) (student.Student, error)
}

// CourseStoreForRecord defines the course store interface for recording.
type CourseStoreForRecord interface {
	GetByID(ctx context.Context, id int) (course.Course, error)
}

// RecordPaymentInput carries input for the payment orchestrator.
type RecordPaymentInput struct {
	Payment      payment.Payment
	ReceiptEmail string // optional; empty skips the receipt
}

// RecordPaymentDeps holds dependencies for RecordPayment.
type RecordPaymentDeps struct {
	PaymentStore PaymentStoreForRecord
	StudentStore StudentStoreForRecord
	CourseStore  CourseStoreForRecord
	Sender       email.Sender
}

// ExecuteRecordPayment validates and persists a payment, then emails a
// receipt when a recipient address was given. A failed receipt send is
// logged but does not fail the payment: the money is already in the books.
// PRE: Payment references an existing student and course
// POST: payment persisted; returns the stored payment with its id set
func ExecuteRecordPayment(ctx context.Context, input RecordPaymentInput, deps RecordPaymentDeps) (payment.Payment, error) {
	p := input.Payment
	if err := p.Validate(); err != nil {
		return payment.Payment{}, err
	}

	st, err := deps.StudentStore.GetByID(ctx, p.StudentID)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("payment student %d: %w", p.StudentID, err)
	}
	c, err := deps.CourseStore.GetByID(ctx, p.CourseID)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("payment course %d: %w", p.CourseID, err)
	}

	id, err := deps.PaymentStore.Create(ctx, p)
	if err != nil {
		return payment.Payment{}, err
	}
	p.ID = id

	slog.Info("payment_event", "event", "payment_recorded",
		"payment_id", p.ID, "student_id", p.StudentID, "course_id", p.CourseID, "amount", p.Amount)

	if input.ReceiptEmail != "" && deps.Sender != nil {
		req := email.SendRequest{
			To:      []string{input.ReceiptEmail},
			Subject: fmt.Sprintf("Receipt %s", p.InvoiceNumber()),
			HTML:    receiptHTML(p, st, c),
		}
		if _, sendErr := deps.Sender.Send(ctx, req); sendErr != nil {
			slog.Error("payment_receipt_failed", "payment_id", p.ID, "error", sendErr)
		}
	}

	return p, nil
}

func receiptHTML(p payment.Payment, st student.Student, c course.Course) string {
	return fmt.Sprintf(
		`<h2>Receipt %s</h2>
<p>Received from %s for <strong>%s</strong>, month %s.</p>
<p>Amount: %.2f (%s)</p>
<p>Date: %s</p>`,
		p.InvoiceNumber(), st.FullName(), c.Name, p.Month,
		p.Amount, p.Method, p.PaymentDate.Format("2006-01-02"))
}
