package payment

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Payment method constants. Method is free-form in storage; these cover the
// values the forms offer.
const (
	MethodCash     = "cash"
	MethodCheck    = "check"
	MethodTransfer = "transfer"
	MethodCard     = "card"
)

// Period filter constants for income analysis.
const (
	PeriodAll     = "all"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
)

// Domain errors
var (
	ErrMissingStudent = errors.New("payment student id is required")
	ErrMissingCourse  = errors.New("payment course id is required")
	ErrBadMonth       = errors.New("payment month must be in YYYY-MM format")
	ErrBadAmount      = errors.New("payment amount must be positive")
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Payment records one tuition payment by a student for a course month.
type Payment struct {
	ID          int
	StudentID   int
	CourseID    int
	Month       string // YYYY-MM
	Amount      float64
	PaymentDate time.Time
	Method      string
}

// Validate checks the payment's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (p *Payment) Validate() error {
	if p.StudentID <= 0 {
		return ErrMissingStudent
	}
	if p.CourseID <= 0 {
		return ErrMissingCourse
	}
	if !monthPattern.MatchString(p.Month) {
		return ErrBadMonth
	}
	if p.Amount <= 0 {
		return ErrBadAmount
	}
	return nil
}

// InvoiceNumber returns the receipt's display number.
// PRE: ID is assigned
func (p *Payment) InvoiceNumber() string {
	return fmt.Sprintf("INV-%06d", p.ID)
}

// PeriodStart maps an analysis period to its inclusive start date, or the
// zero time for the unbounded "all" period. Quarter starts snap to January,
// April, July and October.
// PRE: period is one of the Period constants (anything else behaves as all)
func PeriodStart(period string, now time.Time) time.Time {
	switch period {
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodQuarter:
		quarterMonth := time.Month((int(now.Month())-1)/3*3 + 1)
		return time.Date(now.Year(), quarterMonth, 1, 0, 0, 0, 0, now.Location())
	case PeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}
	}
}
