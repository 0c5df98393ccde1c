package projections

import (
	"context"
	"sort"
	"time"

	"clubdesk/internal/domain/course"
	"clubdesk/internal/domain/payment"
)

// IncomePaymentStore defines the payment store interface for income analysis.
type IncomePaymentStore interface {
	List(ctx context.Context) ([]payment.Payment, error)
	ListSince(ctx context.Context, from time.Time) ([]payment.Payment, error)
}

// IncomeCourseStore defines the course store interface for income analysis.
type IncomeCourseStore interface {
	List(ctx context.Context) ([]course.Course, error)
}

// IncomeDeps holds dependencies for the income projections.
type IncomeDeps struct {
	PaymentStore IncomePaymentStore
	CourseStore  IncomeCourseStore
	Now          func() time.Time // nil means time.Now
}

// IncomeInput selects the analysis period.
type IncomeInput struct {
	Period string // one of the payment.Period constants
}

// CoachIncome is one coach's revenue over the selected period.
type CoachIncome struct {
	Coach        string  `json:"coach"`
	Total        float64 `json:"total"`
	PaymentCount int     `json:"payment_count"`
}

// CourseIncome is one course's revenue over the selected period.
type CourseIncome struct {
	CourseID     int     `json:"course_id"`
	Course       string  `json:"course"`
	Coach        string  `json:"coach"`
	Total        float64 `json:"total"`
	PaymentCount int     `json:"payment_count"`
}

// AnalysisSummary is the headline income figures for the selected period.
type AnalysisSummary struct {
	Period       string             `json:"period"`
	Total        float64            `json:"total"`
	PaymentCount int                `json:"payment_count"`
	ByMethod     map[string]float64 `json:"by_method"`
	ByCoach      []CoachIncome      `json:"by_coach"`
	ByCourse     []CourseIncome     `json:"by_course"`
}

func periodPayments(ctx context.Context, input IncomeInput, deps IncomeDeps) ([]payment.Payment, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	from := payment.PeriodStart(input.Period, now())
	if from.IsZero() {
		return deps.PaymentStore.List(ctx)
	}
	return deps.PaymentStore.ListSince(ctx, from)
}

// QueryCoachIncome aggregates payment totals per coach for the period.
// Courses reference coaches by name, so the course's teacher string is the
// grouping key.
// POST: results are sorted by total descending, then coach name
func QueryCoachIncome(ctx context.Context, input IncomeInput, deps IncomeDeps) ([]CoachIncome, error) {
	payments, err := periodPayments(ctx, input, deps)
	if err != nil {
		return nil, err
	}
	courses, err := deps.CourseStore.List(ctx)
	if err != nil {
		return nil, err
	}

	coachByCourse := make(map[int]string, len(courses))
	for _, c := range courses {
		coachByCourse[c.ID] = c.Teacher
	}

	totals := make(map[string]*CoachIncome)
	for _, p := range payments {
		coach, ok := coachByCourse[p.CourseID]
		if !ok {
			continue // payment for a deleted course
		}
		entry, ok := totals[coach]
		if !ok {
			entry = &CoachIncome{Coach: coach}
			totals[coach] = entry
		}
		entry.Total += p.Amount
		entry.PaymentCount++
	}

	out := make([]CoachIncome, 0, len(totals))
	for _, entry := range totals {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Coach < out[j].Coach
	})
	return out, nil
}

// QueryCourseIncome aggregates payment totals per course for the period.
// POST: results are sorted by total descending, then course name
func QueryCourseIncome(ctx context.Context, input IncomeInput, deps IncomeDeps) ([]CourseIncome, error) {
	payments, err := periodPayments(ctx, input, deps)
	if err != nil {
		return nil, err
	}
	courses, err := deps.CourseStore.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]course.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	totals := make(map[int]*CourseIncome)
	for _, p := range payments {
		c, ok := byID[p.CourseID]
		if !ok {
			continue
		}
		entry, ok := totals[p.CourseID]
		if !ok {
			entry = &CourseIncome{CourseID: c.ID, Course: c.Name, Coach: c.Teacher}
			totals[p.CourseID] = entry
		}
		entry.Total += p.Amount
		entry.PaymentCount++
	}

	out := make([]CourseIncome, 0, len(totals))
	for _, entry := range totals {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Course < out[j].Course
	})
	return out, nil
}

// QueryAnalysisSummary builds the full income report for the period: the
// headline total, per-method breakdown, and the coach and course tables.
func QueryAnalysisSummary(ctx context.Context, input IncomeInput, deps IncomeDeps) (AnalysisSummary, error) {
	payments, err := periodPayments(ctx, input, deps)
	if err != nil {
		return AnalysisSummary{}, err
	}

	summary := AnalysisSummary{
		Period:   input.Period,
		ByMethod: make(map[string]float64),
	}
	if summary.Period == "" {
		summary.Period = payment.PeriodAll
	}
	for _, p := range payments {
		summary.Total += p.Amount
		summary.PaymentCount++
		method := p.Method
		if method == "" {
			method = payment.MethodCash
		}
		summary.ByMethod[method] += p.Amount
	}

	summary.ByCoach, err = QueryCoachIncome(ctx, input, deps)
	if err != nil {
		return AnalysisSummary{}, err
	}
	summary.ByCourse, err = QueryCourseIncome(ctx, input, deps)
	if err != nil {
		return AnalysisSummary{}, err
	}
	return summary, nil
}
