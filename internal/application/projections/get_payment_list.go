package projections

import (
	"context"
	"strconv"
	"time"

	"clubdesk/internal/domain/student"
)

// PaymentListStudentStore defines the student store interface for the payment list.
type PaymentListStudentStore interface {
	List(ctx context.Context) ([]student.Student, error)
}

// PaymentListDeps holds dependencies for the payment list projection.
type PaymentListDeps struct {
	PaymentStore IncomePaymentStore
	CourseStore  IncomeCourseStore
	StudentStore PaymentListStudentStore
	Now          func() time.Time // nil means time.Now
}

// PaymentRow is one payment enriched with display names for tables,
// receipts and spreadsheet export.
type PaymentRow struct {
	ID          int     `json:"id"`
	Invoice     string  `json:"invoice"`
	StudentID   int     `json:"student_id"`
	Student     string  `json:"student"`
	CourseID    int     `json:"course_id"`
	Course      string  `json:"course"`
	Month       string  `json:"month"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	Method      string  `json:"method"`
}

// QueryPaymentList returns payments for the period with student and course
// names resolved. Rows for deleted students or courses keep the raw ids
// visible rather than disappearing from the books.
// POST: rows keep the store's newest-first order
func QueryPaymentList(ctx context.Context, input IncomeInput, deps PaymentListDeps) ([]PaymentRow, error) {
	payments, err := periodPayments(ctx, input, IncomeDeps{
		PaymentStore: deps.PaymentStore,
		CourseStore:  deps.CourseStore,
		Now:          deps.Now,
	})
	if err != nil {
		return nil, err
	}
	courses, err := deps.CourseStore.List(ctx)
	if err != nil {
		return nil, err
	}
	students, err := deps.StudentStore.List(ctx)
	if err != nil {
		return nil, err
	}

	courseNames := make(map[int]string, len(courses))
	for _, c := range courses {
		courseNames[c.ID] = c.Name
	}
	studentNames := make(map[int]string, len(students))
	for i := range students {
		studentNames[students[i].ID] = students[i].FullName()
	}

	rows := make([]PaymentRow, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, PaymentRow{
			ID:          p.ID,
			Invoice:     p.InvoiceNumber(),
			StudentID:   p.StudentID,
			Student:     nameOrID(studentNames, p.StudentID),
			CourseID:    p.CourseID,
			Course:      nameOrID(courseNames, p.CourseID),
			Month:       p.Month,
			Amount:      p.Amount,
			PaymentDate: p.PaymentDate.Format(dateFormat),
			Method:      p.Method,
		})
	}
	return rows, nil
}

func nameOrID(names map[int]string, id int) string {
	if name, ok := names[id]; ok {
		return name
	}
	return "#" + strconv.Itoa(id)
}
