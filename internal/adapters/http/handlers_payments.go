package web

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"clubdesk/internal/application/orchestrators"
	"clubdesk/internal/application/projections"
	"clubdesk/internal/domain/payment"
)

// paymentRequest is the JSON body for recording a payment.
type paymentRequest struct {
	StudentID    int     `json:"student_id"`
	CourseID     int     `json:"course_id"`
	Month        string  `json:"month"` // YYYY-MM
	Amount       float64 `json:"amount"`
	PaymentDate  string  `json:"payment_date,omitempty"` // YYYY-MM-DD, defaults to today
	Method       string  `json:"method,omitempty"`
	ReceiptEmail string  `json:"receipt_email,omitempty"`
}

// handlePayments handles GET /api/payments?period= (list) and
// POST /api/payments (record).
func handlePayments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case "GET":
		rows, err := projections.QueryPaymentList(ctx,
			projections.IncomeInput{Period: r.URL.Query().Get("period")},
			paymentListDeps())
		if err != nil {
			slog.Error("payment_list_failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "failed to list payments")
			return
		}
		if studentID, ok := queryID(r, "student_id"); ok {
			rows = filterPaymentRows(rows, func(row projections.PaymentRow) bool {
				return row.StudentID == studentID
			})
		}
		if courseID, ok := queryID(r, "course_id"); ok {
			rows = filterPaymentRows(rows, func(row projections.PaymentRow) bool {
				return row.CourseID == courseID
			})
		}
		writeJSON(w, http.StatusOK, rows)
	case "POST":
		var req paymentRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		p := payment.Payment{
			StudentID: req.StudentID,
			CourseID:  req.CourseID,
			Month:     req.Month,
			Amount:    req.Amount,
			Method:    req.Method,
		}
		if p.Method == "" {
			p.Method = payment.MethodCash
		}
		if req.PaymentDate != "" {
			date, err := time.Parse(dateFormat, req.PaymentDate)
			if err != nil {
				writeError(w, http.StatusBadRequest, "payment_date must be YYYY-MM-DD")
				return
			}
			p.PaymentDate = date
		} else {
			now := time.Now()
			p.PaymentDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		}

		recorded, err := orchestrators.ExecuteRecordPayment(ctx, orchestrators.RecordPaymentInput{
			Payment:      p,
			ReceiptEmail: req.ReceiptEmail,
		}, orchestrators.RecordPaymentDeps{
			PaymentStore: stores.PaymentStore,
			StudentStore: stores.StudentStore,
			CourseStore:  stores.CourseStore,
			Sender:       emailSender,
		})
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"id":      recorded.ID,
			"invoice": recorded.InvoiceNumber(),
		})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handlePaymentInvoice handles GET /api/payments/invoice?id=N.
func handlePaymentInvoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, ok := queryID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	ctx := r.Context()
	p, err := stores.PaymentStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "payment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load payment")
		return
	}

	invoice := map[string]any{
		"invoice":      p.InvoiceNumber(),
		"month":        p.Month,
		"amount":       p.Amount,
		"method":       p.Method,
		"payment_date": p.PaymentDate.Format(dateFormat),
	}
	if st, err := stores.StudentStore.GetByID(ctx, p.StudentID); err == nil {
		invoice["student"] = st.FullName()
	}
	if c, err := stores.CourseStore.GetByID(ctx, p.CourseID); err == nil {
		invoice["course"] = c.Name
	}
	writeJSON(w, http.StatusOK, invoice)
}

// handlePaymentExport handles GET /api/payments/export.xlsx?period=.
// Streams the payment book as a spreadsheet.
func handlePaymentExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	rows, err := projections.QueryPaymentList(r.Context(),
		projections.IncomeInput{Period: r.URL.Query().Get("period")},
		paymentListDeps())
	if err != nil {
		slog.Error("payment_export_failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to build export")
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Payments"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Invoice", "Student", "Course", "Month", "Amount", "Date", "Method"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, row := range rows {
		values := []any{row.Invoice, row.Student, row.Course, row.Month, row.Amount, row.PaymentDate, row.Method}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="payments-%s.xlsx"`, time.Now().Format(dateFormat)))
	if err := f.Write(w); err != nil {
		slog.Error("payment_export_write_failed", "error", err.Error())
	}
}

// handlePaymentDelete handles POST /api/payments/delete?id=N.
func handlePaymentDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, ok := queryID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	ctx := r.Context()
	if _, err := stores.PaymentStore.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "payment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load payment")
		return
	}
	if err := stores.PaymentStore.Delete(ctx, id); err != nil {
		slog.Error("payment_delete_failed", "payment_id", id, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to delete payment")
		return
	}
	slog.Info("payment_event", "event", "payment_deleted", "payment_id", id)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func filterPaymentRows(rows []projections.PaymentRow, keep func(projections.PaymentRow) bool) []projections.PaymentRow {
	out := rows[:0]
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func paymentListDeps() projections.PaymentListDeps {
	return projections.PaymentListDeps{
		PaymentStore: stores.PaymentStore,
		CourseStore:  stores.CourseStore,
		StudentStore: stores.StudentStore,
	}
}
