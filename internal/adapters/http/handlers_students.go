package web

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"clubdesk/internal/application/listutil"
	"clubdesk/internal/application/orchestrators"
	"clubdesk/internal/domain/student"
)

// filterStudents keeps students whose name or phone contains the query,
// case-insensitively.
func filterStudents(students []student.Student, query string) []student.Student {
	q := strings.ToLower(query)
	out := make([]student.Student, 0, len(students))
	for _, s := range students {
		name := strings.ToLower(s.FirstName + " " + s.FathersName)
		if strings.Contains(name, q) || strings.Contains(s.Phone, q) {
			out = append(out, s)
		}
	}
	return out
}

func sortStudents(students []student.Student, sp listutil.SortParams) {
	var less func(a, b student.Student) bool
	switch sp.Sort {
	case "name":
		less = func(a, b student.Student) bool { return a.FirstName < b.FirstName }
	case "age":
		less = func(a, b student.Student) bool { return a.DateOfBirth.After(b.DateOfBirth) }
	default:
		return
	}
	sort.SliceStable(students, func(i, j int) bool {
		if sp.Dir == "desc" {
			return less(students[j], students[i])
		}
		return less(students[i], students[j])
	})
}

// studentRequest is the JSON body for creating and updating students.
type studentRequest struct {
	ID          int    `json:"id,omitempty"`
	FirstName   string `json:"first_name"`
	FathersName string `json:"fathers_name"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
	NationalID  string `json:"national_id,omitempty"`
}

func (req *studentRequest) toStudent() (student.Student, error) {
	dob, err := time.Parse(dateFormat, req.DateOfBirth)
	if err != nil {
		return student.Student{}, student.ErrMissingBirth
	}
	s := student.Student{
		ID:          req.ID,
		FirstName:   strings.TrimSpace(req.FirstName),
		FathersName: strings.TrimSpace(req.FathersName),
		Phone:       strings.TrimSpace(req.Phone),
		DateOfBirth: dob,
		NationalID:  strings.TrimSpace(req.NationalID),
	}
	if err := s.Validate(); err != nil {
		return student.Student{}, err
	}
	return s, nil
}

// handleStudents handles GET /api/students (list, optionally ?course_id=N)
// and POST /api/students (create).
func handleStudents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case "GET":
		if courseID, ok := queryID(r, "course_id"); ok {
			students, err := stores.StudentStore.ListByCourse(ctx, courseID)
			if err != nil {
				slog.Error("student_list_failed", "course_id", courseID, "error", err.Error())
				writeError(w, http.StatusInternalServerError, "failed to list students")
				return
			}
			writeJSON(w, http.StatusOK, students)
			return
		}
		students, err := stores.StudentStore.List(ctx)
		if err != nil {
			slog.Error("student_list_failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "failed to list students")
			return
		}

		params := listutil.ParseListParams(r.URL.Query(), []string{"name", "age"})
		if params.Search != "" {
			students = filterStudents(students, params.Search)
		}
		sortStudents(students, params.SortParams)
		page, info := listutil.Slice(students, params.PageParams)
		writeJSON(w, http.StatusOK, map[string]any{
			"students":  page,
			"page_info": info,
		})
	case "POST":
		var req studentRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		s, err := req.toStudent()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		id, err := stores.StudentStore.Create(ctx, s)
		if err != nil {
			slog.Error("student_create_failed", "error", err.Error())
			writeError(w, http.StatusConflict, "failed to create student (phone must be unique)")
			return
		}
		s.ID = id
		slog.Info("student_event", "event", "student_created", "student_id", id)
		writeJSON(w, http.StatusCreated, s)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleStudentUpdate handles POST /api/students/update.
func handleStudentUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req studentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "student id is required")
		return
	}
	s, err := req.toStudent()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if _, err := stores.StudentStore.GetByID(ctx, s.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "student not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load student")
		return
	}
	if err := stores.StudentStore.Update(ctx, s); err != nil {
		slog.Error("student_update_failed", "student_id", s.ID, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to update student")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// handleStudentDelete handles POST /api/students/delete?id=N.
// POST: student, their enrollments, payments and attendance marks are removed
func handleStudentDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, ok := queryID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	err := orchestrators.ExecuteDeleteStudent(r.Context(), orchestrators.DeleteStudentInput{StudentID: id}, orchestrators.DeleteStudentDeps{
		StudentStore:    stores.StudentStore,
		EnrollmentStore: stores.EnrollmentStore,
		PaymentStore:    stores.PaymentStore,
		MeetingStore:    stores.MeetingStore,
	})
	if err != nil {
		slog.Error("student_delete_failed", "student_id", id, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to delete student")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}
