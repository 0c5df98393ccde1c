package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	courseDomain "clubdesk/internal/domain/course"
	enrollmentDomain "clubdesk/internal/domain/enrollment"
	meetingDomain "clubdesk/internal/domain/meeting"
	paymentDomain "clubdesk/internal/domain/payment"
	studentDomain "clubdesk/internal/domain/student"
)

// --- In-memory mock stores ---

type mockCourseStore struct {
	nextID  int
	courses map[int]courseDomain.Course
}

func newMockCourseStore() *mockCourseStore {
	return &mockCourseStore{courses: make(map[int]courseDomain.Course)}
}

func (m *mockCourseStore) Create(_ context.Context, c courseDomain.Course) (int, error) {
	m.nextID++
	c.ID = m.nextID
	m.courses[c.ID] = c
	return c.ID, nil
}

func (m *mockCourseStore) Update(_ context.Context, c courseDomain.Course) error {
	m.courses[c.ID] = c
	return nil
}

func (m *mockCourseStore) GetByID(_ context.Context, id int) (courseDomain.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return courseDomain.Course{}, sql.ErrNoRows
	}
	return c, nil
}

func (m *mockCourseStore) List(_ context.Context) ([]courseDomain.Course, error) {
	out := make([]courseDomain.Course, 0, len(m.courses))
	for _, c := range m.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockCourseStore) ListOverlapping(_ context.Context, from, to string) ([]courseDomain.Course, error) {
	var out []courseDomain.Course
	for _, c := range m.courses {
		if c.StartDate.Format(dateFormat) <= to && c.EndDate.Format(dateFormat) >= from {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockCourseStore) Delete(_ context.Context, id int) error {
	delete(m.courses, id)
	return nil
}

type mockStudentStore struct {
	nextID   int
	students map[int]studentDomain.Student
}

func newMockStudentStore() *mockStudentStore {
	return &mockStudentStore{students: make(map[int]studentDomain.Student)}
}

func (m *mockStudentStore) Create(_ context.Context, s studentDomain.Student) (int, error) {
	m.nextID++
	s.ID = m.nextID
	m.students[s.ID] = s
	return s.ID, nil
}

func (m *mockStudentStore) Update(_ context.Context, s studentDomain.Student) error {
	m.students[s.ID] = s
	return nil
}

func (m *mockStudentStore) GetByID(_ context.Context, id int) (studentDomain.Student, error) {
	s, ok := m.students[id]
	if !ok {
		return studentDomain.Student{}, sql.ErrNoRows
	}
	return s, nil
}

func (m *mockStudentStore) List(_ context.Context) ([]studentDomain.Student, error) {
	out := make([]studentDomain.Student, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockStudentStore) ListByCourse(_ context.Context, _ int) ([]studentDomain.Student, error) {
	return m.List(context.Background())
}

func (m *mockStudentStore) Delete(_ context.Context, id int) error {
	delete(m.students, id)
	return nil
}

type mockEnrollmentStore struct {
	nextID      int
	enrollments map[int]enrollmentDomain.Enrollment
}

func newMockEnrollmentStore() *mockEnrollmentStore {
	return &mockEnrollmentStore{enrollments: make(map[int]enrollmentDomain.Enrollment)}
}

func (m *mockEnrollmentStore) Create(_ context.Context, e enrollmentDomain.Enrollment) (int, error) {
	m.nextID++
	e.ID = m.nextID
	m.enrollments[e.ID] = e
	return e.ID, nil
}

func (m *mockEnrollmentStore) ListByCourse(_ context.Context, courseID int) ([]enrollmentDomain.Enrollment, error) {
	var out []enrollmentDomain.Enrollment
	for _, e := range m.enrollments {
		if e.CourseID == courseID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEnrollmentStore) ListByStudent(_ context.Context, studentID int) ([]enrollmentDomain.Enrollment, error) {
	var out []enrollmentDomain.Enrollment
	for _, e := range m.enrollments {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEnrollmentStore) CountByCourse(_ context.Context, courseID int) (int, error) {
	n := 0
	for _, e := range m.enrollments {
		if e.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (m *mockEnrollmentStore) Delete(_ context.Context, courseID, studentID int) error {
	for id, e := range m.enrollments {
		if e.CourseID == courseID && e.StudentID == studentID {
			delete(m.enrollments, id)
		}
	}
	return nil
}

func (m *mockEnrollmentStore) DeleteByCourse(_ context.Context, courseID int) error {
	for id, e := range m.enrollments {
		if e.CourseID == courseID {
			delete(m.enrollments, id)
		}
	}
	return nil
}

func (m *mockEnrollmentStore) DeleteByStudent(_ context.Context, studentID int) error {
	for id, e := range m.enrollments {
		if e.StudentID == studentID {
			delete(m.enrollments, id)
		}
	}
	return nil
}

type mockPaymentStoreWeb struct {
	nextID   int
	payments map[int]paymentDomain.Payment
}

func newMockPaymentStoreWeb() *mockPaymentStoreWeb {
	return &mockPaymentStoreWeb{payments: make(map[int]paymentDomain.Payment)}
}

func (m *mockPaymentStoreWeb) Create(_ context.Context, p paymentDomain.Payment) (int, error) {
	m.nextID++
	p.ID = m.nextID
	m.payments[p.ID] = p
	return p.ID, nil
}

func (m *mockPaymentStoreWeb) GetByID(_ context.Context, id int) (paymentDomain.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return paymentDomain.Payment{}, sql.ErrNoRows
	}
	return p, nil
}

func (m *mockPaymentStoreWeb) List(_ context.Context) ([]paymentDomain.Payment, error) {
	out := make([]paymentDomain.Payment, 0, len(m.payments))
	for _, p := range m.payments {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPaymentStoreWeb) ListSince(_ context.Context, from time.Time) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	for _, p := range m.payments {
		if !p.PaymentDate.Before(from) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPaymentStoreWeb) ListByCourse(_ context.Context, courseID int) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	for _, p := range m.payments {
		if p.CourseID == courseID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPaymentStoreWeb) ListByStudent(_ context.Context, studentID int) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	for _, p := range m.payments {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPaymentStoreWeb) Delete(_ context.Context, id int) error {
	delete(m.payments, id)
	return nil
}

func (m *mockPaymentStoreWeb) DeleteByCourse(_ context.Context, courseID int) error {
	for id, p := range m.payments {
		if p.CourseID == courseID {
			delete(m.payments, id)
		}
	}
	return nil
}

func (m *mockPaymentStoreWeb) DeleteByStudent(_ context.Context, studentID int) error {
	for id, p := range m.payments {
		if p.StudentID == studentID {
			delete(m.payments, id)
		}
	}
	return nil
}

type mockMeetingStoreWeb struct {
	nextID     int
	meetings   map[int]meetingDomain.Meeting
	attendance []meetingDomain.Attendance
}

func newMockMeetingStoreWeb() *mockMeetingStoreWeb {
	return &mockMeetingStoreWeb{meetings: make(map[int]meetingDomain.Meeting)}
}

func (m *mockMeetingStoreWeb) Create(_ context.Context, mt meetingDomain.Meeting) (int, error) {
	m.nextID++
	mt.ID = m.nextID
	m.meetings[mt.ID] = mt
	return mt.ID, nil
}

func (m *mockMeetingStoreWeb) GetByID(_ context.Context, id int) (meetingDomain.Meeting, error) {
	mt, ok := m.meetings[id]
	if !ok {
		return meetingDomain.Meeting{}, sql.ErrNoRows
	}
	return mt, nil
}

func (m *mockMeetingStoreWeb) ListByCourse(_ context.Context, courseID int) ([]meetingDomain.Meeting, error) {
	var out []meetingDomain.Meeting
	for _, mt := range m.meetings {
		if mt.CourseID == courseID {
			out = append(out, mt)
		}
	}
	return out, nil
}

func (m *mockMeetingStoreWeb) UpdateNotes(_ context.Context, id int, notes string) error {
	mt := m.meetings[id]
	mt.Notes = notes
	m.meetings[id] = mt
	return nil
}

func (m *mockMeetingStoreWeb) Delete(_ context.Context, id int) error {
	delete(m.meetings, id)
	return nil
}

func (m *mockMeetingStoreWeb) DeleteByCourse(_ context.Context, courseID int) error {
	for id, mt := range m.meetings {
		if mt.CourseID == courseID {
			delete(m.meetings, id)
		}
	}
	return nil
}

func (m *mockMeetingStoreWeb) CreateAttendance(_ context.Context, a meetingDomain.Attendance) (int, error) {
	m.attendance = append(m.attendance, a)
	return len(m.attendance), nil
}

func (m *mockMeetingStoreWeb) ListAttendance(_ context.Context, meetingID int) ([]meetingDomain.Attendance, error) {
	var out []meetingDomain.Attendance
	for _, a := range m.attendance {
		if a.MeetingID == meetingID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockMeetingStoreWeb) SetPresent(_ context.Context, meetingID, studentID int, present bool) error {
	for i, a := range m.attendance {
		if a.MeetingID == meetingID && a.StudentID == studentID {
			m.attendance[i].Present = present
			return nil
		}
	}
	m.attendance = append(m.attendance, meetingDomain.Attendance{
		MeetingID: meetingID, StudentID: studentID, Present: present,
	})
	return nil
}

func (m *mockMeetingStoreWeb) DeleteAttendanceByStudent(_ context.Context, studentID int) error {
	var kept []meetingDomain.Attendance
	for _, a := range m.attendance {
		if a.StudentID != studentID {
			kept = append(kept, a)
		}
	}
	m.attendance = kept
	return nil
}

// newTestStores resets the package globals to fresh in-memory stores.
func newTestStores() *Stores {
	s := &Stores{
		CourseStore:     newMockCourseStore(),
		StudentStore:    newMockStudentStore(),
		CoachStore:      nil,
		EnrollmentStore: newMockEnrollmentStore(),
		PaymentStore:    newMockPaymentStoreWeb(),
		MeetingStore:    newMockMeetingStoreWeb(),
	}
	stores = s
	return s
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// seedCourse creates a twice-weekly course starting Sunday 2026-09-06.
func seedCourse(t *testing.T, s *Stores, name string) int {
	t.Helper()
	c := courseDomain.Course{
		Name:      name,
		Teacher:   "Dana Levi",
		StartDate: time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC),
		Time:      "18:00",
		Duration:  90,
		Color:     "#3B82F6",
	}
	if err := c.ApplySchedule(10, "0,3"); err != nil {
		t.Fatalf("ApplySchedule: %v", err)
	}
	id, err := s.CourseStore.Create(context.Background(), c)
	if err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return id
}

// --- Courses ---

// TestHandleCourses_CreateAndList verifies the course JSON round trip,
// including the derived schedule fields.
func TestHandleCourses_CreateAndList(t *testing.T) {
	newTestStores()

	req := jsonRequest("POST", "/api/courses",
		`{"name":"Judo","teacher":"Dana Levi","start_date":"2026-09-06","time":"18:00","sessions_count":10,"weekdays":"0,3"}`)
	rec := httptest.NewRecorder()
	handleCourses(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
	var created courseDomain.Course
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID != 1 || created.SessionsPerWeek != 2 {
		t.Errorf("created = %+v, want id 1 and 2 sessions/week", created)
	}
	if created.Duration != 60 {
		t.Errorf("Duration = %d, want default 60", created.Duration)
	}
	if created.Color != "#3B82F6" {
		t.Errorf("Color = %q, want default", created.Color)
	}

	rec = httptest.NewRecorder()
	handleCourses(rec, httptest.NewRequest("GET", "/api/courses", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var list []courseDomain.Course
	json.Unmarshal(rec.Body.Bytes(), &list)
	if len(list) != 1 {
		t.Errorf("list = %d courses, want 1", len(list))
	}
}

// TestHandleCourses_RejectsBadWeekdays verifies domain validation reaches
// the client as a 400.
func TestHandleCourses_RejectsBadWeekdays(t *testing.T) {
	newTestStores()

	req := jsonRequest("POST", "/api/courses",
		`{"name":"Judo","teacher":"Dana","start_date":"2026-09-06","time":"18:00","sessions_count":10,"weekdays":"0,9"}`)
	rec := httptest.NewRecorder()
	handleCourses(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHandleCourseDelete_Cascades verifies deleting a course removes its
// enrollments, payments and meetings too.
func TestHandleCourseDelete_Cascades(t *testing.T) {
	s := newTestStores()
	courseID := seedCourse(t, s, "Judo")
	ctx := context.Background()

	s.EnrollmentStore.Create(ctx, enrollmentDomain.Enrollment{CourseID: courseID, StudentID: 1, EnrollmentDate: time.Now()})
	s.PaymentStore.Create(ctx, paymentDomain.Payment{StudentID: 1, CourseID: courseID, Month: "2026-09", Amount: 300, PaymentDate: time.Now()})
	s.MeetingStore.Create(ctx, meetingDomain.Meeting{CourseID: courseID, Date: time.Now()})

	rec := httptest.NewRecorder()
	handleCourseDelete(rec, httptest.NewRequest("POST", "/api/courses/delete?id=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	if _, err := s.CourseStore.GetByID(ctx, courseID); err != sql.ErrNoRows {
		t.Error("course still present after delete")
	}
	if n, _ := s.EnrollmentStore.CountByCourse(ctx, courseID); n != 0 {
		t.Errorf("enrollments remaining = %d", n)
	}
	if left, _ := s.PaymentStore.ListByCourse(ctx, courseID); len(left) != 0 {
		t.Errorf("payments remaining = %d", len(left))
	}
	if left, _ := s.MeetingStore.ListByCourse(ctx, courseID); len(left) != 0 {
		t.Errorf("meetings remaining = %d", len(left))
	}
}

// TestHandleStudents_SearchAndPaging verifies the student list supports
// search and returns a paged envelope.
func TestHandleStudents_SearchAndPaging(t *testing.T) {
	s := newTestStores()
	ctx := context.Background()
	names := []string{"Noa", "Omer", "Noam"}
	for i, n := range names {
		s.StudentStore.Create(ctx, studentDomain.Student{
			FirstName: n, FathersName: "Cohen", Phone: "052-000000" + string(rune('1'+i)),
			DateOfBirth: time.Date(2014, 5, 1, 0, 0, 0, 0, time.UTC),
		})
	}

	rec := httptest.NewRecorder()
	handleStudents(rec, httptest.NewRequest("GET", "/api/students?q=noa", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Students []studentDomain.Student `json:"students"`
		PageInfo struct {
			Total int `json:"total"`
		} `json:"page_info"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.PageInfo.Total != 2 {
		t.Errorf("total = %d, want 2 (Noa and Noam)", resp.PageInfo.Total)
	}
	for _, st := range resp.Students {
		if !strings.HasPrefix(st.FirstName, "Noa") {
			t.Errorf("unexpected student %q in search results", st.FirstName)
		}
	}
}

// --- Calendar ---

// TestHandleCalendarWeekly_ReturnsOccurrences verifies the weekly feed
// expands the seeded course into dated events.
func TestHandleCalendarWeekly_ReturnsOccurrences(t *testing.T) {
	s := newTestStores()
	seedCourse(t, s, "Judo")

	rec := httptest.NewRecorder()
	handleCalendarWeekly(rec, httptest.NewRequest("GET", "/api/calendar/weekly?start_date=2026-09-06", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var events []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2 (Sunday and Wednesday)", len(events))
	}
	if events[0]["date"] != "2026-09-06" || events[1]["date"] != "2026-09-09" {
		t.Errorf("dates = %v, %v", events[0]["date"], events[1]["date"])
	}
}

// TestHandleCalendarWeekly_EmptyIsArray verifies an empty week serializes
// as [] rather than null.
func TestHandleCalendarWeekly_EmptyIsArray(t *testing.T) {
	newTestStores()

	rec := httptest.NewRecorder()
	handleCalendarWeekly(rec, httptest.NewRequest("GET", "/api/calendar/weekly?start_date=2026-01-04", nil))
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

// TestHandleCalendarDaily_BadDate verifies malformed dates get a 400.
func TestHandleCalendarDaily_BadDate(t *testing.T) {
	newTestStores()

	rec := httptest.NewRecorder()
	handleCalendarDaily(rec, httptest.NewRequest("GET", "/api/calendar/daily?date=tomorrow", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHandleCalendarExport_ICS verifies the iCalendar export carries the
// expanded occurrences.
func TestHandleCalendarExport_ICS(t *testing.T) {
	s := newTestStores()
	seedCourse(t, s, "Judo")

	rec := httptest.NewRecorder()
	handleCalendarExport(rec, httptest.NewRequest("GET", "/api/calendar/export.ics?month=2026-09", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "BEGIN:VCALENDAR") || !strings.Contains(body, "SUMMARY:Judo") {
		t.Errorf("missing calendar content: %q", body[:min(200, len(body))])
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Content-Type = %q", ct)
	}
}

// --- Payments ---

// TestHandlePayments_RecordReturnsInvoice verifies recording a payment
// returns its invoice number.
func TestHandlePayments_RecordReturnsInvoice(t *testing.T) {
	s := newTestStores()
	seedCourse(t, s, "Judo")
	s.StudentStore.Create(context.Background(), studentDomain.Student{
		FirstName: "Noa", FathersName: "Avi", Phone: "052-1111111",
		DateOfBirth: time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	req := jsonRequest("POST", "/api/payments",
		`{"student_id":1,"course_id":1,"month":"2026-09","amount":300}`)
	rec := httptest.NewRecorder()
	handlePayments(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["invoice"] != "INV-000001" {
		t.Errorf("invoice = %v, want INV-000001", resp["invoice"])
	}
}

// TestHandlePayments_RejectsBadMonth verifies month validation.
func TestHandlePayments_RejectsBadMonth(t *testing.T) {
	s := newTestStores()
	seedCourse(t, s, "Judo")

	req := jsonRequest("POST", "/api/payments",
		`{"student_id":1,"course_id":1,"month":"2026-13","amount":300}`)
	rec := httptest.NewRecorder()
	handlePayments(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHandlePayments_FilterByStudent verifies the list honours the
// student_id query filter.
func TestHandlePayments_FilterByStudent(t *testing.T) {
	s := newTestStores()
	seedCourse(t, s, "Judo")
	ctx := context.Background()
	s.PaymentStore.Create(ctx, paymentDomain.Payment{
		StudentID: 1, CourseID: 1, Month: "2026-09", Amount: 300,
		PaymentDate: time.Now(), Method: "cash",
	})
	s.PaymentStore.Create(ctx, paymentDomain.Payment{
		StudentID: 2, CourseID: 1, Month: "2026-09", Amount: 250,
		PaymentDate: time.Now(), Method: "cash",
	})

	rec := httptest.NewRecorder()
	handlePayments(rec, httptest.NewRequest("GET", "/api/payments?period=all&student_id=2", nil))
	var rows []map[string]any
	json.Unmarshal(rec.Body.Bytes(), &rows)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0]["amount"] != 250.0 {
		t.Errorf("amount = %v, want 250", rows[0]["amount"])
	}
}

// TestHandlePaymentDelete removes a payment and 404s when it is gone.
func TestHandlePaymentDelete(t *testing.T) {
	s := newTestStores()
	s.PaymentStore.Create(context.Background(), paymentDomain.Payment{
		StudentID: 1, CourseID: 1, Month: "2026-09", Amount: 300, PaymentDate: time.Now(),
	})

	rec := httptest.NewRecorder()
	handlePaymentDelete(rec, httptest.NewRequest("POST", "/api/payments/delete?id=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	handlePaymentDelete(rec, httptest.NewRequest("POST", "/api/payments/delete?id=1", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

// TestHandlePaymentExport_XLSX verifies the spreadsheet export responds
// with a non-empty workbook.
func TestHandlePaymentExport_XLSX(t *testing.T) {
	s := newTestStores()
	seedCourse(t, s, "Judo")
	s.PaymentStore.Create(context.Background(), paymentDomain.Payment{
		StudentID: 1, CourseID: 1, Month: "2026-09", Amount: 300,
		PaymentDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Method: "cash",
	})

	rec := httptest.NewRecorder()
	handlePaymentExport(rec, httptest.NewRequest("GET", "/api/payments/export.xlsx", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty workbook body")
	}
}

// --- Meetings ---

// TestHandleMeetings_CreateWithAttendance verifies the meeting POST fans
// out attendance for enrolled students.
func TestHandleMeetings_CreateWithAttendance(t *testing.T) {
	s := newTestStores()
	courseID := seedCourse(t, s, "Judo")
	ctx := context.Background()
	s.EnrollmentStore.Create(ctx, enrollmentDomain.Enrollment{CourseID: courseID, StudentID: 7, EnrollmentDate: time.Now()})
	s.EnrollmentStore.Create(ctx, enrollmentDomain.Enrollment{CourseID: courseID, StudentID: 8, EnrollmentDate: time.Now()})

	req := jsonRequest("POST", "/api/meetings",
		`{"course_id":1,"date":"2026-09-06","notes":"**warmup** drills","present":{"7":true}}`)
	rec := httptest.NewRecorder()
	handleMeetings(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	marks, _ := s.MeetingStore.ListAttendance(ctx, 1)
	if len(marks) != 2 {
		t.Fatalf("attendance = %d, want 2", len(marks))
	}

	// Listing renders the markdown notes.
	rec = httptest.NewRecorder()
	handleMeetings(rec, httptest.NewRequest("GET", "/api/meetings?course_id=1", nil))
	var listed []meetingResponse
	json.Unmarshal(rec.Body.Bytes(), &listed)
	if len(listed) != 1 {
		t.Fatalf("meetings = %d, want 1", len(listed))
	}
	if !strings.Contains(listed[0].NotesHTML, "<strong>warmup</strong>") {
		t.Errorf("NotesHTML = %q, want rendered markdown", listed[0].NotesHTML)
	}
}

// TestHandleMeetingDelete removes the meeting and its attendance.
func TestHandleMeetingDelete(t *testing.T) {
	s := newTestStores()
	ctx := context.Background()
	s.MeetingStore.Create(ctx, meetingDomain.Meeting{CourseID: 1, Date: time.Now()})
	s.MeetingStore.SetPresent(ctx, 1, 7, true)

	rec := httptest.NewRecorder()
	handleMeetingDelete(rec, httptest.NewRequest("POST", "/api/meetings/delete?id=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if _, err := s.MeetingStore.GetByID(ctx, 1); err != sql.ErrNoRows {
		t.Error("meeting still present after delete")
	}
}

// --- Analysis ---

// TestHandleAnalysis_Summary verifies the analysis endpoint aggregates the
// seeded payments.
func TestHandleAnalysis_Summary(t *testing.T) {
	s := newTestStores()
	seedCourse(t, s, "Judo")
	ctx := context.Background()
	s.PaymentStore.Create(ctx, paymentDomain.Payment{
		StudentID: 1, CourseID: 1, Month: "2026-09", Amount: 300,
		PaymentDate: time.Now(), Method: "cash",
	})
	s.PaymentStore.Create(ctx, paymentDomain.Payment{
		StudentID: 2, CourseID: 1, Month: "2026-09", Amount: 250,
		PaymentDate: time.Now(), Method: "card",
	})

	rec := httptest.NewRecorder()
	handleAnalysis(rec, httptest.NewRequest("GET", "/api/analysis?period=all", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var summary map[string]any
	json.Unmarshal(rec.Body.Bytes(), &summary)
	if summary["total"] != 550.0 {
		t.Errorf("total = %v, want 550", summary["total"])
	}
	if summary["payment_count"] != 2.0 {
		t.Errorf("payment_count = %v, want 2", summary["payment_count"])
	}
}
