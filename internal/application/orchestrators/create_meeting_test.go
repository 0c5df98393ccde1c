package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	domainEnrollment "clubdesk/internal/domain/enrollment"
	domainMeeting "clubdesk/internal/domain/meeting"
)

type mockMeetingStore struct {
	nextMeetingID int
	attendance    []domainMeeting.Attendance
	createErr     error
}

func (m *mockMeetingStore) Create(_ context.Context, _ domainMeeting.Meeting) (int, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextMeetingID++
	return m.nextMeetingID, nil
}

func (m *mockMeetingStore) CreateAttendance(_ context.Context, a domainMeeting.Attendance) (int, error) {
	m.attendance = append(m.attendance, a)
	return len(m.attendance), nil
}

type mockEnrollmentLister struct {
	enrollments []domainEnrollment.Enrollment
}

func (m *mockEnrollmentLister) ListByCourse(_ context.Context, _ int) ([]domainEnrollment.Enrollment, error) {
	return m.enrollments, nil
}

// TestExecuteCreateMeeting_FansOutAttendance verifies every enrolled student
// gets an attendance row, present or absent.
func TestExecuteCreateMeeting_FansOutAttendance(t *testing.T) {
	store := &mockMeetingStore{}
	deps := CreateMeetingDeps{
		MeetingStore: store,
		EnrollmentStore: &mockEnrollmentLister{enrollments: []domainEnrollment.Enrollment{
			{ID: 1, CourseID: 1, StudentID: 10},
			{ID: 2, CourseID: 1, StudentID: 11},
			{ID: 3, CourseID: 1, StudentID: 12},
		}},
	}

	id, err := ExecuteCreateMeeting(context.Background(), CreateMeetingInput{
		Meeting: domainMeeting.Meeting{CourseID: 1, Date: time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC), Notes: "belt test prep"},
		Present: map[int]bool{10: true, 12: true},
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 1 {
		t.Errorf("meeting id = %d, want 1", id)
	}
	if len(store.attendance) != 3 {
		t.Fatalf("attendance rows = %d, want 3", len(store.attendance))
	}

	present := map[int]bool{}
	for _, a := range store.attendance {
		if a.MeetingID != 1 {
			t.Errorf("attendance meeting id = %d, want 1", a.MeetingID)
		}
		present[a.StudentID] = a.Present
	}
	if !present[10] || present[11] || !present[12] {
		t.Errorf("present marks = %v, want 10 and 12 present, 11 absent", present)
	}
}

// TestExecuteCreateMeeting_RejectsInvalid verifies validation runs first.
func TestExecuteCreateMeeting_RejectsInvalid(t *testing.T) {
	store := &mockMeetingStore{}
	deps := CreateMeetingDeps{
		MeetingStore:    store,
		EnrollmentStore: &mockEnrollmentLister{},
	}

	_, err := ExecuteCreateMeeting(context.Background(), CreateMeetingInput{
		Meeting: domainMeeting.Meeting{CourseID: 0, Date: time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)},
	}, deps)
	if !errors.Is(err, domainMeeting.ErrMissingCourse) {
		t.Errorf("err = %v, want ErrMissingCourse", err)
	}
	if store.nextMeetingID != 0 {
		t.Errorf("invalid meeting was persisted")
	}
}

// TestExecuteCreateMeeting_EmptyRoster verifies a meeting with no enrollees
// still records, with zero attendance rows.
func TestExecuteCreateMeeting_EmptyRoster(t *testing.T) {
	store := &mockMeetingStore{}
	deps := CreateMeetingDeps{
		MeetingStore:    store,
		EnrollmentStore: &mockEnrollmentLister{},
	}

	id, err := ExecuteCreateMeeting(context.Background(), CreateMeetingInput{
		Meeting: domainMeeting.Meeting{CourseID: 1, Date: time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)},
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 1 || len(store.attendance) != 0 {
		t.Errorf("id=%d attendance=%d, want 1 and 0", id, len(store.attendance))
	}
}
