package projections

import (
	"context"
	"testing"
	"time"

	domainCourse "clubdesk/internal/domain/course"
	domainMeeting "clubdesk/internal/domain/meeting"
	domainStudent "clubdesk/internal/domain/student"
)

type mockProfileCourseStore struct {
	course domainCourse.Course
}

func (m *mockProfileCourseStore) GetByID(_ context.Context, _ int) (domainCourse.Course, error) {
	return m.course, nil
}

type mockProfileStudentStore struct {
	students []domainStudent.Student
}

func (m *mockProfileStudentStore) ListByCourse(_ context.Context, _ int) ([]domainStudent.Student, error) {
	return m.students, nil
}

type mockProfileMeetingStore struct {
	meetings   []domainMeeting.Meeting
	attendance map[int][]domainMeeting.Attendance
}

func (m *mockProfileMeetingStore) ListByCourse(_ context.Context, _ int) ([]domainMeeting.Meeting, error) {
	return m.meetings, nil
}

func (m *mockProfileMeetingStore) ListAttendance(_ context.Context, meetingID int) ([]domainMeeting.Attendance, error) {
	return m.attendance[meetingID], nil
}

// TestQueryCourseProfile verifies the profile assembles roster ages,
// attendance counts and the remaining-session figure.
func TestQueryCourseProfile(t *testing.T) {
	c := seededCourse(1, "Judo", "18:00", "0,3")
	deps := CourseProfileDeps{
		CourseStore: &mockProfileCourseStore{course: c},
		StudentStore: &mockProfileStudentStore{students: []domainStudent.Student{
			{ID: 1, FirstName: "Noa", FathersName: "Avi", Phone: "052-1111111",
				DateOfBirth: time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 2, FirstName: "Ella", FathersName: "Rami", Phone: "052-2222222",
				DateOfBirth: time.Date(2014, 10, 12, 0, 0, 0, 0, time.UTC)},
		}},
		MeetingStore: &mockProfileMeetingStore{
			meetings: []domainMeeting.Meeting{
				{ID: 10, CourseID: 1, Date: time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC), Notes: "warmup drills"},
			},
			attendance: map[int][]domainMeeting.Attendance{
				10: {
					{ID: 1, MeetingID: 10, StudentID: 1, Present: true},
					{ID: 2, MeetingID: 10, StudentID: 2, Present: false},
				},
			},
		},
		Now: func() time.Time { return time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC) },
	}

	res, err := QueryCourseProfile(context.Background(), CourseProfileInput{CourseID: 1}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Students) != 2 {
		t.Fatalf("students=%d want 2", len(res.Students))
	}
	if res.Students[0].Name != "Noa Avi" || res.Students[0].Age != 11 {
		t.Errorf("first student = %+v, want Noa Avi aged 11", res.Students[0])
	}
	if res.Students[1].Age != 11 {
		t.Errorf("second student age = %d, want 11 (birthday not yet reached)", res.Students[1].Age)
	}

	if len(res.Meetings) != 1 {
		t.Fatalf("meetings=%d want 1", len(res.Meetings))
	}
	if res.Meetings[0].Date != "2026-09-06" || res.Meetings[0].Present != 1 {
		t.Errorf("meeting = %+v, want 2026-09-06 with 1 present", res.Meetings[0])
	}

	// As of 2026-09-10 the 09-06 and 09-09 sessions are behind us.
	if res.ClassesRemaining != 8 {
		t.Errorf("ClassesRemaining = %d, want 8", res.ClassesRemaining)
	}
}
