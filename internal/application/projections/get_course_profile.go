package projections

import (
	"context"
	"time"

	"clubdesk/internal/domain/course"
	"clubdesk/internal/domain/meeting"
	"clubdesk/internal/domain/student"
)

// CourseProfileCourseStore defines the course store interface for the profile page.
type CourseProfileCourseStore interface {
	GetByID(ctx context.Context, id int) (course.Course, error)
}

// CourseProfileStudentStore defines the student store interface for the profile page.
type CourseProfileStudentStore interface {
	ListByCourse(ctx context.Context, courseID int) ([]student.Student, error)
}

// CourseProfileMeetingStore defines the meeting store interface for the profile page.
type CourseProfileMeetingStore interface {
	ListByCourse(ctx context.Context, courseID int) ([]meeting.Meeting, error)
	ListAttendance(ctx context.Context, meetingID int) ([]meeting.Attendance, error)
}

// CourseProfileDeps holds dependencies for the course profile projection.
type CourseProfileDeps struct {
	CourseStore  CourseProfileCourseStore
	StudentStore CourseProfileStudentStore
	MeetingStore CourseProfileMeetingStore
	Now          func() time.Time // nil means time.Now
}

// ProfileStudent is one enrolled student with display fields resolved.
type ProfileStudent struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Age      int    `json:"age"`
	National string `json:"national_id,omitempty"`
}

// ProfileMeeting is one held session with its attendance marks.
type ProfileMeeting struct {
	ID         int                  `json:"id"`
	Date       string               `json:"date"`
	Notes      string               `json:"notes"`
	Attendance []meeting.Attendance `json:"attendance"`
	Present    int                  `json:"present"`
}

// CourseProfile is everything the course page shows.
type CourseProfile struct {
	Course           course.Course    `json:"course"`
	Students         []ProfileStudent `json:"students"`
	Meetings         []ProfileMeeting `json:"meetings"`
	ClassesRemaining int              `json:"classes_remaining"`
}

// CourseProfileInput identifies the course.
type CourseProfileInput struct {
	CourseID int
}

// QueryCourseProfile assembles the course page: schedule details, the
// enrolled roster with ages, held meetings with attendance, and how many
// planned sessions are still ahead.
func QueryCourseProfile(ctx context.Context, input CourseProfileInput, deps CourseProfileDeps) (CourseProfile, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	c, err := deps.CourseStore.GetByID(ctx, input.CourseID)
	if err != nil {
		return CourseProfile{}, err
	}

	students, err := deps.StudentStore.ListByCourse(ctx, input.CourseID)
	if err != nil {
		return CourseProfile{}, err
	}
	roster := make([]ProfileStudent, 0, len(students))
	for i := range students {
		s := &students[i]
		roster = append(roster, ProfileStudent{
			ID:       s.ID,
			Name:     s.FullName(),
			Phone:    s.Phone,
			Age:      s.Age(now()),
			National: s.NationalID,
		})
	}

	meetings, err := deps.MeetingStore.ListByCourse(ctx, input.CourseID)
	if err != nil {
		return CourseProfile{}, err
	}
	held := make([]ProfileMeeting, 0, len(meetings))
	for _, m := range meetings {
		marks, err := deps.MeetingStore.ListAttendance(ctx, m.ID)
		if err != nil {
			return CourseProfile{}, err
		}
		present := 0
		for _, a := range marks {
			if a.Present {
				present++
			}
		}
		held = append(held, ProfileMeeting{
			ID:         m.ID,
			Date:       m.Date.Format(dateFormat),
			Notes:      m.Notes,
			Attendance: marks,
			Present:    present,
		})
	}

	remaining, err := c.ClassesRemaining(now())
	if err != nil {
		return CourseProfile{}, err
	}

	return CourseProfile{
		Course:           c,
		Students:         roster,
		Meetings:         held,
		ClassesRemaining: remaining,
	}, nil
}
