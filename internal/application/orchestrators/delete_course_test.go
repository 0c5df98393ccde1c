package orchestrators

import (
	"context"
	"errors"
	"testing"
)

// cascadeRecorder records which delete calls ran and in what order.
type cascadeRecorder struct {
	calls []string
	fail  string // call name to fail on
}

func (r *cascadeRecorder) record(name string) error {
	r.calls = append(r.calls, name)
	if r.fail == name {
		return errors.New(name + " failed")
	}
	return nil
}

type courseCascade struct{ rec *cascadeRecorder }

func (c courseCascade) Delete(ctx context.Context, id int) error { return c.rec.record("course") }

type enrollmentCascade struct{ rec *cascadeRecorder }

func (c enrollmentCascade) DeleteByCourse(ctx context.Context, id int) error {
	return c.rec.record("enrollments")
}

type paymentCascade struct{ rec *cascadeRecorder }

func (c paymentCascade) DeleteByCourse(ctx context.Context, id int) error {
	return c.rec.record("payments")
}

type meetingCascade struct{ rec *cascadeRecorder }

func (c meetingCascade) DeleteByCourse(ctx context.Context, id int) error {
	return c.rec.record("meetings")
}

func cascadeDeps(rec *cascadeRecorder) DeleteCourseDeps {
	return DeleteCourseDeps{
		CourseStore:     courseCascade{rec},
		EnrollmentStore: enrollmentCascade{rec},
		PaymentStore:    paymentCascade{rec},
		MeetingStore:    meetingCascade{rec},
	}
}

// TestExecuteDeleteCourse_ChildrenFirst verifies the cascade order: meetings,
// payments and enrollments go before the course row.
func TestExecuteDeleteCourse_ChildrenFirst(t *testing.T) {
	rec := &cascadeRecorder{}

	if err := ExecuteDeleteCourse(context.Background(), DeleteCourseInput{CourseID: 5}, cascadeDeps(rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"meetings", "payments", "enrollments", "course"}
	if len(rec.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Errorf("call[%d] = %q, want %q", i, rec.calls[i], want[i])
		}
	}
}

// TestExecuteDeleteCourse_StopsOnChildFailure verifies the course row
// survives when a child delete fails.
func TestExecuteDeleteCourse_StopsOnChildFailure(t *testing.T) {
	rec := &cascadeRecorder{fail: "payments"}

	err := ExecuteDeleteCourse(context.Background(), DeleteCourseInput{CourseID: 5}, cascadeDeps(rec))
	if err == nil {
		t.Fatal("expected error")
	}
	for _, call := range rec.calls {
		if call == "course" {
			t.Error("course row deleted despite child failure")
		}
	}
}

// TestExecuteDeleteCourse_RequiresID verifies the guard on missing ids.
func TestExecuteDeleteCourse_RequiresID(t *testing.T) {
	rec := &cascadeRecorder{}

	if err := ExecuteDeleteCourse(context.Background(), DeleteCourseInput{}, cascadeDeps(rec)); err == nil {
		t.Fatal("expected error for zero course id")
	}
	if len(rec.calls) != 0 {
		t.Errorf("stores touched for invalid input: %v", rec.calls)
	}
}
