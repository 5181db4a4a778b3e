package gradebook

import (
	"errors"
	"sync"
	"testing"
	"time"

	"campus-lms/app/models"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
}

func TestNewStoreSeed(t *testing.T) {
	s := NewStore(fixedClock)

	if n := len(s.Courses()); n != 3 {
		t.Fatalf("seeded courses = %d, want 3", n)
	}
	if n := len(s.Grades()); n != 5 {
		t.Fatalf("seeded grades = %d, want 5", n)
	}

	want := map[int]models.AssessmentStatus{
		1: models.StatusUpcoming,
		2: models.StatusUpcoming,
		3: models.StatusCompleted,
		4: models.StatusActive,
	}
	for _, a := range s.Assessments() {
		if a.Status != want[a.ID] {
			t.Errorf("assessment %d status = %s, want %s", a.ID, a.Status, want[a.ID])
		}
	}

	stats := s.Stats()
	if stats.AverageGrade != 90.0 {
		t.Errorf("AverageGrade = %v, want 90.0", stats.AverageGrade)
	}
	if stats.ActiveAssessments != 3 || stats.LearningProgress != 25 || stats.TotalCourses != 3 {
		t.Errorf("Stats = %+v", stats)
	}
}

func TestDeleteCourseCascades(t *testing.T) {
	s := NewStore(fixedClock)

	if err := s.DeleteCourse(1); err != nil {
		t.Fatalf("DeleteCourse: %v", err)
	}

	for _, a := range s.Assessments() {
		if a.CourseID == 1 {
			t.Errorf("assessment %d of deleted course survived", a.ID)
		}
	}
	if n := len(s.Assessments()); n != 2 {
		t.Errorf("assessments after delete = %d, want 2", n)
	}
	for _, g := range s.Grades() {
		if g.AssessmentID == 1 || g.AssessmentID == 2 {
			t.Errorf("grade for deleted assessment %d survived", g.AssessmentID)
		}
	}
	if n := len(s.Grades()); n != 2 {
		t.Errorf("grades after delete = %d, want 2", n)
	}

	if err := s.DeleteCourse(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteCourse err = %v, want ErrNotFound", err)
	}
}

func TestDeleteAssessmentCascades(t *testing.T) {
	s := NewStore(fixedClock)

	if err := s.DeleteAssessment(3); err != nil {
		t.Fatalf("DeleteAssessment: %v", err)
	}
	for _, g := range s.Grades() {
		if g.AssessmentID == 3 {
			t.Error("grade for deleted assessment survived")
		}
	}
	if n := len(s.Grades()); n != 3 {
		t.Errorf("grades = %d, want 3", n)
	}
	if err := s.DeleteAssessment(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestIDsAreNotReused(t *testing.T) {
	s := NewStore(fixedClock)

	if err := s.DeleteCourse(3); err != nil {
		t.Fatal(err)
	}
	c, err := s.AddCourse(CourseInput{Name: "Jaringan Komputer", Code: "IF303", Credits: 3})
	if err != nil {
		t.Fatal(err)
	}
	if c.ID != 4 {
		t.Errorf("new course id = %d, want 4", c.ID)
	}

	if err := s.DeleteAssessment(4); !errors.Is(err, ErrNotFound) {
		t.Errorf("assessment 4 should have gone with course 3, err = %v", err)
	}
	if err := s.DeleteAssessment(1); err != nil {
		t.Fatal(err)
	}
	a, err := s.AddAssessment(AssessmentInput{CourseID: c.ID, Title: "Quiz", DueDate: "2024-06-11", Weight: 10})
	if err != nil {
		t.Fatal(err)
	}
	if a.ID != 5 {
		t.Errorf("new assessment id = %d, want 5", a.ID)
	}
	if a.Status != models.StatusUpcoming {
		t.Errorf("status = %s, want upcoming", a.Status)
	}
}

func TestAddValidation(t *testing.T) {
	s := NewStore(fixedClock)

	if _, err := s.AddCourse(CourseInput{Name: " ", Code: "X"}); !errors.Is(err, ErrValidation) {
		t.Errorf("AddCourse without name err = %v, want ErrValidation", err)
	}

	tests := []struct {
		name string
		in   AssessmentInput
		want error
	}{
		{"missing title", AssessmentInput{CourseID: 1, DueDate: "2024-06-11"}, ErrValidation},
		{"bad date", AssessmentInput{CourseID: 1, Title: "T", DueDate: "11/06/2024"}, ErrValidation},
		{"unknown course", AssessmentInput{CourseID: 99, Title: "T", DueDate: "2024-06-11"}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.AddAssessment(tt.in); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestActivitiesNewestFirst(t *testing.T) {
	s := NewStore(fixedClock)

	for _, code := range []string{"A1", "A2", "A3", "A4", "A5", "A6"} {
		if _, err := s.AddCourse(CourseInput{Name: "Course " + code, Code: code}); err != nil {
			t.Fatal(err)
		}
	}

	acts := s.Activities()
	if len(acts) != maxActivities {
		t.Fatalf("activities = %d, want %d", len(acts), maxActivities)
	}
	if acts[0].Message != `Course "Course A6" added` {
		t.Errorf("newest activity = %q", acts[0].Message)
	}
}

func TestStoreConcurrentUse(t *testing.T) {
	s := NewStore(fixedClock)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.AddCourse(CourseInput{Name: "N", Code: "C"})
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	if n := len(s.Courses()); n != 23 {
		t.Errorf("courses = %d, want 23", n)
	}
}
