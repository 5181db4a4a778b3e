package gradebook

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"campus-lms/app/models"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

const maxActivities = 5

type Course struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Code       string `json:"code"`
	Instructor string `json:"instructor"`
	Credits    int    `json:"credits"`
}

type Assessment struct {
	ID       int                     `json:"id"`
	CourseID int                     `json:"course_id"`
	Title    string                  `json:"title"`
	Type     string                  `json:"type"`
	DueDate  time.Time               `json:"due_date"`
	Weight   int                     `json:"weight"`
	Status   models.AssessmentStatus `json:"status"`
}

type Grade struct {
	StudentID    int     `json:"student_id"`
	StudentName  string  `json:"student_name"`
	CourseID     int     `json:"course_id"`
	AssessmentID int     `json:"assessment_id"`
	Score        float64 `json:"score"`
}

type Activity struct {
	At      time.Time `json:"at"`
	Message string    `json:"message"`
}

// Snapshot is a consistent copy of the store plus its derived metrics.
type Snapshot struct {
	Courses     []Course              `json:"courses"`
	Assessments []Assessment          `json:"assessments"`
	Grades      []Grade               `json:"grades"`
	Stats       models.DashboardStats `json:"stats"`
	Activities  []Activity            `json:"activities"`
}

// Store holds the demo gradebook in memory. It is seeded on construction
// and never persisted.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	courses     []Course
	assessments []Assessment
	grades      []Grade
	activities  []Activity

	nextCourseID     int
	nextAssessmentID int
}

func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{now: now}
	s.seed()
	return s
}

func (s *Store) seed() {
	today := DayOf(s.now())
	nextWeek := today.AddDate(0, 0, 7)
	lastWeek := today.AddDate(0, 0, -7)

	s.courses = []Course{
		{ID: 1, Name: "Pemrograman Web", Code: "IF301", Instructor: "Dr. Ahmad Santoso", Credits: 3},
		{ID: 2, Name: "Basis Data", Code: "IF302", Instructor: "Dr. Siti Nurhaliza", Credits: 3},
		{ID: 3, Name: "Algoritma dan Struktur Data", Code: "IF201", Instructor: "Prof. Budi Hartono", Credits: 4},
	}
	s.assessments = []Assessment{
		{ID: 1, CourseID: 1, Title: "Tugas 1 - HTML & CSS", Type: "Tugas", DueDate: nextWeek, Weight: 20},
		{ID: 2, CourseID: 1, Title: "Quiz JavaScript", Type: "Quiz", DueDate: nextWeek, Weight: 15},
		{ID: 3, CourseID: 2, Title: "UTS Basis Data", Type: "UTS", DueDate: lastWeek, Weight: 35},
		{ID: 4, CourseID: 3, Title: "Praktikum Sorting", Type: "Praktikum", DueDate: today, Weight: 25},
	}
	s.grades = []Grade{
		{StudentID: 1, StudentName: "Andi Wijaya", CourseID: 1, AssessmentID: 1, Score: 85},
		{StudentID: 1, StudentName: "Andi Wijaya", CourseID: 1, AssessmentID: 2, Score: 90},
		{StudentID: 1, StudentName: "Andi Wijaya", CourseID: 2, AssessmentID: 3, Score: 88},
		{StudentID: 2, StudentName: "Sari Dewi", CourseID: 1, AssessmentID: 1, Score: 92},
		{StudentID: 2, StudentName: "Sari Dewi", CourseID: 2, AssessmentID: 3, Score: 95},
	}
	s.nextCourseID = len(s.courses) + 1
	s.nextAssessmentID = len(s.assessments) + 1
}

// logActivity must be called with mu held.
func (s *Store) logActivity(format string, args ...any) {
	a := Activity{At: s.now(), Message: fmt.Sprintf(format, args...)}
	s.activities = append([]Activity{a}, s.activities...)
	if len(s.activities) > maxActivities {
		s.activities = s.activities[:maxActivities]
	}
}

type CourseInput struct {
	Name       string `json:"name"`
	Code       string `json:"code"`
	Instructor string `json:"instructor"`
	Credits    int    `json:"credits"`
}

func (s *Store) AddCourse(in CourseInput) (Course, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Code) == "" {
		return Course{}, fmt.Errorf("%w: name and code are required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := Course{
		ID:         s.nextCourseID,
		Name:       in.Name,
		Code:       in.Code,
		Instructor: in.Instructor,
		Credits:    in.Credits,
	}
	s.nextCourseID++
	s.courses = append(s.courses, c)
	s.logActivity("Course %q added", c.Name)
	return c, nil
}

// DeleteCourse removes the course together with its assessments and their grades.
func (s *Store) DeleteCourse(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.courses {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("course %d: %w", id, ErrNotFound)
	}
	name := s.courses[idx].Name
	s.courses = append(s.courses[:idx:idx], s.courses[idx+1:]...)

	removed := make(map[int]bool)
	kept := s.assessments[:0:0]
	for _, a := range s.assessments {
		if a.CourseID == id {
			removed[a.ID] = true
			continue
		}
		kept = append(kept, a)
	}
	s.assessments = kept
	s.dropGrades(func(g Grade) bool { return removed[g.AssessmentID] })

	s.logActivity("Course %q deleted", name)
	return nil
}

type AssessmentInput struct {
	CourseID int    `json:"course_id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	DueDate  string `json:"due_date"`
	Weight   int    `json:"weight"`
}

func (s *Store) AddAssessment(in AssessmentInput) (Assessment, error) {
	if strings.TrimSpace(in.Title) == "" {
		return Assessment{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	due, err := time.ParseInLocation("2006-01-02", in.DueDate, time.Local)
	if err != nil {
		return Assessment{}, fmt.Errorf("%w: due_date must be YYYY-MM-DD", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var course *Course
	for i := range s.courses {
		if s.courses[i].ID == in.CourseID {
			course = &s.courses[i]
			break
		}
	}
	if course == nil {
		return Assessment{}, fmt.Errorf("course %d: %w", in.CourseID, ErrNotFound)
	}

	a := Assessment{
		ID:       s.nextAssessmentID,
		CourseID: in.CourseID,
		Title:    in.Title,
		Type:     in.Type,
		DueDate:  due,
		Weight:   in.Weight,
	}
	s.nextAssessmentID++
	s.assessments = append(s.assessments, a)
	s.logActivity("Assessment %q added for %s", a.Title, course.Name)

	a.Status = Status(a.DueDate, s.now())
	return a, nil
}

// DeleteAssessment removes the assessment and every grade recorded for it.
func (s *Store) DeleteAssessment(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, a := range s.assessments {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("assessment %d: %w", id, ErrNotFound)
	}
	title := s.assessments[idx].Title
	s.assessments = append(s.assessments[:idx:idx], s.assessments[idx+1:]...)
	s.dropGrades(func(g Grade) bool { return g.AssessmentID == id })

	s.logActivity("Assessment %q deleted", title)
	return nil
}

func (s *Store) dropGrades(match func(Grade) bool) {
	kept := s.grades[:0:0]
	for _, g := range s.grades {
		if !match(g) {
			kept = append(kept, g)
		}
	}
	s.grades = kept
}

func (s *Store) Courses() []Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Course(nil), s.courses...)
}

// Assessments returns every assessment with its status as of now.
func (s *Store) Assessments() []Assessment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assessmentsWithStatus(s.now())
}

func (s *Store) assessmentsWithStatus(today time.Time) []Assessment {
	out := make([]Assessment, len(s.assessments))
	for i, a := range s.assessments {
		a.Status = Status(a.DueDate, today)
		out[i] = a
	}
	return out
}

func (s *Store) Grades() []Grade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Grade(nil), s.grades...)
}

func (s *Store) Activities() []Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Activity(nil), s.activities...)
}

func (s *Store) Stats() models.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats(s.now())
}

func (s *Store) stats(today time.Time) models.DashboardStats {
	dueDates := make([]time.Time, len(s.assessments))
	for i, a := range s.assessments {
		dueDates[i] = a.DueDate
	}
	scores := make([]float64, len(s.grades))
	for i, g := range s.grades {
		scores[i] = g.Score
	}
	return ComputeDashboard(len(s.courses), dueDates, scores, today)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := s.now()
	return Snapshot{
		Courses:     append([]Course{}, s.courses...),
		Assessments: s.assessmentsWithStatus(today),
		Grades:      append([]Grade{}, s.grades...),
		Stats:       s.stats(today),
		Activities:  append([]Activity{}, s.activities...),
	}
}
