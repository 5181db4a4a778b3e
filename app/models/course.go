package models

import "time"

type Course struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	EnrollKey    *string     `json:"-"`
	RequiresKey  bool        `json:"requires_enroll_key"`
	StartDate    *time.Time  `json:"start_date,omitempty"`
	EndDate      *time.Time  `json:"end_date,omitempty"`
	InstructorID string      `json:"instructor_id"`
	Instructor   UserSummary `json:"instructor"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	// Set only for lecturer listings.
	EnrollmentCount *int `json:"enrollment_count,omitempty"`
	// Set only for student listings; holds the caller's own enrollment.
	Enrollments []EnrollmentProgress `json:"enrollments,omitempty"`
}

// CourseDetail is the payload of GET /api/courses/:id.
type CourseDetail struct {
	Course
	DescriptionHTML string        `json:"description_html"`
	Materials       []*Material   `json:"materials"`
	Quizzes         []*Assessment `json:"quizzes"`
	Assessments     []*Assessment `json:"assessments"`
}

type CourseInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	EnrollKey   *string    `json:"enroll_key"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// CoursePatch carries only the fields present in the request body.
type CoursePatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	EnrollKey   *string    `json:"enroll_key"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type Material struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	URL       string    `json:"url,omitempty"`
	SortOrder int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}
