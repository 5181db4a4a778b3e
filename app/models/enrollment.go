package models

import "time"

type Enrollment struct {
	ID         string       `json:"id"`
	UserID     string       `json:"user_id"`
	CourseID   string       `json:"course_id"`
	Progress   float64      `json:"progress"`
	EnrolledAt time.Time    `json:"enrolled_at"`
	User       *UserSummary `json:"user,omitempty"`
}

type EnrollmentProgress struct {
	Progress float64 `json:"progress"`
}
