package models

import "time"

// Grade is a student's score on one assessment. Unique per (student, assessment).
type Grade struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id"`
	StudentName  string    `json:"student_name,omitempty"`
	CourseID     string    `json:"course_id"`
	AssessmentID string    `json:"assessment_id"`
	Score        float64   `json:"score"`
	GradedAt     time.Time `json:"graded_at"`
}
