package models

import "time"

type Assessment struct {
	ID        string           `json:"id"`
	CourseID  string           `json:"course_id"`
	Title     string           `json:"title"`
	Type      AssessmentType   `json:"type"`
	DueDate   time.Time        `json:"due_date"`
	Weight    float64          `json:"weight"`
	Status    AssessmentStatus `json:"status,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
