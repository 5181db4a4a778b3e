package models

// DashboardStats mirrors the four cards of the gradebook dashboard.
type DashboardStats struct {
	TotalCourses      int     `json:"total_courses"`
	ActiveAssessments int     `json:"active_assessments"`
	AverageGrade      float64 `json:"average_grade"`
	LearningProgress  int     `json:"learning_progress"`
}
