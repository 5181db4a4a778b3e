package database

import (
	"database/sql"
	"time"

	"campus-lms/app/gradebook"
	"campus-lms/app/models"
)

// GetDashboardStats computes the dashboard cards over the courses visible
// to the caller. Students only see their own grades.
func GetDashboardStats(db *sql.DB, userID string, role models.Role, today time.Time) (*models.DashboardStats, error) {
	courses, err := GetCoursesForUser(db, userID, role)
	if err != nil {
		return nil, err
	}

	var dueDates []time.Time
	var scores []float64
	for _, c := range courses {
		assessments, err := GetAssessmentsByCourse(db, c.ID)
		if err != nil {
			return nil, err
		}
		for _, a := range assessments {
			dueDates = append(dueDates, a.DueDate)
		}

		grades, err := GetGradesByCourse(db, c.ID)
		if err != nil {
			return nil, err
		}
		for _, g := range grades {
			if role == models.RoleStudent && g.StudentID != userID {
				continue
			}
			scores = append(scores, g.Score)
		}
	}

	stats := gradebook.ComputeDashboard(len(courses), dueDates, scores, today)
	return &stats, nil
}
