package database

import (
	"database/sql"
	"time"

	"campus-lms/app/models"

	"github.com/google/uuid"
)

// UpsertGrade records a score, replacing any earlier score for the same
// (student, assessment) pair.
func UpsertGrade(db *sql.DB, studentID string, assessment *models.Assessment, score float64) (*models.Grade, error) {
	g := &models.Grade{
		ID:           uuid.NewString(),
		StudentID:    studentID,
		CourseID:     assessment.CourseID,
		AssessmentID: assessment.ID,
		Score:        score,
		GradedAt:     time.Now().UTC(),
	}

	query := `INSERT INTO grades (id, student_id, course_id, assessment_id, score, graded_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (student_id, assessment_id)
			  DO UPDATE SET score = excluded.score, graded_at = excluded.graded_at`
	if _, err := db.Exec(query, g.ID, g.StudentID, g.CourseID, g.AssessmentID, g.Score, g.GradedAt); err != nil {
		return nil, err
	}

	// The row keeps its original id on conflict.
	err := db.QueryRow(`SELECT id FROM grades WHERE student_id = $1 AND assessment_id = $2`,
		studentID, assessment.ID).Scan(&g.ID)
	if err != nil {
		return nil, err
	}
	return g, nil
}

const gradeSelect = `SELECT g.id, g.student_id, u.name, g.course_id, g.assessment_id, g.score, g.graded_at
			  FROM grades g
			  JOIN users u ON u.id = g.student_id`

func queryGrades(db *sql.DB, query string, args ...any) ([]*models.Grade, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grades := []*models.Grade{}
	for rows.Next() {
		g := &models.Grade{}
		if err := rows.Scan(&g.ID, &g.StudentID, &g.StudentName, &g.CourseID, &g.AssessmentID, &g.Score, &g.GradedAt); err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

func GetGradesByCourse(db *sql.DB, courseID string) ([]*models.Grade, error) {
	return queryGrades(db, gradeSelect+` WHERE g.course_id = $1 ORDER BY u.name, g.graded_at`, courseID)
}

func GetGradesByStudent(db *sql.DB, studentID string) ([]*models.Grade, error) {
	return queryGrades(db, gradeSelect+` WHERE g.student_id = $1 ORDER BY g.graded_at`, studentID)
}
