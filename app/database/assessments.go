package database

import (
	"database/sql"
	"errors"
	"time"

	"campus-lms/app/models"

	"github.com/google/uuid"
)

const assessmentColumns = `id, course_id, title, type, due_date, weight, created_at`

func scanAssessment(row rowScanner) (*models.Assessment, error) {
	a := &models.Assessment{}
	var typ string
	if err := row.Scan(&a.ID, &a.CourseID, &a.Title, &typ, &a.DueDate, &a.Weight, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	a.Type = models.AssessmentType(typ)
	return a, nil
}

func GetAssessmentsByCourse(db *sql.DB, courseID string) ([]*models.Assessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessments WHERE course_id = $1 ORDER BY due_date, created_at`
	rows, err := db.Query(query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assessments := []*models.Assessment{}
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}

func GetAssessmentByID(db *sql.DB, assessmentID string) (*models.Assessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessments WHERE id = $1`
	return scanAssessment(db.QueryRow(query, assessmentID))
}

func CreateAssessment(db *sql.DB, a *models.Assessment) error {
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()
	if a.Type == "" {
		a.Type = models.AssessmentAssignment
	}

	query := `INSERT INTO assessments (id, course_id, title, type, due_date, weight, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := db.Exec(query, a.ID, a.CourseID, a.Title, string(a.Type), a.DueDate, a.Weight, a.CreatedAt)
	return err
}

// DeleteAssessment removes the assessment; grades cascade.
func DeleteAssessment(db *sql.DB, assessmentID string) error {
	return execOne(db, `DELETE FROM assessments WHERE id = $1`, assessmentID)
}
