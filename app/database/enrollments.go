package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campus-lms/app/models"

	"github.com/google/uuid"
)

// EnrollUser links a student to a course. A second enrollment returns ErrConflict.
func EnrollUser(db *sql.DB, userID, courseID string) (*models.Enrollment, error) {
	e := &models.Enrollment{
		ID:         uuid.NewString(),
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now().UTC(),
	}

	query := `INSERT INTO enrollments (id, user_id, course_id, progress, enrolled_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := db.Exec(query, e.ID, e.UserID, e.CourseID, e.Progress, e.EnrolledAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("enroll %s in %s: %w", userID, courseID, ErrConflict)
		}
		return nil, err
	}
	return e, nil
}

func GetEnrollment(db *sql.DB, userID, courseID string) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	query := `SELECT id, user_id, course_id, progress, enrolled_at FROM enrollments WHERE user_id = $1 AND course_id = $2`
	err := db.QueryRow(query, userID, courseID).Scan(&e.ID, &e.UserID, &e.CourseID, &e.Progress, &e.EnrolledAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func UpdateEnrollmentProgress(db *sql.DB, userID, courseID string, progress float64) (*models.Enrollment, error) {
	err := execOne(db, `UPDATE enrollments SET progress = $1 WHERE user_id = $2 AND course_id = $3`,
		progress, userID, courseID)
	if err != nil {
		return nil, err
	}
	return GetEnrollment(db, userID, courseID)
}

func GetCourseEnrollments(db *sql.DB, courseID string) ([]*models.Enrollment, error) {
	query := `SELECT e.id, e.user_id, e.course_id, e.progress, e.enrolled_at, u.id, u.name, u.email
			  FROM enrollments e
			  JOIN users u ON u.id = e.user_id
			  WHERE e.course_id = $1
			  ORDER BY e.enrolled_at`

	rows, err := db.Query(query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := []*models.Enrollment{}
	for rows.Next() {
		e := &models.Enrollment{User: &models.UserSummary{}}
		if err := rows.Scan(&e.ID, &e.UserID, &e.CourseID, &e.Progress, &e.EnrolledAt,
			&e.User.ID, &e.User.Name, &e.User.Email); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}
