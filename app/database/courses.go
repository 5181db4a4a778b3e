package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campus-lms/app/models"

	"github.com/google/uuid"
)

const courseSelect = `SELECT c.id, c.title, c.description, c.enroll_key, c.start_date, c.end_date,
			  c.instructor_id, c.created_at, c.updated_at, u.id, u.name, u.email`

const courseFrom = ` FROM courses c JOIN users u ON u.id = c.instructor_id`

func scanCourse(row rowScanner, extra ...any) (*models.Course, error) {
	course := &models.Course{}
	var enrollKey sql.NullString
	var startDate, endDate sql.NullTime
	dest := []any{
		&course.ID, &course.Title, &course.Description, &enrollKey, &startDate, &endDate,
		&course.InstructorID, &course.CreatedAt, &course.UpdatedAt,
		&course.Instructor.ID, &course.Instructor.Name, &course.Instructor.Email,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if enrollKey.Valid && enrollKey.String != "" {
		course.EnrollKey = &enrollKey.String
		course.RequiresKey = true
	}
	if startDate.Valid {
		course.StartDate = &startDate.Time
	}
	if endDate.Valid {
		course.EndDate = &endDate.Time
	}
	return course, nil
}

// GetCoursesForUser applies the role visibility rule: lecturers see the
// courses they own, students the courses they are enrolled in, everyone
// else every course.
func GetCoursesForUser(db *sql.DB, userID string, role models.Role) ([]*models.Course, error) {
	switch role {
	case models.RoleLecturer:
		return getLecturerCourses(db, userID)
	case models.RoleStudent:
		return getStudentCourses(db, userID)
	default:
		return GetAllCourses(db)
	}
}

func getLecturerCourses(db *sql.DB, userID string) ([]*models.Course, error) {
	query := courseSelect + `,
			  (SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id)` + courseFrom + `
			  WHERE c.instructor_id = $1
			  ORDER BY c.created_at`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		var count int
		course, err := scanCourse(rows, &count)
		if err != nil {
			return nil, err
		}
		course.EnrollmentCount = &count
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func getStudentCourses(db *sql.DB, userID string) ([]*models.Course, error) {
	query := courseSelect + `, e.progress` + courseFrom + `
			  JOIN enrollments e ON e.course_id = c.id
			  WHERE e.user_id = $1
			  ORDER BY c.created_at`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		var progress float64
		course, err := scanCourse(rows, &progress)
		if err != nil {
			return nil, err
		}
		course.Enrollments = []models.EnrollmentProgress{{Progress: progress}}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func GetAllCourses(db *sql.DB) ([]*models.Course, error) {
	rows, err := db.Query(courseSelect + courseFrom + ` ORDER BY c.created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func GetCourseByID(db *sql.DB, courseID string) (*models.Course, error) {
	return scanCourse(db.QueryRow(courseSelect+courseFrom+` WHERE c.id = $1`, courseID))
}

// GetCourseDetail loads a course with its ordered materials and assessments.
func GetCourseDetail(db *sql.DB, courseID string) (*models.CourseDetail, error) {
	course, err := GetCourseByID(db, courseID)
	if err != nil {
		return nil, err
	}

	materials, err := GetCourseMaterials(db, courseID)
	if err != nil {
		return nil, fmt.Errorf("load materials: %w", err)
	}

	assessments, err := GetAssessmentsByCourse(db, courseID)
	if err != nil {
		return nil, fmt.Errorf("load assessments: %w", err)
	}

	quizzes := []*models.Assessment{}
	for _, a := range assessments {
		if a.Type == models.AssessmentQuiz {
			quizzes = append(quizzes, a)
		}
	}

	return &models.CourseDetail{
		Course:      *course,
		Materials:   materials,
		Quizzes:     quizzes,
		Assessments: assessments,
	}, nil
}

func CreateCourse(db *sql.DB, in models.CourseInput, instructorID string) (*models.Course, error) {
	now := time.Now().UTC()
	id := uuid.NewString()

	query := `INSERT INTO courses (id, title, description, enroll_key, start_date, end_date, instructor_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := db.Exec(query, id, in.Title, in.Description, nullable(in.EnrollKey),
		nullable(in.StartDate), nullable(in.EndDate), instructorID, now, now)
	if err != nil {
		return nil, err
	}
	return GetCourseByID(db, id)
}

// UpdateCourse applies the non-nil fields of patch.
func UpdateCourse(db *sql.DB, courseID string, patch models.CoursePatch) (*models.Course, error) {
	course, err := GetCourseByID(db, courseID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		course.Title = *patch.Title
	}
	if patch.Description != nil {
		course.Description = *patch.Description
	}
	if patch.EnrollKey != nil {
		if *patch.EnrollKey == "" {
			course.EnrollKey = nil
		} else {
			course.EnrollKey = patch.EnrollKey
		}
	}
	if patch.StartDate != nil {
		course.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		course.EndDate = patch.EndDate
	}

	query := `UPDATE courses SET title = $1, description = $2, enroll_key = $3, start_date = $4,
			  end_date = $5, updated_at = $6 WHERE id = $7`
	err = execOne(db, query, course.Title, course.Description, nullable(course.EnrollKey),
		nullable(course.StartDate), nullable(course.EndDate), time.Now().UTC(), courseID)
	if err != nil {
		return nil, err
	}
	return GetCourseByID(db, courseID)
}

// DeleteCourse removes the course; the schema cascades to enrollments,
// materials, assessments and grades.
func DeleteCourse(db *sql.DB, courseID string) error {
	return execOne(db, `DELETE FROM courses WHERE id = $1`, courseID)
}
