package database

import (
	"database/sql"
	"time"

	"campus-lms/app/models"

	"github.com/google/uuid"
)

// GetCourseMaterials returns materials in display order.
func GetCourseMaterials(db *sql.DB, courseID string) ([]*models.Material, error) {
	query := `SELECT id, course_id, title, content, url, sort_order, created_at
			  FROM materials WHERE course_id = $1
			  ORDER BY sort_order, created_at`

	rows, err := db.Query(query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	materials := []*models.Material{}
	for rows.Next() {
		m := &models.Material{}
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Title, &m.Content, &m.URL, &m.SortOrder, &m.CreatedAt); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

func CreateMaterial(db *sql.DB, m *models.Material) error {
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()

	query := `INSERT INTO materials (id, course_id, title, content, url, sort_order, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := db.Exec(query, m.ID, m.CourseID, m.Title, m.Content, m.URL, m.SortOrder, m.CreatedAt)
	return err
}

func DeleteMaterial(db *sql.DB, courseID, materialID string) error {
	return execOne(db, `DELETE FROM materials WHERE id = $1 AND course_id = $2`, materialID, courseID)
}
