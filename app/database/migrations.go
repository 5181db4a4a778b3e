package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
)

// schema is written in the subset of SQL shared by PostgreSQL and SQLite.
var schema = []struct {
	name  string
	query string
}{
	{"users", `CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		password_hash TEXT,
		sso_id        TEXT UNIQUE,
		role          TEXT NOT NULL DEFAULT 'STUDENT',
		locale        TEXT NOT NULL DEFAULT 'id',
		created_at    TIMESTAMP NOT NULL,
		updated_at    TIMESTAMP NOT NULL
	)`},
	{"courses", `CREATE TABLE IF NOT EXISTS courses (
		id            TEXT PRIMARY KEY,
		title         TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		enroll_key    TEXT,
		start_date    TIMESTAMP,
		end_date      TIMESTAMP,
		instructor_id TEXT NOT NULL REFERENCES users(id),
		created_at    TIMESTAMP NOT NULL,
		updated_at    TIMESTAMP NOT NULL
	)`},
	{"enrollments", `CREATE TABLE IF NOT EXISTS enrollments (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		course_id   TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		progress    DOUBLE PRECISION NOT NULL DEFAULT 0,
		enrolled_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, course_id)
	)`},
	{"materials", `CREATE TABLE IF NOT EXISTS materials (
		id         TEXT PRIMARY KEY,
		course_id  TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		content    TEXT NOT NULL DEFAULT '',
		url        TEXT NOT NULL DEFAULT '',
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`},
	{"assessments", `CREATE TABLE IF NOT EXISTS assessments (
		id         TEXT PRIMARY KEY,
		course_id  TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		type       TEXT NOT NULL DEFAULT 'ASSIGNMENT',
		due_date   TIMESTAMP NOT NULL,
		weight     DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`},
	{"grades", `CREATE TABLE IF NOT EXISTS grades (
		id            TEXT PRIMARY KEY,
		student_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		course_id     TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		assessment_id TEXT NOT NULL REFERENCES assessments(id) ON DELETE CASCADE,
		score         DOUBLE PRECISION NOT NULL,
		graded_at     TIMESTAMP NOT NULL,
		UNIQUE (student_id, assessment_id)
	)`},
	{"idx_courses_instructor", `CREATE INDEX IF NOT EXISTS idx_courses_instructor ON courses (instructor_id)`},
	{"idx_enrollments_course", `CREATE INDEX IF NOT EXISTS idx_enrollments_course ON enrollments (course_id)`},
	{"idx_assessments_course", `CREATE INDEX IF NOT EXISTS idx_assessments_course ON assessments (course_id)`},
}

// RunMigrations creates any missing tables and indexes.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	for _, m := range schema {
		if _, err := db.Exec(m.query); err != nil {
			log.Printf("Failed to run migration %s: %v", m.name, err)
			return fmt.Errorf("migration %s: %w", m.name, err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// MigrationStatus reports which tables of the schema exist.
func MigrationStatus(db *sql.DB) (map[string]bool, error) {
	status := make(map[string]bool)
	for _, m := range schema {
		if strings.HasPrefix(m.name, "idx_") {
			continue
		}
		// A zero-row probe works on both drivers without catalog queries.
		_, err := db.Exec("SELECT 1 FROM " + m.name + " WHERE 1 = 0")
		status[m.name] = err == nil
	}
	return status, nil
}
