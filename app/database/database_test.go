package database

import (
	"database/sql"
	"testing"

	"campus-lms/app/config"
	"campus-lms/app/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := config.OpenDB("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustCreateUser(t *testing.T, db *sql.DB, email string, role models.Role) *models.User {
	t.Helper()
	hash := "not-a-real-hash"
	u := &models.User{Email: email, Name: email, PasswordHash: &hash, Role: role}
	if err := CreateUser(db, u); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func mustCreateCourse(t *testing.T, db *sql.DB, title string, owner *models.User) *models.Course {
	t.Helper()
	c, err := CreateCourse(db, models.CourseInput{Title: title}, owner.ID)
	if err != nil {
		t.Fatalf("create course %s: %v", title, err)
	}
	return c
}
