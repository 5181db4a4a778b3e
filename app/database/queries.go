package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"campus-lms/app/models"

	"github.com/google/uuid"
)

const userColumns = `id, email, name, password_hash, sso_id, role, locale, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var passwordHash, ssoID sql.NullString
	var role string
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &passwordHash, &ssoID,
		&role, &user.Locale, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if passwordHash.Valid {
		user.PasswordHash = &passwordHash.String
	}
	if ssoID.Valid {
		user.SSOID = &ssoID.String
	}
	user.Role = models.Role(role)
	return user, nil
}

// nullable unwraps optional columns into a driver value or nil.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// DefaultLocale is assigned to new users that do not choose one.
var DefaultLocale = models.LocaleID

// SetDefaultLocale changes DefaultLocale. An unsupported locale leaves
// the current default in place and reports false.
func SetDefaultLocale(locale string) bool {
	if !models.ValidLocale(locale) {
		return false
	}
	DefaultLocale = locale
	return true
}

// CreateUser inserts user, filling in ID and timestamps.
func CreateUser(db *sql.DB, user *models.User) error {
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.Email = normalizeEmail(user.Email)
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = models.RoleStudent
	}
	if user.Locale == "" {
		user.Locale = DefaultLocale
	}

	query := `INSERT INTO users (id, email, name, password_hash, sso_id, role, locale, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := db.Exec(query, user.ID, user.Email, user.Name, nullable(user.PasswordHash), nullable(user.SSOID),
		string(user.Role), user.Locale, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %s: %w", user.Email, ErrConflict)
		}
		return err
	}
	return nil
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(db.QueryRow(query, normalizeEmail(email)))
}

func GetUserBySSOID(db *sql.DB, ssoID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE sso_id = $1`
	return scanUser(db.QueryRow(query, ssoID))
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.QueryRow(query, userID))
}

func GetAllUsers(db *sql.DB) ([]*models.UserListItem, error) {
	rows, err := db.Query(`SELECT id, email, name, role, created_at FROM users ORDER BY created_at, email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*models.UserListItem{}
	for rows.Next() {
		u := &models.UserListItem{}
		var role string
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &role, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Role = models.Role(role)
		users = append(users, u)
	}
	return users, rows.Err()
}

// execOne runs an UPDATE/DELETE and maps "no row touched" to ErrNotFound.
func execOne(db *sql.DB, query string, args ...any) error {
	res, err := db.Exec(query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func UpdateUserRole(db *sql.DB, userID string, role models.Role) (*models.User, error) {
	err := execOne(db, `UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`,
		string(role), time.Now().UTC(), userID)
	if err != nil {
		return nil, err
	}
	return GetUserByID(db, userID)
}

func UpdateUserPassword(db *sql.DB, userID string, hashedPassword string) error {
	return execOne(db, `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		hashedPassword, time.Now().UTC(), userID)
}

func UpdateUserLocale(db *sql.DB, userID, locale string) error {
	return execOne(db, `UPDATE users SET locale = $1, updated_at = $2 WHERE id = $3`,
		locale, time.Now().UTC(), userID)
}

// LinkSSOID attaches an SSO identity to an existing account.
func LinkSSOID(db *sql.DB, userID, ssoID string) error {
	err := execOne(db, `UPDATE users SET sso_id = $1, updated_at = $2 WHERE id = $3`,
		ssoID, time.Now().UTC(), userID)
	if err != nil && isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// PromoteAdmins gives ADMIN to every listed email that has an account.
func PromoteAdmins(db *sql.DB, emails []string) (int, error) {
	promoted := 0
	for _, email := range emails {
		err := execOne(db, `UPDATE users SET role = $1, updated_at = $2 WHERE email = $3`,
			string(models.RoleAdmin), time.Now().UTC(), normalizeEmail(email))
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return promoted, err
		}
		promoted++
	}
	return promoted, nil
}
