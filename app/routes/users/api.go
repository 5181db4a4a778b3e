package users

import (
	"database/sql"
	"errors"
	"log"

	"campus-lms/app/database"
	"campus-lms/app/models"
	"campus-lms/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func GetUsersAPI(c *fiber.Ctx, db *sql.DB) error {
	users, err := database.GetAllUsers(db)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch users"})
	}
	return c.JSON(users)
}

func GetUserAPI(c *fiber.Ctx, db *sql.DB) error {
	user, err := database.GetUserByID(db, c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		log.Printf("Error loading user %s: %v", c.Params("id"), err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch user"})
	}
	return c.JSON(user)
}

func UpdateRoleAPI(c *fiber.Ctx, db *sql.DB, opts Options) error {
	if opts.StrictOwnership && auth.UserRole(c) != models.RoleAdmin {
		return c.Status(403).JSON(fiber.Map{"error": "Only admins can change roles"})
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	role, ok := models.ParseRole(req.Role)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Role must be STUDENT, LECTURER or ADMIN"})
	}

	user, err := database.UpdateUserRole(db, c.Params("id"), role)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		log.Printf("Error updating role of %s: %v", c.Params("id"), err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update role"})
	}
	return c.JSON(user)
}

// UpdateLocaleAPI lets users pick their own UI language; admins may set anyone's.
func UpdateLocaleAPI(c *fiber.Ctx, db *sql.DB) error {
	userID := c.Params("id")
	if userID != auth.UserID(c) && auth.UserRole(c) != models.RoleAdmin {
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}

	var req struct {
		Locale string `json:"locale"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !models.ValidLocale(req.Locale) {
		return c.Status(400).JSON(fiber.Map{"error": "Locale must be id or en"})
	}

	if err := database.UpdateUserLocale(db, userID, req.Locale); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update locale"})
	}
	return c.JSON(fiber.Map{"id": userID, "locale": req.Locale})
}

// GetUserGradesAPI lists a student's grades; students may only read their own.
func GetUserGradesAPI(c *fiber.Ctx, db *sql.DB) error {
	userID := c.Params("id")
	if auth.UserRole(c) == models.RoleStudent && userID != auth.UserID(c) {
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}

	if _, err := database.GetUserByID(db, userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch user"})
	}

	grades, err := database.GetGradesByStudent(db, userID)
	if err != nil {
		log.Printf("Error listing grades of %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch grades"})
	}
	return c.JSON(grades)
}
