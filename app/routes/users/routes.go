package users

import (
	"database/sql"

	"campus-lms/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

type Options struct {
	// StrictOwnership limits role changes to admins.
	StrictOwnership bool
}

// SetupUsersRoutes sets up all user management routes
func SetupUsersRoutes(app *fiber.App, db *sql.DB, tokens *auth.TokenIssuer, opts Options) {
	api := app.Group("/api/users")
	api.Use(auth.AuthMiddleware(tokens))

	api.Get("/", func(c *fiber.Ctx) error { return GetUsersAPI(c, db) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetUserAPI(c, db) })
	api.Put("/:id/role", func(c *fiber.Ctx) error { return UpdateRoleAPI(c, db, opts) })
	api.Put("/:id/locale", func(c *fiber.Ctx) error { return UpdateLocaleAPI(c, db) })
	api.Get("/:id/grades", func(c *fiber.Ctx) error { return GetUserGradesAPI(c, db) })
}
