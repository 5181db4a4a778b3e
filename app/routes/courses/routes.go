package courses

import (
	"database/sql"

	"campus-lms/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// Options tune the course routes.
type Options struct {
	// StrictOwnership restricts mutation to the owning lecturer or an admin.
	StrictOwnership bool
}

// SetupCoursesRoutes sets up all course-related routes
func SetupCoursesRoutes(app *fiber.App, db *sql.DB, tokens *auth.TokenIssuer, opts Options) {
	api := app.Group("/api/courses")
	api.Use(auth.AuthMiddleware(tokens))

	api.Get("/", func(c *fiber.Ctx) error { return GetCoursesAPI(c, db) })
	api.Post("/", func(c *fiber.Ctx) error { return CreateCourseAPI(c, db, opts) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetCourseAPI(c, db) })
	api.Put("/:id", func(c *fiber.Ctx) error { return UpdateCourseAPI(c, db, opts) })
	api.Delete("/:id", func(c *fiber.Ctx) error { return DeleteCourseAPI(c, db, opts) })

	// Enrollment
	api.Post("/:id/enroll", func(c *fiber.Ctx) error { return EnrollAPI(c, db) })
	api.Put("/:id/progress", func(c *fiber.Ctx) error { return UpdateProgressAPI(c, db) })
	api.Get("/:id/enrollments", func(c *fiber.Ctx) error { return GetEnrollmentsAPI(c, db, opts) })

	// Materials
	api.Post("/:id/materials", func(c *fiber.Ctx) error { return CreateMaterialAPI(c, db, opts) })
	api.Delete("/:id/materials/:materialId", func(c *fiber.Ctx) error { return DeleteMaterialAPI(c, db, opts) })
}
