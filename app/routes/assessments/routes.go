package assessments

import (
	"database/sql"
	"time"

	"campus-lms/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAssessmentsRoutes registers assessment and grade routes. now supplies
// "today" for status derivation.
func SetupAssessmentsRoutes(app *fiber.App, db *sql.DB, tokens *auth.TokenIssuer, now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	authed := auth.AuthMiddleware(tokens)
	staff := auth.RoleMiddleware(lecturers...)

	// Per course
	app.Get("/api/courses/:id/assessments", authed, func(c *fiber.Ctx) error {
		return GetCourseAssessmentsAPI(c, db, now())
	})
	app.Post("/api/courses/:id/assessments", authed, staff, func(c *fiber.Ctx) error {
		return CreateAssessmentAPI(c, db, now())
	})
	app.Get("/api/courses/:id/grades", authed, func(c *fiber.Ctx) error {
		return GetCourseGradesAPI(c, db)
	})

	api := app.Group("/api/assessments")
	api.Use(authed)
	api.Delete("/:id", staff, func(c *fiber.Ctx) error { return DeleteAssessmentAPI(c, db) })
	api.Put("/:id/grades", staff, func(c *fiber.Ctx) error { return GradeAPI(c, db) })
}
