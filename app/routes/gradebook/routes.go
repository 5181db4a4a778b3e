package gradebook

import (
	"campus-lms/app/gradebook"
	"campus-lms/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupGradebookRoutes serves the in-memory demo gradebook.
func SetupGradebookRoutes(app *fiber.App, store *gradebook.Store, tokens *auth.TokenIssuer) {
	app.Get("/gradebook", ShowGradebookPage)

	api := app.Group("/api/gradebook")
	api.Use(auth.AuthMiddleware(tokens))

	api.Get("/", func(c *fiber.Ctx) error { return GetSnapshotAPI(c, store) })
	api.Post("/courses", func(c *fiber.Ctx) error { return AddCourseAPI(c, store) })
	api.Delete("/courses/:id", func(c *fiber.Ctx) error { return DeleteCourseAPI(c, store) })
	api.Post("/assessments", func(c *fiber.Ctx) error { return AddAssessmentAPI(c, store) })
	api.Delete("/assessments/:id", func(c *fiber.Ctx) error { return DeleteAssessmentAPI(c, store) })
}

func ShowGradebookPage(c *fiber.Ctx) error {
	return c.Render("gradebook/index", fiber.Map{
		"Title":       "Gradebook",
		"CurrentPage": "gradebook",
	})
}
