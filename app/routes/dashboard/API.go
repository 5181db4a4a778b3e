package dashboard

import (
	"database/sql"
	"log"
	"time"

	"campus-lms/app/database"
	"campus-lms/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes registers the dashboard page and its stats API. The
// page itself is public; its script fetches the stats with the stored token.
func SetupDashboardRoutes(app *fiber.App, db *sql.DB, tokens *auth.TokenIssuer, now func() time.Time) {
	if now == nil {
		now = time.Now
	}

	app.Get("/dashboard", GetDashboard)
	app.Get("/api/dashboard/stats", auth.AuthMiddleware(tokens), func(c *fiber.Ctx) error {
		return GetDashboardStatsAPI(c, db, now())
	})
}

// GetDashboard handles dashboard page
func GetDashboard(c *fiber.Ctx) error {
	return c.Render("dashboard/index", fiber.Map{
		"Title":       "Dashboard",
		"CurrentPage": "dashboard",
	})
}

// GetDashboardStatsAPI returns the caller's dashboard cards as JSON
func GetDashboardStatsAPI(c *fiber.Ctx, db *sql.DB, today time.Time) error {
	stats, err := database.GetDashboardStats(db, auth.UserID(c), auth.UserRole(c), today)
	if err != nil {
		log.Printf("Error computing dashboard stats: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to fetch dashboard statistics",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}
