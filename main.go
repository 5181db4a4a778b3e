package main

import (
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	"campus-lms/app/config"
	"campus-lms/app/database"
	"campus-lms/app/gradebook"
	"campus-lms/app/models"
	"campus-lms/app/routes/assessments"
	"campus-lms/app/routes/auth"
	"campus-lms/app/routes/courses"
	"campus-lms/app/routes/dashboard"
	gradebookroutes "campus-lms/app/routes/gradebook"
	"campus-lms/app/routes/users"
	"campus-lms/app/templates"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
)

// customErrorHandler answers JSON on /api paths and renders the error page otherwise
func customErrorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if strings.HasPrefix(c.Path(), "/api") {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	title := "An Error Occurred"
	message := err.Error()
	switch code {
	case 404:
		title = "Page Not Found"
		message = "The page you are looking for does not exist."
	case 403:
		title = "Access Forbidden"
		message = "You don't have permission to access this resource."
	case 500:
		title = "Internal Server Error"
		message = "We're experiencing technical difficulties. Please try again later."
	}
	return c.Status(code).Render("error", fiber.Map{
		"Title":        title,
		"CurrentPage":  "",
		"ErrorCode":    code,
		"ErrorTitle":   title,
		"ErrorMessage": message,
	})
}

// newApp wires every route onto a fresh Fiber app. now supplies "today" for
// assessment status and dashboard metrics.
func newApp(cfg *config.Config, db *sql.DB, now func() time.Time) *fiber.App {
	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	svc := auth.NewService(db, tokens, cfg.BcryptCost)

	app := fiber.New(fiber.Config{
		Views:        templates.NewEngine(),
		ViewsLayout:  "layouts/main",
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/auth/login")
	})

	auth.SetupAuthRoutes(app, svc)
	dashboard.SetupDashboardRoutes(app, db, tokens, now)
	courses.SetupCoursesRoutes(app, db, tokens, courses.Options{StrictOwnership: cfg.StrictOwnership})
	assessments.SetupAssessmentsRoutes(app, db, tokens, now)
	users.SetupUsersRoutes(app, db, tokens, users.Options{StrictOwnership: cfg.StrictOwnership})
	gradebookroutes.SetupGradebookRoutes(app, gradebook.NewStore(now), tokens)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	return app
}

func serve(cfg *config.Config) error {
	config.InitDB(cfg)
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		return err
	}

	if n, err := database.PromoteAdmins(db, cfg.AdminEmails); err != nil {
		log.Printf("Warning: failed to promote admins: %v", err)
	} else if n > 0 {
		log.Printf("Promoted %d account(s) to %s", n, models.RoleAdmin)
	}

	if cfg.StrictOwnership {
		log.Println("Strict ownership checks enabled")
	}

	app := newApp(cfg, db, time.Now)

	log.Printf("Server starting on %s", cfg.Addr)
	return app.Listen(cfg.Addr)
}

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:          "campus-lms",
		Short:        "Campus learning management server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	}

	// Flags override the environment.
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flags.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "database driver (postgres or sqlite)")
	flags.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "database connection string")
	flags.BoolVar(&cfg.StrictOwnership, "strict-ownership", cfg.StrictOwnership, "require ownership for course and role changes")
	flags.StringVar(&cfg.DefaultLocale, "default-locale", cfg.DefaultLocale, "locale assigned to new users (id or en)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !database.SetDefaultLocale(cfg.DefaultLocale) {
			log.Printf("Invalid default locale %q, using %s", cfg.DefaultLocale, database.DefaultLocale)
			cfg.DefaultLocale = database.DefaultLocale
		}
		return nil
	}

	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}
