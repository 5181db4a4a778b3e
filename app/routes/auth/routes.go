package auth

import (
	"strings"

	"campus-lms/app/models"

	"github.com/gofiber/fiber/v2"
)

const (
	localUserID    = "user_id"
	localUserEmail = "user_email"
	localUserRole  = "user_role"
)

func SetupAuthRoutes(app *fiber.App, svc *Service) {
	// Pages
	app.Get("/auth/login", ShowLoginPage)

	// Public API
	api := app.Group("/api/auth")
	api.Post("/login", LoginAPI(svc))
	api.Post("/sso", SSOLoginAPI(svc))

	// Protected API
	api.Get("/me", AuthMiddleware(svc.Tokens()), MeAPI(svc))
	api.Post("/password", AuthMiddleware(svc.Tokens()), ChangePasswordAPI(svc))
}

func ShowLoginPage(c *fiber.Ctx) error {
	return c.Render("auth/login", fiber.Map{
		"Title": "Login - Campus LMS",
	})
}

// AuthMiddleware validates the bearer token and exposes the caller's id,
// email and role to downstream handlers for this request only.
func AuthMiddleware(tokens *TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tokenString string
		if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
			tokenString = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		}

		isAPIRequest := strings.HasPrefix(c.Path(), "/api/")

		if tokenString == "" {
			if isAPIRequest {
				return c.Status(401).JSON(fiber.Map{"error": "No token found"})
			}
			return c.Redirect("/auth/login")
		}

		claims, err := tokens.ValidateJWT(tokenString)
		if err != nil {
			if isAPIRequest {
				return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
			}
			return c.Redirect("/auth/login")
		}

		c.Locals(localUserID, claims.Subject)
		c.Locals(localUserEmail, claims.Email)
		c.Locals(localUserRole, claims.Role)

		return c.Next()
	}
}

// RoleMiddleware checks if user has required role
func RoleMiddleware(allowedRoles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := UserRole(c)
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
}

func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(localUserID).(string)
	return id
}

func UserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(localUserEmail).(string)
	return email
}

func UserRole(c *fiber.Ctx) models.Role {
	role, _ := c.Locals(localUserRole).(models.Role)
	return role
}
