package auth

import (
	"errors"
	"log"
	"strings"

	"campus-lms/app/database"

	"github.com/gofiber/fiber/v2"
)

const minPasswordLength = 8

type loginResponse struct {
	AccessToken string   `json:"access_token"`
	User        Identity `json:"user"`
}

func respondWithToken(c *fiber.Ctx, svc *Service, id Identity) error {
	token, err := svc.IssueToken(id)
	if err != nil {
		log.Printf("Failed to sign token for %s: %v", id.ID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}
	return c.JSON(loginResponse{AccessToken: token, User: id})
}

func LoginAPI(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type LoginRequest struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}

		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}
		if strings.TrimSpace(req.Email) == "" || req.Password == "" {
			return c.Status(400).JSON(fiber.Map{"error": "Email and password are required"})
		}

		id, err := svc.Authenticate(req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
			}
			log.Printf("Login failed: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "Database error"})
		}

		return respondWithToken(c, svc, id)
	}
}

func SSOLoginAPI(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type SSORequest struct {
			SSOID string `json:"ssoId"`
			Email string `json:"email"`
			Name  string `json:"name"`
		}

		var req SSORequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}
		if req.SSOID == "" || strings.TrimSpace(req.Email) == "" {
			return c.Status(400).JSON(fiber.Map{"error": "ssoId and email are required"})
		}
		if req.Name == "" {
			req.Name = strings.Split(req.Email, "@")[0]
		}

		id, err := svc.AuthenticateSSO(req.SSOID, req.Email, req.Name)
		if err != nil {
			if errors.Is(err, ErrSSOConflict) {
				return c.Status(409).JSON(fiber.Map{"error": err.Error()})
			}
			log.Printf("SSO login failed: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "Database error"})
		}

		return respondWithToken(c, svc, id)
	}
}

func MeAPI(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := database.GetUserByID(svc.db, UserID(c))
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return c.Status(401).JSON(fiber.Map{"error": "Account no longer exists"})
			}
			return c.Status(500).JSON(fiber.Map{"error": "Database error"})
		}
		return c.JSON(fiber.Map{
			"user":         user,
			"has_password": user.HasPassword(),
			"has_sso":      user.SSOID != nil,
		})
	}
}

func ChangePasswordAPI(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type ChangePasswordRequest struct {
			CurrentPassword string `json:"current_password"`
			NewPassword     string `json:"new_password"`
		}

		var req ChangePasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}
		if len(req.NewPassword) < minPasswordLength {
			return c.Status(400).JSON(fiber.Map{"error": "New password must be at least 8 characters"})
		}

		err := svc.SetPassword(UserID(c), req.CurrentPassword, req.NewPassword)
		switch {
		case err == nil:
			return c.JSON(fiber.Map{"message": "Password changed successfully"})
		case errors.Is(err, ErrInvalidCredentials):
			return c.Status(400).JSON(fiber.Map{"error": "Current password is incorrect"})
		case errors.Is(err, database.ErrNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		default:
			log.Printf("Failed to update password for %s: %v", UserEmail(c), err)
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update password"})
		}
	}
}
