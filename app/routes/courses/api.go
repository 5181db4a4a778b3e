package courses

import (
	"crypto/subtle"
	"database/sql"
	"errors"
	"log"
	"strings"

	"campus-lms/app/database"
	"campus-lms/app/models"
	"campus-lms/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func notFound(c *fiber.Ctx) error {
	return c.Status(404).JSON(fiber.Map{"error": "Course not found"})
}

// loadManagedCourse fetches the course and, under strict ownership, checks
// that the caller owns it or is an admin.
func loadManagedCourse(c *fiber.Ctx, db *sql.DB, opts Options) (*models.Course, error) {
	course, err := database.GetCourseByID(db, c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFound(c)
		}
		log.Printf("Error loading course %s: %v", c.Params("id"), err)
		return nil, c.Status(500).JSON(fiber.Map{"error": "Failed to fetch course"})
	}

	if opts.StrictOwnership && auth.UserRole(c) != models.RoleAdmin && course.InstructorID != auth.UserID(c) {
		return nil, c.Status(403).JSON(fiber.Map{"error": "Only the course owner can modify this course"})
	}
	return course, nil
}

func GetCoursesAPI(c *fiber.Ctx, db *sql.DB) error {
	courses, err := database.GetCoursesForUser(db, auth.UserID(c), auth.UserRole(c))
	if err != nil {
		log.Printf("Error listing courses: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch courses"})
	}
	return c.JSON(courses)
}

func GetCourseAPI(c *fiber.Ctx, db *sql.DB) error {
	detail, err := database.GetCourseDetail(db, c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return notFound(c)
		}
		log.Printf("Error loading course %s: %v", c.Params("id"), err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch course"})
	}

	html, err := renderMarkdown(detail.Description)
	if err != nil {
		log.Printf("Error rendering description of %s: %v", detail.ID, err)
	}
	detail.DescriptionHTML = html

	return c.JSON(detail)
}

func CreateCourseAPI(c *fiber.Ctx, db *sql.DB, opts Options) error {
	if opts.StrictOwnership {
		if role := auth.UserRole(c); role != models.RoleLecturer && role != models.RoleAdmin {
			return c.Status(403).JSON(fiber.Map{"error": "Only lecturers can create courses"})
		}
	}

	var in models.CourseInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Title is required"})
	}
	if in.EnrollKey != nil && *in.EnrollKey == "" {
		in.EnrollKey = nil
	}

	course, err := database.CreateCourse(db, in, auth.UserID(c))
	if err != nil {
		log.Printf("Error creating course: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create course"})
	}
	return c.Status(201).JSON(course)
}

func UpdateCourseAPI(c *fiber.Ctx, db *sql.DB, opts Options) error {
	course, err := loadManagedCourse(c, db, opts)
	if course == nil {
		return err
	}

	var patch models.CoursePatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Title cannot be empty"})
	}

	updated, err := database.UpdateCourse(db, course.ID, patch)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return notFound(c)
		}
		log.Printf("Error updating course %s: %v", course.ID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update course"})
	}
	return c.JSON(updated)
}

func DeleteCourseAPI(c *fiber.Ctx, db *sql.DB, opts Options) error {
	course, err := loadManagedCourse(c, db, opts)
	if course == nil {
		return err
	}

	if err := database.DeleteCourse(db, course.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return notFound(c)
		}
		log.Printf("Error deleting course %s: %v", course.ID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete course"})
	}
	return c.JSON(course)
}

func EnrollAPI(c *fiber.Ctx, db *sql.DB) error {
	if auth.UserRole(c) != models.RoleStudent {
		return c.Status(403).JSON(fiber.Map{"error": "Only students can enroll"})
	}

	course, err := database.GetCourseByID(db, c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return notFound(c)
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch course"})
	}

	var req struct {
		EnrollKey string `json:"enroll_key"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
		}
	}
	if course.EnrollKey != nil && subtle.ConstantTimeCompare([]byte(*course.EnrollKey), []byte(req.EnrollKey)) != 1 {
		return c.Status(403).JSON(fiber.Map{"error": "Invalid enrollment key"})
	}

	enrollment, err := database.EnrollUser(db, auth.UserID(c), course.ID)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return c.Status(409).JSON(fiber.Map{"error": "Already enrolled"})
		}
		log.Printf("Error enrolling in %s: %v", course.ID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to enroll"})
	}
	return c.Status(201).JSON(enrollment)
}

func UpdateProgressAPI(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		Progress *float64 `json:"progress"`
	}
	if err := c.BodyParser(&req); err != nil || req.Progress == nil {
		return c.Status(400).JSON(fiber.Map{"error": "progress is required"})
	}
	if *req.Progress < 0 || *req.Progress > 100 {
		return c.Status(400).JSON(fiber.Map{"error": "progress must be between 0 and 100"})
	}

	enrollment, err := database.UpdateEnrollmentProgress(db, auth.UserID(c), c.Params("id"), *req.Progress)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Enrollment not found"})
		}
		log.Printf("Error updating progress: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update progress"})
	}
	return c.JSON(enrollment)
}

func GetEnrollmentsAPI(c *fiber.Ctx, db *sql.DB, opts Options) error {
	course, err := loadManagedCourse(c, db, opts)
	if course == nil {
		return err
	}

	enrollments, err := database.GetCourseEnrollments(db, course.ID)
	if err != nil {
		log.Printf("Error listing enrollments of %s: %v", course.ID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch enrollments"})
	}
	return c.JSON(fiber.Map{
		"enrollments": enrollments,
		"count":       len(enrollments),
	})
}

func CreateMaterialAPI(c *fiber.Ctx, db *sql.DB, opts Options) error {
	course, err := loadManagedCourse(c, db, opts)
	if course == nil {
		return err
	}

	var m models.Material
	if err := c.BodyParser(&m); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(m.Title) == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Title is required"})
	}
	m.CourseID = course.ID

	if err := database.CreateMaterial(db, &m); err != nil {
		log.Printf("Error creating material: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create material"})
	}
	return c.Status(201).JSON(m)
}

func DeleteMaterialAPI(c *fiber.Ctx, db *sql.DB, opts Options) error {
	course, err := loadManagedCourse(c, db, opts)
	if course == nil {
		return err
	}

	if err := database.DeleteMaterial(db, course.ID, c.Params("materialId")); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Material not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete material"})
	}
	return c.JSON(fiber.Map{"message": "Material deleted successfully"})
}
