package assessments

import (
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	"campus-lms/app/database"
	"campus-lms/app/gradebook"
	"campus-lms/app/models"
	"campus-lms/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

var lecturers = []models.Role{models.RoleLecturer, models.RoleAdmin}

// parseDueDate accepts YYYY-MM-DD (stored as UTC midnight) or RFC3339.
func parseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func GetCourseAssessmentsAPI(c *fiber.Ctx, db *sql.DB, today time.Time) error {
	courseID := c.Params("id")
	if _, err := database.GetCourseByID(db, courseID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Course not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch course"})
	}

	list, err := database.GetAssessmentsByCourse(db, courseID)
	if err != nil {
		log.Printf("Error listing assessments of %s: %v", courseID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch assessments"})
	}
	for _, a := range list {
		a.Status = gradebook.Status(a.DueDate, today)
	}
	return c.JSON(list)
}

func CreateAssessmentAPI(c *fiber.Ctx, db *sql.DB, today time.Time) error {
	courseID := c.Params("id")
	if _, err := database.GetCourseByID(db, courseID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Course not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch course"})
	}

	var req struct {
		Title   string  `json:"title"`
		Type    string  `json:"type"`
		DueDate string  `json:"due_date"`
		Weight  float64 `json:"weight"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Title is required"})
	}
	typ, ok := models.ParseAssessmentType(req.Type)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid assessment type"})
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "due_date must be YYYY-MM-DD or RFC3339"})
	}
	if req.Weight < 0 || req.Weight > 100 {
		return c.Status(400).JSON(fiber.Map{"error": "weight must be between 0 and 100"})
	}

	a := &models.Assessment{
		CourseID: courseID,
		Title:    strings.TrimSpace(req.Title),
		Type:     typ,
		DueDate:  due,
		Weight:   req.Weight,
	}
	if err := database.CreateAssessment(db, a); err != nil {
		log.Printf("Error creating assessment: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create assessment"})
	}
	a.Status = gradebook.Status(a.DueDate, today)
	return c.Status(201).JSON(a)
}

func DeleteAssessmentAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteAssessment(db, c.Params("id")); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Assessment not found"})
		}
		log.Printf("Error deleting assessment %s: %v", c.Params("id"), err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete assessment"})
	}
	return c.JSON(fiber.Map{"message": "Assessment deleted successfully"})
}

func GradeAPI(c *fiber.Ctx, db *sql.DB) error {
	assessment, err := database.GetAssessmentByID(db, c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Assessment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch assessment"})
	}

	var req struct {
		StudentID string   `json:"student_id"`
		Score     *float64 `json:"score"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.StudentID == "" || req.Score == nil {
		return c.Status(400).JSON(fiber.Map{"error": "student_id and score are required"})
	}
	if *req.Score < 0 || *req.Score > 100 {
		return c.Status(400).JSON(fiber.Map{"error": "score must be between 0 and 100"})
	}

	if _, err := database.GetEnrollment(db, req.StudentID, assessment.CourseID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(400).JSON(fiber.Map{"error": "Student is not enrolled in this course"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check enrollment"})
	}

	grade, err := database.UpsertGrade(db, req.StudentID, assessment, *req.Score)
	if err != nil {
		log.Printf("Error grading %s for %s: %v", assessment.ID, req.StudentID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save grade"})
	}
	return c.JSON(grade)
}

// GetCourseGradesAPI lists every grade in the course; students only see their own.
func GetCourseGradesAPI(c *fiber.Ctx, db *sql.DB) error {
	courseID := c.Params("id")
	if _, err := database.GetCourseByID(db, courseID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Course not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch course"})
	}

	grades, err := database.GetGradesByCourse(db, courseID)
	if err != nil {
		log.Printf("Error listing grades of %s: %v", courseID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch grades"})
	}

	if auth.UserRole(c) == models.RoleStudent {
		own := grades[:0]
		for _, g := range grades {
			if g.StudentID == auth.UserID(c) {
				own = append(own, g)
			}
		}
		grades = own
	}
	return c.JSON(grades)
}
