package gradebook

import (
	"errors"

	"campus-lms/app/gradebook"

	"github.com/gofiber/fiber/v2"
)

// storeError maps store failures onto HTTP statuses.
func storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gradebook.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, gradebook.ErrValidation):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(500).JSON(fiber.Map{"error": "Gradebook operation failed"})
}

func GetSnapshotAPI(c *fiber.Ctx, store *gradebook.Store) error {
	return c.JSON(store.Snapshot())
}

func AddCourseAPI(c *fiber.Ctx, store *gradebook.Store) error {
	var in gradebook.CourseInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	course, err := store.AddCourse(in)
	if err != nil {
		return storeError(c, err)
	}
	return c.Status(201).JSON(course)
}

func DeleteCourseAPI(c *fiber.Ctx, store *gradebook.Store) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid course ID"})
	}
	if err := store.DeleteCourse(id); err != nil {
		return storeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Course deleted successfully"})
}

func AddAssessmentAPI(c *fiber.Ctx, store *gradebook.Store) error {
	var in gradebook.AssessmentInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	a, err := store.AddAssessment(in)
	if err != nil {
		return storeError(c, err)
	}
	return c.Status(201).JSON(a)
}

func DeleteAssessmentAPI(c *fiber.Ctx, store *gradebook.Store) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid assessment ID"})
	}
	if err := store.DeleteAssessment(id); err != nil {
		return storeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Assessment deleted successfully"})
}
