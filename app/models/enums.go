package models

import "strings"

// AssessmentType defines the kind of graded work attached to a course.
type AssessmentType string

const (
	AssessmentQuiz       AssessmentType = "QUIZ"
	AssessmentAssignment AssessmentType = "ASSIGNMENT"
	AssessmentMidterm    AssessmentType = "MIDTERM"
	AssessmentFinal      AssessmentType = "FINAL"
	AssessmentPracticum  AssessmentType = "PRACTICUM"
)

// AssessmentStatus is derived from the due date at day granularity.
type AssessmentStatus string

const (
	StatusCompleted AssessmentStatus = "completed"
	StatusActive    AssessmentStatus = "active"
	StatusUpcoming  AssessmentStatus = "upcoming"
)

// Supported UI locales.
const (
	LocaleID = "id"
	LocaleEN = "en"
)

func ValidLocale(l string) bool {
	return l == LocaleID || l == LocaleEN
}

// ParseAssessmentType accepts any casing; an empty string is accepted as ASSIGNMENT.
func ParseAssessmentType(s string) (AssessmentType, bool) {
	if s == "" {
		return AssessmentAssignment, true
	}
	t := AssessmentType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case AssessmentQuiz, AssessmentAssignment, AssessmentMidterm, AssessmentFinal, AssessmentPracticum:
		return t, true
	}
	return "", false
}
