package gradebook

import (
	"math"
	"time"

	"campus-lms/app/models"
)

// DayOf strips the time of day, keeping t's location.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sameCalendarDay maps due onto today's location by calendar date so a
// date-only value stored in UTC compares as the day it names.
func sameCalendarDay(due time.Time, loc *time.Location) time.Time {
	y, m, d := due.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Status classifies an assessment: due before today is completed, due today
// is active, anything later is upcoming.
func Status(due, today time.Time) models.AssessmentStatus {
	t := DayOf(today)
	d := sameCalendarDay(due, t.Location())
	switch {
	case d.Before(t):
		return models.StatusCompleted
	case d.Equal(t):
		return models.StatusActive
	default:
		return models.StatusUpcoming
	}
}

// ComputeDashboard derives the four dashboard cards. The average is rounded
// to one decimal and the progress (share of past-due assessments) to a whole
// percent; both are zero on empty input.
func ComputeDashboard(courseCount int, dueDates []time.Time, scores []float64, today time.Time) models.DashboardStats {
	stats := models.DashboardStats{TotalCourses: courseCount}

	completed := 0
	for _, due := range dueDates {
		if Status(due, today) == models.StatusCompleted {
			completed++
		} else {
			stats.ActiveAssessments++
		}
	}

	if len(scores) > 0 {
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		stats.AverageGrade = math.Round(sum/float64(len(scores))*10) / 10
	}

	if len(dueDates) > 0 {
		stats.LearningProgress = int(math.Round(float64(completed) / float64(len(dueDates)) * 100))
	}

	return stats
}
