package database

import (
	"testing"
	"time"

	"campus-lms/app/models"
)

func TestUpsertGradeKeepsOneRowPerStudent(t *testing.T) {
	db := openTestDB(t)
	lecturer := mustCreateUser(t, db, "l@campus.ac.id", models.RoleLecturer)
	andi := mustCreateUser(t, db, "andi@campus.ac.id", models.RoleStudent)
	sari := mustCreateUser(t, db, "sari@campus.ac.id", models.RoleStudent)
	course := mustCreateCourse(t, db, "Web", lecturer)

	a := &models.Assessment{CourseID: course.ID, Title: "Tugas 1", DueDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Weight: 20}
	if err := CreateAssessment(db, a); err != nil {
		t.Fatal(err)
	}
	if a.Type != models.AssessmentAssignment {
		t.Errorf("default type = %s, want ASSIGNMENT", a.Type)
	}

	first, err := UpsertGrade(db, andi.ID, a, 70)
	if err != nil {
		t.Fatal(err)
	}
	second, err := UpsertGrade(db, andi.ID, a, 85)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Errorf("regrade created a new row: %s != %s", first.ID, second.ID)
	}
	if _, err := UpsertGrade(db, sari.ID, a, 92); err != nil {
		t.Fatal(err)
	}

	grades, err := GetGradesByCourse(db, course.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(grades) != 2 {
		t.Fatalf("grades = %d, want 2", len(grades))
	}
	scores := map[string]float64{}
	for _, g := range grades {
		scores[g.StudentID] = g.Score
	}
	if scores[andi.ID] != 85 || scores[sari.ID] != 92 {
		t.Errorf("scores = %v", scores)
	}

	mine, err := GetGradesByStudent(db, andi.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].StudentName != andi.Name {
		t.Errorf("student grades = %+v", mine)
	}

	if err := DeleteAssessment(db, a.ID); err != nil {
		t.Fatal(err)
	}
	if grades, _ := GetGradesByCourse(db, course.ID); len(grades) != 0 {
		t.Errorf("grades survived assessment delete: %d", len(grades))
	}
}

func TestGetDashboardStats(t *testing.T) {
	db := openTestDB(t)
	lecturer := mustCreateUser(t, db, "l@campus.ac.id", models.RoleLecturer)
	andi := mustCreateUser(t, db, "andi@campus.ac.id", models.RoleStudent)
	sari := mustCreateUser(t, db, "sari@campus.ac.id", models.RoleStudent)
	course := mustCreateCourse(t, db, "Web", lecturer)
	mustCreateCourse(t, db, "Basis Data", lecturer)

	for _, s := range []*models.User{andi, sari} {
		if _, err := EnrollUser(db, s.ID, course.ID); err != nil {
			t.Fatal(err)
		}
	}

	today := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	past := &models.Assessment{CourseID: course.ID, Title: "UTS", DueDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)}
	next := &models.Assessment{CourseID: course.ID, Title: "UAS", DueDate: time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)}
	for _, a := range []*models.Assessment{past, next} {
		if err := CreateAssessment(db, a); err != nil {
			t.Fatal(err)
		}
	}
	UpsertGrade(db, andi.ID, past, 80)
	UpsertGrade(db, sari.ID, past, 95)

	stats, err := GetDashboardStats(db, lecturer.ID, models.RoleLecturer, today)
	if err != nil {
		t.Fatal(err)
	}
	want := models.DashboardStats{TotalCourses: 2, ActiveAssessments: 1, AverageGrade: 87.5, LearningProgress: 50}
	if *stats != want {
		t.Errorf("lecturer stats = %+v, want %+v", *stats, want)
	}

	stats, err = GetDashboardStats(db, andi.ID, models.RoleStudent, today)
	if err != nil {
		t.Fatal(err)
	}
	want = models.DashboardStats{TotalCourses: 1, ActiveAssessments: 1, AverageGrade: 80, LearningProgress: 50}
	if *stats != want {
		t.Errorf("student stats = %+v, want %+v", *stats, want)
	}
}
