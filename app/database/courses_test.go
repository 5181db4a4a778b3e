package database

import (
	"errors"
	"testing"
	"time"

	"campus-lms/app/models"
)

func TestCourseVisibilityScenario(t *testing.T) {
	db := openTestDB(t)
	lecturer := mustCreateUser(t, db, "lecturer@campus.ac.id", models.RoleLecturer)
	other := mustCreateUser(t, db, "other@campus.ac.id", models.RoleLecturer)
	student := mustCreateUser(t, db, "student@campus.ac.id", models.RoleStudent)
	admin := mustCreateUser(t, db, "admin@campus.ac.id", models.RoleAdmin)

	course := mustCreateCourse(t, db, "Pemrograman Web", lecturer)
	mustCreateCourse(t, db, "Basis Data", other)

	if _, err := EnrollUser(db, student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	got, err := GetCoursesForUser(db, student.ID, models.RoleStudent)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != course.ID {
		t.Fatalf("student courses = %v, want exactly [%s]", got, course.ID)
	}
	if len(got[0].Enrollments) != 1 || got[0].Enrollments[0].Progress != 0 {
		t.Errorf("student listing enrollments = %+v", got[0].Enrollments)
	}
	if got[0].Instructor.ID != lecturer.ID {
		t.Errorf("instructor = %s, want %s", got[0].Instructor.ID, lecturer.ID)
	}

	owned, err := GetCoursesForUser(db, lecturer.ID, models.RoleLecturer)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range owned {
		if c.InstructorID != lecturer.ID {
			t.Errorf("lecturer sees course %s owned by %s", c.ID, c.InstructorID)
		}
	}
	if len(owned) != 1 || owned[0].EnrollmentCount == nil || *owned[0].EnrollmentCount != 1 {
		t.Errorf("lecturer listing = %+v", owned)
	}

	stranger := mustCreateUser(t, db, "stranger@campus.ac.id", models.RoleLecturer)
	none, err := GetCoursesForUser(db, stranger.ID, models.RoleLecturer)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("unrelated lecturer sees %d courses, want 0", len(none))
	}

	all, err := GetCoursesForUser(db, admin.ID, models.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("admin sees %d courses, want 2", len(all))
	}
}

func TestEnrollTwiceConflicts(t *testing.T) {
	db := openTestDB(t)
	lecturer := mustCreateUser(t, db, "l@campus.ac.id", models.RoleLecturer)
	student := mustCreateUser(t, db, "s@campus.ac.id", models.RoleStudent)
	course := mustCreateCourse(t, db, "Algoritma", lecturer)

	if _, err := EnrollUser(db, student.ID, course.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := EnrollUser(db, student.ID, course.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("second enroll err = %v, want ErrConflict", err)
	}

	e, err := UpdateEnrollmentProgress(db, student.ID, course.ID, 42.5)
	if err != nil {
		t.Fatal(err)
	}
	if e.Progress != 42.5 {
		t.Errorf("progress = %v, want 42.5", e.Progress)
	}

	list, err := GetCourseEnrollments(db, course.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].User == nil || list[0].User.ID != student.ID {
		t.Errorf("enrollments = %+v", list)
	}
}

func TestUpdateCoursePatch(t *testing.T) {
	db := openTestDB(t)
	lecturer := mustCreateUser(t, db, "l@campus.ac.id", models.RoleLecturer)

	key := "rahasia"
	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	course, err := CreateCourse(db, models.CourseInput{
		Title:       "Basis Data",
		Description: "Relational *modelling*",
		EnrollKey:   &key,
		StartDate:   &start,
	}, lecturer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !course.RequiresKey || course.StartDate == nil || !course.StartDate.Equal(start) {
		t.Fatalf("created course = %+v", course)
	}

	title := "Basis Data Lanjut"
	empty := ""
	updated, err := UpdateCourse(db, course.ID, models.CoursePatch{Title: &title, EnrollKey: &empty})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != title {
		t.Errorf("title = %q", updated.Title)
	}
	if updated.Description != "Relational *modelling*" {
		t.Errorf("untouched description changed to %q", updated.Description)
	}
	if updated.RequiresKey || updated.EnrollKey != nil {
		t.Error("empty enroll key should clear it")
	}

	if _, err := UpdateCourse(db, "missing", models.CoursePatch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing err = %v, want ErrNotFound", err)
	}
}

func TestDeleteCourseCascades(t *testing.T) {
	db := openTestDB(t)
	lecturer := mustCreateUser(t, db, "l@campus.ac.id", models.RoleLecturer)
	student := mustCreateUser(t, db, "s@campus.ac.id", models.RoleStudent)
	course := mustCreateCourse(t, db, "Jaringan", lecturer)
	keep := mustCreateCourse(t, db, "Sistem Operasi", lecturer)

	if _, err := EnrollUser(db, student.ID, course.ID); err != nil {
		t.Fatal(err)
	}
	if err := CreateMaterial(db, &models.Material{CourseID: course.ID, Title: "Slides"}); err != nil {
		t.Fatal(err)
	}
	a := &models.Assessment{CourseID: course.ID, Title: "UTS", DueDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	if err := CreateAssessment(db, a); err != nil {
		t.Fatal(err)
	}
	kept := &models.Assessment{CourseID: keep.ID, Title: "Quiz", Type: models.AssessmentQuiz, DueDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	if err := CreateAssessment(db, kept); err != nil {
		t.Fatal(err)
	}
	if _, err := UpsertGrade(db, student.ID, a, 80); err != nil {
		t.Fatal(err)
	}

	if err := DeleteCourse(db, course.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := GetCourseByID(db, course.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("course still present: %v", err)
	}
	if _, err := GetAssessmentByID(db, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("assessment survived course delete: %v", err)
	}
	if _, err := GetAssessmentByID(db, kept.ID); err != nil {
		t.Errorf("assessment of other course removed: %v", err)
	}
	if list, _ := GetAssessmentsByCourse(db, course.ID); len(list) != 0 {
		t.Errorf("listAssessments after delete = %d, want 0", len(list))
	}
	if grades, _ := GetGradesByStudent(db, student.ID); len(grades) != 0 {
		t.Errorf("grades survived course delete: %d", len(grades))
	}
	if m, _ := GetCourseMaterials(db, course.ID); len(m) != 0 {
		t.Errorf("materials survived course delete: %d", len(m))
	}
	if _, err := GetEnrollment(db, student.ID, course.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("enrollment survived course delete: %v", err)
	}

	if err := DeleteCourse(db, course.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestCourseDetail(t *testing.T) {
	db := openTestDB(t)
	lecturer := mustCreateUser(t, db, "l@campus.ac.id", models.RoleLecturer)
	course := mustCreateCourse(t, db, "Web", lecturer)

	for i, title := range []string{"Week 2", "Week 1"} {
		m := &models.Material{CourseID: course.ID, Title: title, SortOrder: 2 - i}
		if err := CreateMaterial(db, m); err != nil {
			t.Fatal(err)
		}
	}
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, typ := range []models.AssessmentType{models.AssessmentQuiz, models.AssessmentFinal} {
		if err := CreateAssessment(db, &models.Assessment{CourseID: course.ID, Title: string(typ), Type: typ, DueDate: due}); err != nil {
			t.Fatal(err)
		}
	}

	detail, err := GetCourseDetail(db, course.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Materials) != 2 || detail.Materials[0].Title != "Week 1" {
		t.Errorf("materials not ordered: %+v", detail.Materials)
	}
	if len(detail.Assessments) != 2 || len(detail.Quizzes) != 1 {
		t.Errorf("assessments = %d quizzes = %d", len(detail.Assessments), len(detail.Quizzes))
	}

	if _, err := GetCourseDetail(db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing detail err = %v", err)
	}
}
