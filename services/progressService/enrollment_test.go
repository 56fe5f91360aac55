package progressService

import (
	"testing"

	"github.com/stretchr/testify/require"

	courseModels "lms/models/course"
	progressModels "lms/models/progress"
)

func TestEnrollSeedsSnapshot(t *testing.T) {
	db := setupDB(t)
	svc := New(db)
	cat := seedCatalog(t, db)
	userID := seedUser(t, db, "alice@example.com")

	require.NoError(t, svc.Enroll(userID, cat.courseID))

	cp := loadSnapshot(t, db, userID, cat.courseID)
	require.False(t, cp.Completed)
	require.Len(t, cp.Modules, 2)

	require.Equal(t, cat.moduleA, cp.Modules[0].ModuleID)
	require.Len(t, cp.Modules[0].Submodules, 2)
	require.Equal(t, cat.moduleB, cp.Modules[1].ModuleID)
	require.Len(t, cp.Modules[1].Submodules, 1)

	for _, mp := range cp.Modules {
		require.False(t, mp.Completed)
		require.Zero(t, mp.QuizScore)
		require.Zero(t, mp.QuizAttempts)
		require.Nil(t, mp.QuizLastAttempt)
		for _, sp := range mp.Submodules {
			require.False(t, sp.Completed)
		}
	}

	require.Zero(t, cp.FinalQuizScore)
	require.Zero(t, cp.FinalQuizAttempts)
	require.Nil(t, cp.FinalQuizLastAttempt)
	require.False(t, cp.FinalQuizPassed)

	var enrollments int64
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, cat.courseID).
		Count(&enrollments).Error)
	require.EqualValues(t, 1, enrollments)
}

func TestEnrollIsIdempotent(t *testing.T) {
	db := setupDB(t)
	svc := New(db)
	cat := seedCatalog(t, db)
	userID := seedUser(t, db, "alice@example.com")

	require.NoError(t, svc.Enroll(userID, cat.courseID))

	// Make some progress, then enroll again
	_, err := svc.ToggleSubmodule(userID, cat.subA1)
	require.NoError(t, err)
	require.NoError(t, svc.Enroll(userID, cat.courseID))

	cp := loadSnapshot(t, db, userID, cat.courseID)
	require.Len(t, cp.Modules, 2)
	require.True(t, cp.Modules[0].Submodules[0].Completed, "re-enrolling must not reset progress")

	var enrollments int64
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, cat.courseID).
		Count(&enrollments).Error)
	require.EqualValues(t, 1, enrollments)
}

func TestEnrollMissingUserOrCourse(t *testing.T) {
	db := setupDB(t)
	svc := New(db)
	cat := seedCatalog(t, db)
	userID := seedUser(t, db, "alice@example.com")

	require.ErrorIs(t, svc.Enroll(9999, cat.courseID), ErrUserNotFound)
	require.ErrorIs(t, svc.Enroll(userID, 9999), ErrCourseNotFound)
}

func TestUnenrollDiscardsProgress(t *testing.T) {
	db := setupDB(t)
	svc := New(db)
	cat := seedCatalog(t, db)
	userID := seedUser(t, db, "alice@example.com")

	require.NoError(t, svc.Enroll(userID, cat.courseID))
	_, err := svc.ToggleSubmodule(userID, cat.subA1)
	require.NoError(t, err)

	require.NoError(t, svc.Unenroll(userID, cat.courseID))

	enrolled, err := svc.IsEnrolled(userID, cat.courseID)
	require.NoError(t, err)
	require.False(t, enrolled)

	var progressRows int64
	require.NoError(t, db.Model(&progressModels.CourseProgress{}).
		Where("user_id = ?", userID).Count(&progressRows).Error)
	require.Zero(t, progressRows)
	require.NoError(t, db.Model(&progressModels.SubmoduleProgress{}).Count(&progressRows).Error)
	require.Zero(t, progressRows)

	// Re-enrolling starts from a clean snapshot
	require.NoError(t, svc.Enroll(userID, cat.courseID))
	cp := loadSnapshot(t, db, userID, cat.courseID)
	for _, mp := range cp.Modules {
		for _, sp := range mp.Submodules {
			require.False(t, sp.Completed)
		}
	}
}

func TestEnrollCourseWithoutModules(t *testing.T) {
	db := setupDB(t)
	svc := New(db)
	userID := seedUser(t, db, "alice@example.com")

	crs := courseModels.Course{Title: "Placeholder Course"}
	require.NoError(t, db.Create(&crs).Error)

	require.NoError(t, svc.Enroll(userID, crs.ID))

	// Nothing to do means done
	cp := loadSnapshot(t, db, userID, crs.ID)
	require.True(t, cp.Completed)
	require.Empty(t, cp.Modules)

	ov, err := svc.UserOverview(userID)
	require.NoError(t, err)
	require.Len(t, ov.Courses, 1)
	require.True(t, ov.Courses[0].Completed)
	require.Equal(t, "0.00%", ov.Courses[0].Progress)

	// The first real module reopens the course
	module := courseModels.Module{CourseID: crs.ID, Title: "Module A", OrderIndex: 1}
	require.NoError(t, db.Create(&module).Error)

	ov, err = svc.UserOverview(userID)
	require.NoError(t, err)
	require.False(t, ov.Courses[0].Completed)
	require.Len(t, ov.Courses[0].Modules, 1)

	cp = loadSnapshot(t, db, userID, crs.ID)
	require.False(t, cp.Completed)
}

func TestIsEnrolled(t *testing.T) {
	db := setupDB(t)
	svc := New(db)
	cat := seedCatalog(t, db)
	userID := seedUser(t, db, "alice@example.com")

	enrolled, err := svc.IsEnrolled(userID, cat.courseID)
	require.NoError(t, err)
	require.False(t, enrolled)

	require.NoError(t, svc.Enroll(userID, cat.courseID))

	enrolled, err = svc.IsEnrolled(userID, cat.courseID)
	require.NoError(t, err)
	require.True(t, enrolled)

	_, err = svc.IsEnrolled(9999, cat.courseID)
	require.ErrorIs(t, err, ErrUserNotFound)
}
