package progressService

import (
	"testing"

	"github.com/stretchr/testify/require"

	courseModels "lms/models/course"
)

func TestToggleSubmodulePropagation(t *testing.T) {
	db := setupDB(t)
	svc := New(db)
	cat := seedCatalog(t, db)
	userID := seedUser(t, db, "alice@example.com")
	require.NoError(t, svc.Enroll(userID, cat.courseID))

	// Complete both of module A's submodules: A completes, course does not
	res, err := svc.ToggleSubmodule(userID, cat.subA1)
	require.NoError(t, err)
	require.True(t, res.Completed)
	require.False(t, res.ModuleCompleted)
	require.False(t, res.CourseCompleted)
	requireHierarchyConsistent(t, loadSnapshot(t, db, userID, cat.courseID))

	res, err = svc.ToggleSubmodule(userID, cat.subA2)
	require.NoError(t, err)
	require.True(t, res.ModuleCompleted)
	require.False(t, res.CourseCompleted, "module B still incomplete")
	requireHierarchyConsistent(t, loadSnapshot(t, db, userID, cat.courseID))

	// Completing B's only submodule completes the course
	res, err = svc.ToggleSubmodule(userID, cat.subB1)
	require.NoError(t, err)
	require.True(t, res.ModuleCompleted)
	require.True(t, res.CourseCompleted)
	requireHierarchyConsistent(t, loadSnapshot(t, db, userID, cat.courseID))

	// Untoggling one of A's submodules invalidates module and course
	res, err = svc.ToggleSubmodule(userID, cat.subA1)
	require.NoError(t, err)
	require.False(t, res.Completed)
	require.False(t, res.ModuleCompleted)
	require.False(t, res.CourseCompleted)
	requireHierarchyConsistent(t, loadSnapshot(t, db, userID, cat.courseID))

	require.Equal(t, cat.courseID, res.CourseID)
	require.Equal(t, cat.moduleA, res.ModuleID)
	require.Equal(t, cat.subA1, res.SubmoduleID)
}

func TestToggleForcesStaleCompletionDown(t *testing.T) {
	db := setupDB(t)
	svc := New(db)
	cat := seedCatalog(t, db)
	userID := seedUser(t, db, "alice@example.com")
	require.NoError(t, svc.Enroll(userID, cat.courseID))

	// A quiz pass marks module A complete without its submodules
	_, err := svc.SubmitModuleQuiz(userID, cat.courseID, cat.moduleA, 90)
	require.NoError(t, err)

	// Toggling a submodule off anywhere forces module and course incomplete
	_, err = svc.ToggleSubmodule(userID, cat.subA1)
	require.NoError(t, err)
	res, err := svc.ToggleSubmodule(userID, cat.subA1)
	require.NoError(t, err)
	require.False(t, res.ModuleCompleted)
	require.False(t, res.CourseCompleted)
}

func TestToggleUnknownLinks(t *testing.T) {
	db := setupDB(t)
	svc := New(db)
	cat := seedCatalog(t, db)
	userID := seedUser(t, db, "alice@example.com")

	_, err := svc.ToggleSubmodule(userID, 9999)
	require.ErrorIs(t, err, ErrSubmoduleNotFound)

	// Enrollment is required: no implicit reconciliation on this path
	_, err = svc.ToggleSubmodule(userID, cat.subA1)
	require.ErrorIs(t, err, ErrNotEnrolled)

	_, err = svc.ToggleSubmodule(9999, cat.subA1)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestToggleSubmoduleAddedAfterEnrollment(t *testing.T) {
	db := setupDB(t)
	svc := New(db)
	cat := seedCatalog(t, db)
	userID := seedUser(t, db, "alice@example.com")
	require.NoError(t, svc.Enroll(userID, cat.courseID))

	// Catalog grows after enrollment; the toggle path does not reconcile
	newSub := courseModels.Submodule{ModuleID: cat.moduleA, Title: "A3", OrderIndex: 3}
	require.NoError(t, db.Create(&newSub).Error)

	_, err := svc.ToggleSubmodule(userID, newSub.ID)
	require.ErrorIs(t, err, ErrSubmoduleNotInProgress)

	// A read reconciles, after which the toggle succeeds
	_, err = svc.UserOverview(userID)
	require.NoError(t, err)

	res, err := svc.ToggleSubmodule(userID, newSub.ID)
	require.NoError(t, err)
	require.True(t, res.Completed)
}
