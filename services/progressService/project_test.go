package progressService

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModels "lms/models/course"
	progressModels "lms/models/progress"
)

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "0.00%", formatPercent(0, 0))
	assert.Equal(t, "0.00%", formatPercent(0, 3))
	assert.Equal(t, "50.00%", formatPercent(1, 2))
	assert.Equal(t, "66.67%", formatPercent(2, 3))
	assert.Equal(t, "100.00%", formatPercent(3, 3))
}

func TestCanAttempt(t *testing.T) {
	now := time.Now()
	fiveMinAgo := now.Add(-5 * time.Minute)
	elevenMinAgo := now.Add(-11 * time.Minute)

	assert.True(t, canAttempt(0, nil, now))
	assert.True(t, canAttempt(1, &fiveMinAgo, now), "below the attempt limit")
	assert.True(t, canAttempt(2, nil, now), "no recorded attempt time")
	assert.False(t, canAttempt(2, &fiveMinAgo, now), "inside the cooldown window")
	assert.True(t, canAttempt(2, &elevenMinAgo, now), "window has elapsed")
	assert.False(t, canAttempt(5, &fiveMinAgo, now))
}

func TestProjectCourse(t *testing.T) {
	now := time.Now()
	recent := now.Add(-2 * time.Minute)

	crs := courseModels.Course{Title: "Grain Quality 101"}
	crs.ID = 7

	cp := progressModels.CourseProgress{
		UserID:            1,
		CourseID:          7,
		Completed:         false,
		FinalQuizScore:    55,
		FinalQuizAttempts: 1,
		Modules: []progressModels.ModuleProgress{
			{
				ModuleID:        21,
				Completed:       true,
				QuizScore:       90,
				QuizAttempts:    1,
				QuizLastAttempt: &recent,
				Submodules: []progressModels.SubmoduleProgress{
					{SubmoduleID: 31, Completed: true},
					{SubmoduleID: 32, Completed: true},
				},
			},
			{
				ModuleID:        22,
				QuizAttempts:    2,
				QuizLastAttempt: &recent,
				Submodules: []progressModels.SubmoduleProgress{
					{SubmoduleID: 33, Completed: true},
					{SubmoduleID: 34},
					{SubmoduleID: 35},
				},
			},
		},
	}

	moduleTitles := map[uint]string{21: "Module A", 22: "Module B"}
	submoduleTitles := map[uint]string{31: "A1", 32: "A2", 33: "B1", 34: "B2", 35: "B3"}

	ov := projectCourse(&cp, &crs, moduleTitles, submoduleTitles, now)

	require.Equal(t, uint(7), ov.CourseID)
	require.Equal(t, "Grain Quality 101", ov.CourseName)
	require.Equal(t, 2, ov.TotalModules)
	require.Equal(t, 1, ov.CompletedModules)
	require.Equal(t, "50.00%", ov.Progress)
	require.Equal(t, 55, ov.FinalQuizData.Score)
	require.False(t, ov.FinalQuizData.Passed)

	require.Len(t, ov.Modules, 2)

	moduleA := ov.Modules[0]
	assert.Equal(t, "Module A", moduleA.ModuleTitle)
	assert.True(t, moduleA.Completed)
	assert.Equal(t, "100.00%", moduleA.ModuleProgress)
	assert.True(t, moduleA.CanTakeQuiz, "one attempt never blocks")

	moduleB := ov.Modules[1]
	assert.Equal(t, "Module B", moduleB.ModuleTitle)
	assert.Equal(t, 3, moduleB.TotalSubmodules)
	assert.Equal(t, 1, moduleB.CompletedSubmodules)
	assert.Equal(t, "33.33%", moduleB.ModuleProgress)
	assert.False(t, moduleB.CanTakeQuiz, "two recent attempts trigger the cooldown")
	assert.Equal(t, "B2", moduleB.Submodules[1].SubmoduleTitle)
}

func TestEnrolledCourses(t *testing.T) {
	db := setupDB(t)
	svc := New(db)
	cat := seedCatalog(t, db)
	userID := seedUser(t, db, "alice@example.com")
	require.NoError(t, svc.Enroll(userID, cat.courseID))

	_, err := svc.ToggleSubmodule(userID, cat.subA1)
	require.NoError(t, err)
	_, err = svc.ToggleSubmodule(userID, cat.subA2)
	require.NoError(t, err)

	list, err := svc.EnrolledCourses(userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, cat.courseID, list[0].Course.ID)
	assert.Equal(t, 1, list[0].CompletedModules)
	assert.Equal(t, 2, list[0].TotalModules)
	assert.Equal(t, "50.00%", list[0].Progress)
	assert.False(t, list[0].Completed)
}
