package progressService

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	progressModels "lms/models/progress"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A pooled second connection would see a different :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()

	user := models.User{
		Username:   "student",
		Email:      email,
		Password:   "hashed",
		Role:       "student",
		IsVerified: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

// catalog mirrors the reference scenario: course C with module A holding
// two submodules and module B holding one.
type catalog struct {
	courseID uint
	moduleA  uint
	moduleB  uint
	subA1    uint
	subA2    uint
	subB1    uint
}

func seedCatalog(t *testing.T, db *gorm.DB) catalog {
	t.Helper()

	crs := courseModels.Course{Title: "Grain Quality 101", Description: "intro", Image: "img.png", Price: 49}
	require.NoError(t, db.Create(&crs).Error)

	moduleA := courseModels.Module{CourseID: crs.ID, Title: "Module A", OrderIndex: 1}
	moduleB := courseModels.Module{CourseID: crs.ID, Title: "Module B", OrderIndex: 2}
	require.NoError(t, db.Create(&moduleA).Error)
	require.NoError(t, db.Create(&moduleB).Error)

	subA1 := courseModels.Submodule{ModuleID: moduleA.ID, Title: "A1", OrderIndex: 1}
	subA2 := courseModels.Submodule{ModuleID: moduleA.ID, Title: "A2", OrderIndex: 2}
	subB1 := courseModels.Submodule{ModuleID: moduleB.ID, Title: "B1", OrderIndex: 1}
	require.NoError(t, db.Create(&subA1).Error)
	require.NoError(t, db.Create(&subA2).Error)
	require.NoError(t, db.Create(&subB1).Error)

	return catalog{
		courseID: crs.ID,
		moduleA:  moduleA.ID,
		moduleB:  moduleB.ID,
		subA1:    subA1.ID,
		subA2:    subA2.ID,
		subB1:    subB1.ID,
	}
}

func loadSnapshot(t *testing.T, db *gorm.DB, userID, courseID uint) progressModels.CourseProgress {
	t.Helper()

	var cp progressModels.CourseProgress
	err := db.Preload("Modules", func(db *gorm.DB) *gorm.DB {
		return db.Order("id asc")
	}).Preload("Modules.Submodules", func(db *gorm.DB) *gorm.DB {
		return db.Order("id asc")
	}).Where("user_id = ? AND course_id = ?", userID, courseID).First(&cp).Error
	require.NoError(t, err)
	return cp
}

// requireHierarchyConsistent asserts that every module with submodules is
// completed exactly when all of them are, and likewise for the course over
// its modules. This is the invariant the toggle path maintains.
func requireHierarchyConsistent(t *testing.T, cp progressModels.CourseProgress) {
	t.Helper()

	allModules := true
	for _, mp := range cp.Modules {
		if len(mp.Submodules) > 0 {
			allSubs := true
			for _, sp := range mp.Submodules {
				if !sp.Completed {
					allSubs = false
					break
				}
			}
			require.Equalf(t, allSubs, mp.Completed, "module %d completion out of sync with submodules", mp.ModuleID)
		}
		if !mp.Completed {
			allModules = false
		}
	}
	if len(cp.Modules) > 0 {
		require.Equal(t, allModules, cp.Completed, "course completion out of sync with modules")
	}
}
