package progressService

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	courseModels "lms/models/course"
	progressModels "lms/models/progress"
)

const (
	// PassThreshold is the minimum quiz score that marks a module (or the
	// final quiz) as passed.
	PassThreshold = 80

	// QuizCooldown applies after MaxFreeAttempts quiz submissions. The same
	// window gates submissions and the projected canTakeQuiz flag.
	QuizCooldown = 10 * time.Minute

	// MaxFreeAttempts is how many attempts are allowed before the cooldown
	// window is enforced.
	MaxFreeAttempts = 2
)

// Sentinel errors, mapped to HTTP statuses by the controllers.
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrCourseNotFound         = errors.New("course not found")
	ErrModuleNotFound         = errors.New("parent module not found")
	ErrSubmoduleNotFound      = errors.New("submodule not found")
	ErrNotEnrolled            = errors.New("user is not enrolled in this course")
	ErrCourseNotInProgress    = errors.New("course not found in user progress")
	ErrModuleNotInProgress    = errors.New("module not found in course progress")
	ErrSubmoduleNotInProgress = errors.New("submodule not found in module progress")
	ErrRateLimited            = errors.New("maximum attempts reached")
	ErrScoreBelowThreshold    = errors.New("quiz score below passing threshold")
)

// Service owns all reads and writes of user progress state. The database
// handle is injected; mutations run inside a transaction that locks the
// user's CourseProgress row, so concurrent read-modify-write cycles on the
// same user/course serialize instead of losing updates.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// lockForUpdate adds a row lock to the query where the dialect supports it.
// sqlite has no FOR UPDATE; its writers serialize on the database lock.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// lockCourseProgress fetches and locks the user's progress row for one
// course. notFound is returned when the row is absent, so callers surface
// the path-appropriate error.
func lockCourseProgress(tx *gorm.DB, userID, courseID uint, notFound error) (*progressModels.CourseProgress, error) {
	var cp progressModels.CourseProgress
	err := lockForUpdate(tx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&cp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// catalogModules loads a course's current module list in display order,
// with the submodules of each module grouped by module ID.
func catalogModules(tx *gorm.DB, courseID uint) ([]courseModels.Module, map[uint][]courseModels.Submodule, error) {
	var modules []courseModels.Module
	if err := tx.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc, id asc").
		Find(&modules).Error; err != nil {
		return nil, nil, err
	}

	subsByModule := make(map[uint][]courseModels.Submodule, len(modules))
	if len(modules) == 0 {
		return modules, subsByModule, nil
	}

	moduleIDs := make([]uint, len(modules))
	for i, m := range modules {
		moduleIDs[i] = m.ID
	}

	var submodules []courseModels.Submodule
	if err := tx.Where("module_id IN ? AND is_deleted = ?", moduleIDs, false).
		Order("order_index asc, id asc").
		Find(&submodules).Error; err != nil {
		return nil, nil, err
	}

	for _, s := range submodules {
		subsByModule[s.ModuleID] = append(subsByModule[s.ModuleID], s)
	}

	return modules, subsByModule, nil
}

// canAttempt reports whether a quiz submission is allowed given the stored
// attempt state. Attempts below MaxFreeAttempts are always allowed; after
// that the cooldown window applies.
func canAttempt(attempts int, lastAttempt *time.Time, at time.Time) bool {
	if attempts >= MaxFreeAttempts && lastAttempt != nil && at.Sub(*lastAttempt) < QuizCooldown {
		return false
	}
	return true
}
