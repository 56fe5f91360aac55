package progress

import (
	"time"

	"gorm.io/gorm"
)

// CourseProgress is a user's progress snapshot for one enrolled course.
// Module and submodule references are weak: they point at the catalog by
// ID and are re-resolved against current catalog content on each read.
type CourseProgress struct {
	gorm.Model
	UserID    uint `json:"user_id" gorm:"index:idx_progress_user_course,unique;not null"`
	CourseID  uint `json:"course_id" gorm:"index:idx_progress_user_course,unique;not null"`
	Completed bool `json:"completed" gorm:"default:false"`

	// Final quiz attempt state
	FinalQuizScore       int        `json:"final_quiz_score" gorm:"default:0"`
	FinalQuizAttempts    int        `json:"final_quiz_attempts" gorm:"default:0"`
	FinalQuizLastAttempt *time.Time `json:"final_quiz_last_attempt"`
	FinalQuizPassed      bool       `json:"final_quiz_passed" gorm:"default:false"`

	Modules []ModuleProgress `json:"modules" gorm:"foreignKey:CourseProgressID"`
}

// ModuleProgress tracks one module inside a CourseProgress.
// Completed equals the AND of its submodules, except that a module quiz
// score of 80+ also sets it independently.
type ModuleProgress struct {
	gorm.Model
	CourseProgressID uint `json:"-" gorm:"index;not null"`
	ModuleID         uint `json:"module_id" gorm:"index;not null"`
	Completed        bool `json:"completed" gorm:"default:false"`

	// Module quiz attempt state
	QuizScore       int        `json:"quiz_score" gorm:"default:0"`
	QuizAttempts    int        `json:"quiz_attempts" gorm:"default:0"`
	QuizLastAttempt *time.Time `json:"quiz_last_attempt"`

	Submodules []SubmoduleProgress `json:"submodules" gorm:"foreignKey:ModuleProgressID"`
}

// SubmoduleProgress is the atomic unit of progress, toggled directly and
// never derived.
type SubmoduleProgress struct {
	gorm.Model
	ModuleProgressID uint `json:"-" gorm:"index;not null"`
	SubmoduleID      uint `json:"submodule_id" gorm:"index;not null"`
	Completed        bool `json:"completed" gorm:"default:false"`
}
