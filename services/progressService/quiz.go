package progressService

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"lms/models"
	progressModels "lms/models/progress"
)

// ModuleQuizResult is the state after a module quiz submission.
type ModuleQuizResult struct {
	Score     int  `json:"score"`
	Attempts  int  `json:"attempts"`
	Completed bool `json:"completed"`
}

// FinalQuizResult is the state after a final quiz submission.
type FinalQuizResult struct {
	Score     int  `json:"score"`
	Attempts  int  `json:"attempts"`
	Passed    bool `json:"passed"`
	Completed bool `json:"completed"`
}

// SubmitModuleQuiz records a quiz attempt for a module. After
// MaxFreeAttempts, submissions inside the cooldown window are rejected
// without consuming an attempt or touching the stored score. A score of
// PassThreshold or above marks the module complete; submodule flags are
// left alone, so quiz completion is an independent signal from the
// all-submodules-done path.
func (s *Service) SubmitModuleQuiz(userID, courseID, moduleID uint, score int) (*ModuleQuizResult, error) {
	var result *ModuleQuizResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		cp, err := lockCourseProgress(tx, userID, courseID, ErrCourseNotInProgress)
		if err != nil {
			return err
		}

		var mp progressModels.ModuleProgress
		if err := tx.Where("course_progress_id = ? AND module_id = ?", cp.ID, moduleID).First(&mp).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrModuleNotInProgress
			}
			return err
		}

		now := time.Now()
		if !canAttempt(mp.QuizAttempts, mp.QuizLastAttempt, now) {
			return ErrRateLimited
		}

		mp.QuizScore = score
		mp.QuizAttempts++
		mp.QuizLastAttempt = &now

		if score >= PassThreshold {
			mp.Completed = true
		}

		if err := tx.Save(&mp).Error; err != nil {
			return err
		}

		result = &ModuleQuizResult{Score: mp.QuizScore, Attempts: mp.QuizAttempts, Completed: mp.Completed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SubmitFinalQuiz records an attempt at the course-level final quiz, with
// the same attempt/cooldown gate as module quizzes. A passing score sets
// passed and marks the whole course complete.
func (s *Service) SubmitFinalQuiz(userID, courseID uint, score int) (*FinalQuizResult, error) {
	var result *FinalQuizResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		cp, err := lockCourseProgress(tx, userID, courseID, ErrCourseNotInProgress)
		if err != nil {
			return err
		}

		now := time.Now()
		if !canAttempt(cp.FinalQuizAttempts, cp.FinalQuizLastAttempt, now) {
			return ErrRateLimited
		}

		cp.FinalQuizScore = score
		cp.FinalQuizAttempts++
		cp.FinalQuizLastAttempt = &now

		if score >= PassThreshold {
			cp.FinalQuizPassed = true
			cp.Completed = true
		}

		if err := tx.Save(cp).Error; err != nil {
			return err
		}

		result = &FinalQuizResult{
			Score:     cp.FinalQuizScore,
			Attempts:  cp.FinalQuizAttempts,
			Passed:    cp.FinalQuizPassed,
			Completed: cp.Completed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CompleteModule marks a module complete, but only when a quiz score of
// PassThreshold or above is already stored for it. Completing the last
// module also completes the course.
func (s *Service) CompleteModule(userID, courseID, moduleID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		cp, err := lockCourseProgress(tx, userID, courseID, ErrCourseNotInProgress)
		if err != nil {
			return err
		}

		var mp progressModels.ModuleProgress
		if err := tx.Where("course_progress_id = ? AND module_id = ?", cp.ID, moduleID).First(&mp).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrModuleNotInProgress
			}
			return err
		}

		if mp.QuizScore < PassThreshold {
			return ErrScoreBelowThreshold
		}

		mp.Completed = true
		if err := tx.Save(&mp).Error; err != nil {
			return err
		}

		var moduleRows []progressModels.ModuleProgress
		if err := tx.Where("course_progress_id = ?", cp.ID).Find(&moduleRows).Error; err != nil {
			return err
		}

		allModulesCompleted := true
		for _, row := range moduleRows {
			if !row.Completed {
				allModulesCompleted = false
				break
			}
		}

		if allModulesCompleted {
			cp.Completed = true
			if err := tx.Save(cp).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
