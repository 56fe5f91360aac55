package progressService

import (
	"errors"

	"gorm.io/gorm"

	"lms/models"
	courseModels "lms/models/course"
	progressModels "lms/models/progress"
)

// ToggleResult reports the completion state at all three levels after a
// submodule toggle.
type ToggleResult struct {
	CourseID        uint `json:"courseId"`
	ModuleID        uint `json:"moduleId"`
	SubmoduleID     uint `json:"submoduleId"`
	Completed       bool `json:"completed"`
	ModuleCompleted bool `json:"moduleCompleted"`
	CourseCompleted bool `json:"courseCompleted"`
}

// ToggleSubmodule flips a submodule's completion flag for a user and
// propagates the change upward: the module completes when all of its
// submodules are complete, the course when all of its modules are. An
// incomplete flip forces the module and course incomplete regardless of
// their stored state. Missing catalog rows or progress entries fail with
// the matching sentinel; no reconciliation happens on this path.
func (s *Service) ToggleSubmodule(userID, submoduleID uint) (*ToggleResult, error) {
	var result *ToggleResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Resolve submodule -> module -> course in the catalog
		var submodule courseModels.Submodule
		if err := tx.Where("id = ? AND is_deleted = ?", submoduleID, false).First(&submodule).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmoduleNotFound
			}
			return err
		}

		var module courseModels.Module
		if err := tx.Where("id = ? AND is_deleted = ?", submodule.ModuleID, false).First(&module).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrModuleNotFound
			}
			return err
		}

		var crs courseModels.Course
		if err := tx.Where("id = ? AND is_deleted = ?", module.CourseID, false).First(&crs).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		var user models.User
		if err := tx.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		// Locate the progress triplet
		cp, err := lockCourseProgress(tx, userID, crs.ID, ErrNotEnrolled)
		if err != nil {
			return err
		}

		var mp progressModels.ModuleProgress
		if err := tx.Where("course_progress_id = ? AND module_id = ?", cp.ID, module.ID).First(&mp).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrModuleNotInProgress
			}
			return err
		}

		var sp progressModels.SubmoduleProgress
		if err := tx.Where("module_progress_id = ? AND submodule_id = ?", mp.ID, submodule.ID).First(&sp).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmoduleNotInProgress
			}
			return err
		}

		sp.Completed = !sp.Completed
		if err := tx.Save(&sp).Error; err != nil {
			return err
		}

		var siblings []progressModels.SubmoduleProgress
		if err := tx.Where("module_progress_id = ?", mp.ID).Find(&siblings).Error; err != nil {
			return err
		}

		allSubmodulesCompleted := true
		for _, sib := range siblings {
			if !sib.Completed {
				allSubmodulesCompleted = false
				break
			}
		}

		if allSubmodulesCompleted {
			mp.Completed = true

			var moduleRows []progressModels.ModuleProgress
			if err := tx.Where("course_progress_id = ?", cp.ID).Find(&moduleRows).Error; err != nil {
				return err
			}

			allModulesCompleted := true
			for _, row := range moduleRows {
				if row.ID == mp.ID {
					continue
				}
				if !row.Completed {
					allModulesCompleted = false
					break
				}
			}
			cp.Completed = allModulesCompleted
		} else {
			// Force incompleteness downward so an inconsistent stored state
			// can never leave the module or course marked complete
			mp.Completed = false
			cp.Completed = false
		}

		if err := tx.Save(&mp).Error; err != nil {
			return err
		}
		if err := tx.Save(cp).Error; err != nil {
			return err
		}

		result = &ToggleResult{
			CourseID:        crs.ID,
			ModuleID:        module.ID,
			SubmoduleID:     submodule.ID,
			Completed:       sp.Completed,
			ModuleCompleted: mp.Completed,
			CourseCompleted: cp.Completed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
