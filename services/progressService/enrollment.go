package progressService

import (
	"errors"

	"gorm.io/gorm"

	"lms/models"
	courseModels "lms/models/course"
	progressModels "lms/models/progress"
)

// Enroll links a user to a course and seeds their progress snapshot from
// the course's current module/submodule list. Idempotent: calling it again
// neither duplicates the enrollment nor resets existing progress. The
// enrollment row and the snapshot are written in one transaction.
func (s *Service) Enroll(userID, courseID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var crs courseModels.Course
		if err := tx.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		// Add to the course's enrolled-student set if not already present
		var enrollment courseModels.Enrollment
		err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			enrollment = courseModels.Enrollment{UserID: userID, CourseID: courseID, Status: "ENROLLED"}
			if err := tx.Create(&enrollment).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		// Existing snapshot means the user was already enrolled: no-op
		var existing progressModels.CourseProgress
		err = tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		modules, subsByModule, err := catalogModules(tx, courseID)
		if err != nil {
			return err
		}

		snapshot := progressModels.CourseProgress{UserID: userID, CourseID: courseID}
		for _, m := range modules {
			mp := progressModels.ModuleProgress{ModuleID: m.ID}
			for _, sub := range subsByModule[m.ID] {
				mp.Submodules = append(mp.Submodules, progressModels.SubmoduleProgress{SubmoduleID: sub.ID})
			}
			snapshot.Modules = append(snapshot.Modules, mp)
		}

		// A course with no modules has nothing left to do
		snapshot.Completed = len(snapshot.Modules) == 0

		return tx.Create(&snapshot).Error
	})
}

// Unenroll removes the user from the course's enrolled-student set and
// deletes their progress snapshot. Progress is not archived.
func (s *Service) Unenroll(userID, courseID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var crs courseModels.Course
		if err := tx.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		if err := tx.Unscoped().
			Where("user_id = ? AND course_id = ?", userID, courseID).
			Delete(&courseModels.Enrollment{}).Error; err != nil {
			return err
		}

		var cp progressModels.CourseProgress
		err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&cp).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var moduleProgressIDs []uint
		if err := tx.Model(&progressModels.ModuleProgress{}).
			Where("course_progress_id = ?", cp.ID).
			Pluck("id", &moduleProgressIDs).Error; err != nil {
			return err
		}

		if len(moduleProgressIDs) > 0 {
			if err := tx.Unscoped().
				Where("module_progress_id IN ?", moduleProgressIDs).
				Delete(&progressModels.SubmoduleProgress{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().
				Where("course_progress_id = ?", cp.ID).
				Delete(&progressModels.ModuleProgress{}).Error; err != nil {
				return err
			}
		}

		return tx.Unscoped().Delete(&cp).Error
	})
}

// IsEnrolled reports whether the user has a progress snapshot for the course.
func (s *Service) IsEnrolled(userID, courseID uint) (bool, error) {
	var user models.User
	if err := s.db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}

	var count int64
	if err := s.db.Model(&progressModels.CourseProgress{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
