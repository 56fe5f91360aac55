package progressService

import (
	"gorm.io/gorm"

	courseModels "lms/models/course"
	progressModels "lms/models/progress"
)

// reconcileCourse backfills progress rows for any module or submodule the
// catalog has gained since the snapshot was taken. Append-only: progress
// rows are never removed when the catalog shrinks, so completed work
// survives. Returns true when anything was added; callers can skip
// reloading otherwise.
func reconcileCourse(tx *gorm.DB, cp *progressModels.CourseProgress, modules []courseModels.Module, subsByModule map[uint][]courseModels.Submodule) (bool, error) {
	var moduleRows []progressModels.ModuleProgress
	if err := tx.Where("course_progress_id = ?", cp.ID).Find(&moduleRows).Error; err != nil {
		return false, err
	}

	byModuleID := make(map[uint]progressModels.ModuleProgress, len(moduleRows))
	for _, row := range moduleRows {
		byModuleID[row.ModuleID] = row
	}

	dirty := false
	for _, module := range modules {
		mp, ok := byModuleID[module.ID]
		if !ok {
			// Module added to the catalog after enrollment
			newMP := progressModels.ModuleProgress{
				CourseProgressID: cp.ID,
				ModuleID:         module.ID,
			}
			for _, sub := range subsByModule[module.ID] {
				newMP.Submodules = append(newMP.Submodules, progressModels.SubmoduleProgress{SubmoduleID: sub.ID})
			}
			if err := tx.Create(&newMP).Error; err != nil {
				return dirty, err
			}
			dirty = true
			continue
		}

		var subRows []progressModels.SubmoduleProgress
		if err := tx.Where("module_progress_id = ?", mp.ID).Find(&subRows).Error; err != nil {
			return dirty, err
		}

		known := make(map[uint]bool, len(subRows))
		for _, row := range subRows {
			known[row.SubmoduleID] = true
		}

		for _, sub := range subsByModule[module.ID] {
			if known[sub.ID] {
				continue
			}
			newSP := progressModels.SubmoduleProgress{
				ModuleProgressID: mp.ID,
				SubmoduleID:      sub.ID,
			}
			if err := tx.Create(&newSP).Error; err != nil {
				return dirty, err
			}
			dirty = true
		}
	}

	// A snapshot completed only because it had no modules loses that status
	// once the catalog gains some
	if dirty && len(moduleRows) == 0 && cp.Completed && !cp.FinalQuizPassed {
		if err := tx.Model(cp).Update("completed", false).Error; err != nil {
			return dirty, err
		}
		cp.Completed = false
	}

	return dirty, nil
}
