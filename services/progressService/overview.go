package progressService

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"lms/models"
	courseModels "lms/models/course"
	progressModels "lms/models/progress"
)

// EnrolledCourse is the compact per-course view returned alongside a
// user's enrollment list.
type EnrolledCourse struct {
	Course           courseModels.Course `json:"course"`
	Progress         string              `json:"progress"`
	Completed        bool                `json:"completed"`
	CompletedModules int                 `json:"completedModules"`
	TotalModules     int                 `json:"totalModules"`
}

// UserOverview reconciles the user's progress against the current catalog
// and returns the projected view. Reconciliation happens lazily here, on
// read: catalog growth only reaches a user's record the next time that
// user is fetched.
func (s *Service) UserOverview(userID uint) (*UserOverview, error) {
	var overview *UserOverview

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		ov, err := buildOverview(tx, &user, time.Now())
		if err != nil {
			return err
		}
		overview = ov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return overview, nil
}

// AllUserOverviews returns the projected progress of every user,
// reconciling each against the catalog along the way.
func (s *Service) AllUserOverviews() ([]UserOverview, error) {
	var overviews []UserOverview

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var users []models.User
		if err := tx.Where("is_deleted = ?", false).Order("id asc").Find(&users).Error; err != nil {
			return err
		}

		now := time.Now()
		overviews = make([]UserOverview, 0, len(users))
		for i := range users {
			ov, err := buildOverview(tx, &users[i], now)
			if err != nil {
				return err
			}
			overviews = append(overviews, *ov)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return overviews, nil
}

// EnrolledCourses lists a user's courses with their catalog entry and a
// module-level completion percentage. No reconciliation on this path.
func (s *Service) EnrolledCourses(userID uint) ([]EnrolledCourse, error) {
	var user models.User
	if err := s.db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var snapshots []progressModels.CourseProgress
	if err := s.db.Preload("Modules").
		Where("user_id = ?", userID).Order("id asc").
		Find(&snapshots).Error; err != nil {
		return nil, err
	}

	enrolled := make([]EnrolledCourse, 0, len(snapshots))
	for _, cp := range snapshots {
		var crs courseModels.Course
		if err := s.db.Where("id = ? AND is_deleted = ?", cp.CourseID, false).First(&crs).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Course removed from the catalog: filter out, keep the rows
				continue
			}
			return nil, err
		}

		completedModules := 0
		for _, mp := range cp.Modules {
			if mp.Completed {
				completedModules++
			}
		}

		enrolled = append(enrolled, EnrolledCourse{
			Course:           crs,
			Progress:         formatPercent(completedModules, len(cp.Modules)),
			Completed:        cp.Completed,
			CompletedModules: completedModules,
			TotalModules:     len(cp.Modules),
		})
	}

	return enrolled, nil
}

// buildOverview reconciles and projects every course snapshot of one user.
func buildOverview(tx *gorm.DB, user *models.User, at time.Time) (*UserOverview, error) {
	var snapshots []progressModels.CourseProgress
	if err := tx.Where("user_id = ?", user.ID).Order("id asc").Find(&snapshots).Error; err != nil {
		return nil, err
	}

	overview := &UserOverview{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Courses:  make([]CourseOverview, 0, len(snapshots)),
	}

	for i := range snapshots {
		cp := &snapshots[i]

		var crs courseModels.Course
		if err := tx.Where("id = ? AND is_deleted = ?", cp.CourseID, false).First(&crs).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Dangling course reference: filtered from output, not deleted
				continue
			}
			return nil, err
		}

		modules, subsByModule, err := catalogModules(tx, cp.CourseID)
		if err != nil {
			return nil, err
		}

		if _, err := reconcileCourse(tx, cp, modules, subsByModule); err != nil {
			return nil, err
		}

		// Reload the snapshot tree in insertion order
		if err := tx.Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).Preload("Modules.Submodules", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).First(cp, cp.ID).Error; err != nil {
			return nil, err
		}

		moduleTitles := make(map[uint]string, len(modules))
		for _, m := range modules {
			moduleTitles[m.ID] = m.Title
		}
		submoduleTitles := make(map[uint]string)
		for _, subs := range subsByModule {
			for _, sub := range subs {
				submoduleTitles[sub.ID] = sub.Title
			}
		}

		overview.Courses = append(overview.Courses, projectCourse(cp, &crs, moduleTitles, submoduleTitles, at))
	}

	return overview, nil
}
