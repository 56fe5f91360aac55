package course

import "gorm.io/gorm"

// Enrollment links a user to a course. One row per (user, course) pair;
// the set of rows for a course is its enrolled-student list.
type Enrollment struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index:idx_enrollment_user_course,unique;not null"`
	CourseID  uint   `json:"course_id" gorm:"index:idx_enrollment_user_course,unique;not null"`
	Status    string `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, COMPLETED
	IsDeleted bool   `gorm:"default:false" json:"-"`
}
