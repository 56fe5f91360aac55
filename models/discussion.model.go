package models

import "gorm.io/gorm"

// Discussion is a thread attached to a submodule of a course
type Discussion struct {
	gorm.Model
	UserID        uint   `json:"user_id" gorm:"index;not null"`
	CourseID      uint   `json:"course_id" gorm:"index;not null"`
	CourseName    string `json:"course_name"`
	ModuleID      uint   `json:"module_id" gorm:"index;not null"`
	ModuleName    string `json:"module_name"`
	SubmoduleID   uint   `json:"submodule_id" gorm:"index;not null"`
	SubmoduleName string `json:"submodule_name"`
	Title         string `json:"title"`
	Body          string `json:"body" gorm:"type:text"`
	IsDeleted     bool   `gorm:"default:false" json:"-"`
}
