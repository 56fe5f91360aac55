package course

import "gorm.io/gorm"

// Submodule represents a lesson unit within a module
type Submodule struct {
	gorm.Model
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Submodule order in module
	IsDeleted   bool   `gorm:"default:false" json:"-"`
}
