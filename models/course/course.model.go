package course

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	Price        float64 `json:"price" gorm:"default:0"`
	InstructorID *uint   `json:"instructor_id" gorm:"index"`
	Category     string  `json:"category"`
	Level        string  `json:"level" gorm:"default:'Beginner'"` // Beginner, Intermediate, Advanced
	IsDeleted    bool    `gorm:"default:false" json:"-"`
}
