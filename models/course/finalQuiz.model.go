package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FinalQuiz is the course-level exam. Questions are stored as a JSON
// document since they are only ever read and written as a whole bank.
type FinalQuiz struct {
	gorm.Model
	CourseID  uint           `json:"course_id" gorm:"uniqueIndex;not null"`
	Title     string         `json:"title"`
	Questions datatypes.JSON `json:"questions"`
	IsDeleted bool           `gorm:"default:false" json:"-"`
}

// FinalQuizQuestion is the shape of a single entry in FinalQuiz.Questions
type FinalQuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer []string `json:"correctAnswer"`
}
