package model

import "gorm.io/datatypes"

type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// swagger:model Quiz
type Quiz struct {
	BaseModel
	CourseID  uint                            `gorm:"not null;uniqueIndex:idx_quiz_course_lesson" json:"courseId"`
	LessonID  uint                            `gorm:"not null;uniqueIndex:idx_quiz_course_lesson" json:"lessonId"`
	Questions datatypes.JSONSlice[QuizQuestion] `json:"questions"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizResult is computed on submit and never stored.
type QuizResult struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
	Score   int `json:"score"`
}
