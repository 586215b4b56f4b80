package model

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionReviewed  SubmissionStatus = "reviewed"
)

func (s SubmissionStatus) Valid() bool {
	return s == SubmissionSubmitted || s == SubmissionReviewed
}

// swagger:model AssignmentSubmission
type AssignmentSubmission struct {
	BaseModel
	StudentID  uint             `gorm:"not null;uniqueIndex:idx_submission_student_course_lesson" json:"studentId"`
	CourseID   uint             `gorm:"not null;uniqueIndex:idx_submission_student_course_lesson;index" json:"courseId"`
	LessonID   uint             `gorm:"not null;uniqueIndex:idx_submission_student_course_lesson" json:"lessonId"`
	BatchID    *uint            `gorm:"index" json:"batchId,omitempty"`
	AnswerText string           `gorm:"type:text" json:"answerText"`
	DriveLink  string           `gorm:"size:1024" json:"driveLink"`
	Score      *float64         `json:"score"`
	Feedback   string           `gorm:"type:text" json:"feedback"`
	Status     SubmissionStatus `gorm:"size:20;not null;index" json:"status"`
	Student    *User            `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Course     *Course          `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (AssignmentSubmission) TableName() string {
	return "assignment_submissions"
}
