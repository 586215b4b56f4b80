package model

import "time"

type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentCompleted EnrollmentStatus = "completed"
	// EnrollmentCancelled is reserved; no operation produces it.
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

const (
	MinProgress = 0
	MaxProgress = 100
)

// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID        uint             `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"userId"`
	CourseID      uint             `gorm:"not null;uniqueIndex:idx_enrollment_user_course;index" json:"courseId"`
	BatchID       *uint            `gorm:"index" json:"batchId,omitempty"`
	Status        EnrollmentStatus `gorm:"size:20;not null;index" json:"status"`
	Progress      float64          `gorm:"not null;default:0" json:"progress"`
	PaymentStatus PaymentStatus    `gorm:"size:20;not null" json:"paymentStatus"`
	TotalPrice    float64          `gorm:"not null;default:0" json:"totalPrice"`
	CompletedAt   *time.Time       `json:"completedAt,omitempty"`
	User          *User            `gorm:"foreignKey:UserID" json:"student,omitempty"`
	Course        *Course          `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// ApplyProgress sets progress and moves the enrollment to completed once
// it reaches MaxProgress. Completion is terminal.
func (e *Enrollment) ApplyProgress(progress float64, now time.Time) {
	e.Progress = progress
	if progress >= MaxProgress && e.Status != EnrollmentCompleted {
		e.Status = EnrollmentCompleted
		e.CompletedAt = &now
	}
}
