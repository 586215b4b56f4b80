package service

import (
	"context"
	"coursemaster_backend/internal/config"
	"coursemaster_backend/internal/model"
	"coursemaster_backend/internal/repository"
	"coursemaster_backend/internal/util"
	"coursemaster_backend/pkg/monitoring"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	Cfg            *config.Config
	now            func() time.Time
}

func NewEnrollmentService(enrollmentRepo *repository.EnrollmentRepository, courseRepo *repository.CourseRepository, cfg *config.Config) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		Cfg:            cfg,
		now:            time.Now,
	}
}

// Enroll creates the enrollment for userID in courseID. Free courses are
// always paid. Priced courses are paid only when payment.auto_confirm is on,
// since no payment gateway is wired.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID uint, batchID *uint) (*model.Enrollment, error) {
	if courseID == 0 {
		return nil, util.Invalid("courseId is required")
	}

	course, err := s.CourseRepo.FindBasic(ctx, courseID)
	if err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}

	if batchID != nil {
		if _, err := s.CourseRepo.FindBatch(ctx, courseID, *batchID); err != nil {
			return nil, notFound(err, util.ErrBatchNotFound)
		}
	}

	if _, err := s.EnrollmentRepo.FindByUserAndCourse(ctx, userID, courseID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	payment := model.PaymentPending
	if course.Price == 0 || s.Cfg.Payment.AutoConfirm {
		payment = model.PaymentPaid
	}

	e := &model.Enrollment{
		UserID:        userID,
		CourseID:      courseID,
		BatchID:       batchID,
		Status:        model.EnrollmentEnrolled,
		Progress:      model.MinProgress,
		PaymentStatus: payment,
		TotalPrice:    course.Price,
	}
	if err := s.EnrollmentRepo.Create(ctx, e); err != nil {
		// lost a race against a concurrent enroll for the same pair
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyEnrolled
		}
		return nil, err
	}

	monitoring.EnrollmentsCreated.WithLabelValues(string(payment)).Inc()
	e.Course = course
	return e, nil
}

func (s *EnrollmentService) ownedBy(ctx context.Context, enrollmentID, userID uint) (*model.Enrollment, error) {
	e, err := s.EnrollmentRepo.FindByID(ctx, enrollmentID)
	if err != nil {
		return nil, notFound(err, util.ErrEnrollmentNotFound)
	}
	if e.UserID != userID {
		return nil, util.ErrEnrollmentNotFound
	}
	return e, nil
}

func (s *EnrollmentService) UpdateProgress(ctx context.Context, enrollmentID, userID uint, progress float64) (*model.Enrollment, error) {
	if progress < model.MinProgress || progress > model.MaxProgress {
		return nil, util.Invalid(fmt.Sprintf("progress must be between %d and %d", model.MinProgress, model.MaxProgress))
	}

	e, err := s.ownedBy(ctx, enrollmentID, userID)
	if err != nil {
		return nil, err
	}

	wasCompleted := e.Status == model.EnrollmentCompleted
	e.ApplyProgress(progress, s.now())
	if err := s.EnrollmentRepo.Save(ctx, e); err != nil {
		return nil, err
	}
	if !wasCompleted && e.Status == model.EnrollmentCompleted {
		monitoring.EnrollmentsCompleted.Inc()
	}
	return e, nil
}

// MarkPaid flags the enrollment as paid. Only its owner or an admin may do so.
func (s *EnrollmentService) MarkPaid(ctx context.Context, enrollmentID uint, principal *util.Claims) (*model.Enrollment, error) {
	e, err := s.EnrollmentRepo.FindByID(ctx, enrollmentID)
	if err != nil {
		return nil, notFound(err, util.ErrEnrollmentNotFound)
	}
	if !principal.IsAdmin() && e.UserID != principal.UserID {
		return nil, util.ErrEnrollmentNotFound
	}

	e.PaymentStatus = model.PaymentPaid
	if err := s.EnrollmentRepo.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EnrollmentService) GetByCourse(ctx context.Context, userID, courseID uint) (*model.Enrollment, error) {
	if _, err := s.CourseRepo.FindBasic(ctx, courseID); err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	e, err := s.EnrollmentRepo.FindByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, notFound(err, util.ErrNotEnrolled)
	}
	return e, nil
}

func (s *EnrollmentService) ListMine(ctx context.Context, userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.ListByUser(ctx, userID)
}

func (s *EnrollmentService) ListForAdmin(ctx context.Context, courseID, batchID *uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.List(ctx, repository.EnrollmentFilter{CourseID: courseID, BatchID: batchID})
}
