package service

import (
	"context"
	"coursemaster_backend/internal/config"
	"coursemaster_backend/internal/model"
	"coursemaster_backend/internal/repository"
	"coursemaster_backend/internal/util"
	"coursemaster_backend/pkg/logger"
	"coursemaster_backend/pkg/mailer"
	"coursemaster_backend/pkg/monitoring"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubmissionInput struct {
	CourseID uint `json:"courseId"`
	LessonID uint `json:"lessonId"`
	// ModuleID is the older name for LessonID, used when LessonID is empty.
	ModuleID   uint    `json:"moduleId"`
	BatchID    *uint   `json:"batchId"`
	AnswerText *string `json:"answerText"`
	DriveLink  *string `json:"driveLink"`
}

type ReviewInput struct {
	Score    *float64 `json:"score"`
	Feedback *string  `json:"feedback"`
	Status   *string  `json:"status"`
}

type AssignmentService struct {
	AssignmentRepo *repository.AssignmentRepository
	CourseRepo     *repository.CourseRepository
	Mailer         mailer.Mailer
	Cfg            *config.Config
}

func NewAssignmentService(assignmentRepo *repository.AssignmentRepository, courseRepo *repository.CourseRepository, m mailer.Mailer, cfg *config.Config) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo: assignmentRepo,
		CourseRepo:     courseRepo,
		Mailer:         m,
		Cfg:            cfg,
	}
}

// Submit stores the student's answer for a lesson. A resubmission
// overwrites the sent fields and puts the submission back to submitted;
// any score and feedback already given stay. created reports whether a new
// row was inserted.
func (s *AssignmentService) Submit(ctx context.Context, studentID uint, in SubmissionInput) (sub *model.AssignmentSubmission, created bool, err error) {
	if in.LessonID == 0 {
		in.LessonID = in.ModuleID
	}
	if in.CourseID == 0 || in.LessonID == 0 {
		return nil, false, util.Invalid("courseId and lessonId are required")
	}
	if trimmed(in.AnswerText) == "" && trimmed(in.DriveLink) == "" {
		return nil, false, util.Invalid("answerText or driveLink is required")
	}

	if _, err := s.CourseRepo.FindBasic(ctx, in.CourseID); err != nil {
		return nil, false, notFound(err, util.ErrCourseNotFound)
	}
	if _, err := s.CourseRepo.FindLesson(ctx, in.CourseID, in.LessonID); err != nil {
		return nil, false, notFound(err, util.ErrLessonNotFound)
	}
	if in.BatchID != nil {
		if _, err := s.CourseRepo.FindBatch(ctx, in.CourseID, *in.BatchID); err != nil {
			return nil, false, notFound(err, util.ErrBatchNotFound)
		}
	}

	existing, err := s.AssignmentRepo.FindByKey(ctx, studentID, in.CourseID, in.LessonID)
	switch {
	case err == nil:
		if in.AnswerText != nil {
			existing.AnswerText = *in.AnswerText
		}
		if in.DriveLink != nil {
			existing.DriveLink = strings.TrimSpace(*in.DriveLink)
		}
		if in.BatchID != nil {
			existing.BatchID = in.BatchID
		}
		existing.Status = model.SubmissionSubmitted
		if err := s.AssignmentRepo.Save(ctx, existing); err != nil {
			return nil, false, err
		}
		monitoring.AssignmentSubmissions.WithLabelValues("resubmitted").Inc()
		return existing, false, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		sub := &model.AssignmentSubmission{
			StudentID:  studentID,
			CourseID:   in.CourseID,
			LessonID:   in.LessonID,
			BatchID:    in.BatchID,
			AnswerText: derefString(in.AnswerText),
			DriveLink:  trimmed(in.DriveLink),
			Status:     model.SubmissionSubmitted,
		}
		if err := s.AssignmentRepo.Create(ctx, sub); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// a concurrent first submit won, overwrite it instead
				return s.Submit(ctx, studentID, in)
			}
			return nil, false, err
		}
		monitoring.AssignmentSubmissions.WithLabelValues("created").Inc()
		return sub, true, nil
	}
	return nil, false, err
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (s *AssignmentService) ListForAdmin(ctx context.Context, courseID, batchID *uint, status string) ([]model.AssignmentSubmission, error) {
	st := model.SubmissionStatus(strings.TrimSpace(status))
	if st != "" && !st.Valid() {
		return nil, util.Invalid("status must be submitted or reviewed")
	}
	return s.AssignmentRepo.List(ctx, repository.SubmissionFilter{CourseID: courseID, BatchID: batchID, Status: st})
}

// Review grades a submission. Moving it from submitted to reviewed emails
// the student.
// A failed email is logged and does not fail the review.
func (s *AssignmentService) Review(ctx context.Context, id uint, in ReviewInput) (*model.AssignmentSubmission, error) {
	if in.Status != nil && !model.SubmissionStatus(*in.Status).Valid() {
		return nil, util.Invalid("status must be submitted or reviewed")
	}
	if in.Score != nil && (*in.Score < 0 || *in.Score > 100) {
		return nil, util.Invalid("score must be between 0 and 100")
	}

	sub, err := s.AssignmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrSubmissionNotFound)
	}
	wasReviewed := sub.Status == model.SubmissionReviewed

	if in.Score != nil {
		score := *in.Score
		sub.Score = &score
	}
	if in.Feedback != nil {
		sub.Feedback = *in.Feedback
	}
	if in.Status != nil {
		sub.Status = model.SubmissionStatus(*in.Status)
	}

	if err := s.AssignmentRepo.Save(ctx, sub); err != nil {
		return nil, err
	}

	if !wasReviewed && sub.Status == model.SubmissionReviewed {
		s.notifyReviewed(ctx, sub)
	}
	return sub, nil
}

func (s *AssignmentService) notifyReviewed(ctx context.Context, sub *model.AssignmentSubmission) {
	if s.Mailer == nil || sub.Student == nil {
		return
	}

	courseTitle := "your course"
	if sub.Course != nil {
		courseTitle = sub.Course.Title
	}
	score := "not scored"
	if sub.Score != nil {
		score = fmt.Sprintf("%g/100", *sub.Score)
	}
	link := fmt.Sprintf("%s/courses/%d/learn", strings.TrimRight(s.Cfg.Mail.ClientURL, "/"), sub.CourseID)

	text := fmt.Sprintf("Hi %s,\n\nYour assignment for %s has been reviewed.\nScore: %s\nFeedback: %s\n\n%s\n",
		sub.Student.Name, courseTitle, score, sub.Feedback, link)

	msg := mailer.Message{
		To:      mail.Address{Name: sub.Student.Name, Address: sub.Student.Email},
		Subject: "Your assignment has been reviewed",
		Text:    text,
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		logger.Log.Warn("Failed to send review notification",
			zap.Uint("submission_id", sub.ID),
			zap.String("email", sub.Student.Email),
			zap.Error(err))
	}
}
