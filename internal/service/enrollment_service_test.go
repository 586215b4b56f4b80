package service

import (
	"context"
	"coursemaster_backend/internal/model"
	"coursemaster_backend/internal/testutil"
	"coursemaster_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, f.db, "s@example.com", model.Student)
	c := testutil.CreateCourse(t, f.db, "Go", 0, 1)

	e, err := f.enrollments.Enroll(ctx, u.ID, c.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentEnrolled, e.Status)
	assert.Zero(t, e.Progress)

	_, err = f.enrollments.Enroll(ctx, u.ID, c.ID, nil)
	assert.ErrorIs(t, err, util.ErrConflict)

	var n int64
	require.NoError(t, f.db.Model(&model.Enrollment{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestEnrollValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, f.db, "s@example.com", model.Student)
	a := testutil.CreateCourse(t, f.db, "A", 0, 0)
	b := testutil.CreateCourse(t, f.db, "B", 0, 0)

	_, err := f.enrollments.Enroll(ctx, u.ID, 0, nil)
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = f.enrollments.Enroll(ctx, u.ID, 999, nil)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	otherBatch := a.Batches[0].ID
	_, err = f.enrollments.Enroll(ctx, u.ID, b.ID, &otherBatch)
	assert.ErrorIs(t, err, util.ErrBatchNotFound)

	e, err := f.enrollments.Enroll(ctx, u.ID, a.ID, &otherBatch)
	require.NoError(t, err)
	require.NotNil(t, e.BatchID)
	assert.Equal(t, otherBatch, *e.BatchID)
}

func TestEnrollPaymentStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, f.db, "s@example.com", model.Student)
	free := testutil.CreateCourse(t, f.db, "Free", 0, 0)
	priced := testutil.CreateCourse(t, f.db, "Priced", 49, 0)
	manual := testutil.CreateCourse(t, f.db, "Manual", 49, 0)

	e, err := f.enrollments.Enroll(ctx, u.ID, free.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, e.PaymentStatus)

	e, err = f.enrollments.Enroll(ctx, u.ID, priced.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, e.PaymentStatus)
	assert.Equal(t, 49.0, e.TotalPrice)

	f.cfg.Payment.AutoConfirm = false
	e, err = f.enrollments.Enroll(ctx, u.ID, manual.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPending, e.PaymentStatus)

	other := testutil.CreateUser(t, f.db, "o@example.com", model.Student)
	_, err = f.enrollments.MarkPaid(ctx, e.ID, &util.Claims{UserID: other.ID, Role: model.Student})
	assert.ErrorIs(t, err, util.ErrNotFound)

	paid, err := f.enrollments.MarkPaid(ctx, e.ID, &util.Claims{UserID: u.ID, Role: model.Student})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, paid.PaymentStatus)
}

func TestUpdateProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, f.db, "s@example.com", model.Student)
	c := testutil.CreateCourse(t, f.db, "Go", 0, 0)
	e, err := f.enrollments.Enroll(ctx, u.ID, c.ID, nil)
	require.NoError(t, err)

	for _, p := range []float64{-1, 101} {
		_, err := f.enrollments.UpdateProgress(ctx, e.ID, u.ID, p)
		assert.ErrorIs(t, err, util.ErrInvalidInput)
	}
	stored, err := f.enrollments.GetByCourse(ctx, u.ID, c.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.Progress)

	got, err := f.enrollments.UpdateProgress(ctx, e.ID, u.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentEnrolled, got.Status)

	got, err = f.enrollments.UpdateProgress(ctx, e.ID, u.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)

	got, err = f.enrollments.UpdateProgress(ctx, e.ID, u.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentCompleted, got.Status)
	assert.Equal(t, 40.0, got.Progress)

	other := testutil.CreateUser(t, f.db, "o@example.com", model.Student)
	_, err = f.enrollments.UpdateProgress(ctx, e.ID, other.ID, 10)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestGetByCourseAndListMine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, f.db, "s@example.com", model.Student)
	a := testutil.CreateCourse(t, f.db, "A", 0, 2)
	b := testutil.CreateCourse(t, f.db, "B", 0, 0)

	_, err := f.enrollments.GetByCourse(ctx, u.ID, a.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
	_, err = f.enrollments.GetByCourse(ctx, u.ID, 999)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	_, err = f.enrollments.Enroll(ctx, u.ID, a.ID, nil)
	require.NoError(t, err)
	_, err = f.enrollments.Enroll(ctx, u.ID, b.ID, nil)
	require.NoError(t, err)

	e, err := f.enrollments.GetByCourse(ctx, u.ID, a.ID)
	require.NoError(t, err)
	require.NotNil(t, e.Course)
	assert.Len(t, e.Course.Lessons, 2)

	mine, err := f.enrollments.ListMine(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, b.ID, mine[0].CourseID)

	all, err := f.enrollments.ListForAdmin(ctx, &a.ID, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].User)
	assert.Equal(t, "s@example.com", all[0].User.Email)
}
