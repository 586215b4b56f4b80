package service

import (
	"context"
	"coursemaster_backend/internal/model"
	"coursemaster_backend/internal/testutil"
	"coursemaster_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentTrend(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	f.dashboard.now = func() time.Time { return now }

	u1 := testutil.CreateUser(t, f.db, "a@example.com", model.Student)
	u2 := testutil.CreateUser(t, f.db, "b@example.com", model.Student)
	u3 := testutil.CreateUser(t, f.db, "c@example.com", model.Student)
	c := testutil.CreateCourse(t, f.db, "Go", 0, 0)

	for _, e := range []struct {
		user uint
		at   time.Time
	}{
		{u1.ID, now.Add(-time.Hour)},
		{u2.ID, now.AddDate(0, 0, -2)},
		{u3.ID, now.AddDate(0, 0, -20)},
	} {
		row := &model.Enrollment{UserID: e.user, CourseID: c.ID, Status: model.EnrollmentEnrolled, PaymentStatus: model.PaymentPaid}
		row.CreatedAt = e.at
		require.NoError(t, f.db.Create(row).Error)
	}

	points, err := f.dashboard.EnrollmentTrend(ctx, 7)
	require.NoError(t, err)
	require.Len(t, points, 7)
	assert.Equal(t, "2025-03-04", points[0].Date)
	assert.Equal(t, "2025-03-10", points[6].Date)
	assert.EqualValues(t, 1, points[6].Enrollments)
	assert.EqualValues(t, 1, points[4].Enrollments)
	assert.EqualValues(t, 0, points[5].Enrollments)

	points, err = f.dashboard.EnrollmentTrend(ctx, DefaultTrendDays)
	require.NoError(t, err)
	assert.Len(t, points, DefaultTrendDays)

	for _, days := range []int{0, -1, 400} {
		_, err = f.dashboard.EnrollmentTrend(ctx, days)
		assert.ErrorIs(t, err, util.ErrInvalidInput, "days=%d", days)
	}
}
