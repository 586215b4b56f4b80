// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"coursemaster_backend/internal/config"
	"coursemaster_backend/internal/model"
	"coursemaster_backend/pkg/database"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory sqlite database private to the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DatabaseConfig{
		Driver:   "sqlite",
		Path:     ":memory:",
		LogLevel: "silent",
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a new database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, email string, role model.UserRole) *model.User {
	t.Helper()
	u := &model.User{Name: "User " + email, Email: email, Password: "x", Role: role}
	require.NoError(t, db.WithContext(context.Background()).Create(u).Error)
	return u
}

// CreateCourse stores a course with the given number of lessons and one batch.
func CreateCourse(t testing.TB, db *gorm.DB, title string, price float64, lessons int) *model.Course {
	t.Helper()
	c := &model.Course{
		Title:       title,
		Description: "About " + title,
		Instructor:  "Jane Doe",
		Price:       price,
		Category:    model.DefaultCategory,
		Level:       model.DefaultLevel,
		Batches:     []model.Batch{{Name: "Batch 1", StartDate: time.Now().UTC()}},
	}
	for i := 1; i <= lessons; i++ {
		c.Lessons = append(c.Lessons, model.Lesson{Title: "Lesson", Order: i})
	}
	require.NoError(t, db.Create(c).Error)
	return c
}
