package service

import (
	"context"
	"coursemaster_backend/internal/config"
	"coursemaster_backend/internal/repository"
	"coursemaster_backend/internal/testutil"
	"coursemaster_backend/pkg/mailer"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Payment.AutoConfirm = true
	cfg.Mail.ClientURL = "http://localhost:3000"
	cfg.Storage.Type = "local"
	return cfg
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

type fixture struct {
	db          *gorm.DB
	cfg         *config.Config
	mail        *fakeMailer
	auth        *AuthService
	courses     *CourseService
	enrollments *EnrollmentService
	quizzes     *QuizService
	assignments *AssignmentService
	dashboard   *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(t, testutil.NewDB(t))
}

func newFixtureOn(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	cfg := testConfig()
	cfg.Storage.LocalPath = t.TempDir()

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	m := &fakeMailer{}

	return &fixture{
		db:          db,
		cfg:         cfg,
		mail:        m,
		auth:        NewAuthService(userRepo, cfg, NewMemoryBlacklist()),
		courses:     NewCourseService(courseRepo, NewStorageService(&cfg.Storage)),
		enrollments: NewEnrollmentService(repository.NewEnrollmentRepository(db), courseRepo, cfg),
		quizzes:     NewQuizService(repository.NewQuizRepository(db), courseRepo, cfg),
		assignments: NewAssignmentService(repository.NewAssignmentRepository(db), courseRepo, m, cfg),
		dashboard:   NewDashboardService(repository.NewDashboardRepository(db)),
	}
}

// insertFirst stores rival right before the first insert into table, as if
// a concurrent request won the race past the service's existence check.
// db must skip the default transaction so the rival row survives the
// failed insert.
func insertFirst(t *testing.T, db *gorm.DB, table string, rival interface{}) {
	t.Helper()
	fired := false
	err := db.Callback().Create().Before("gorm:create").Register("test:insert_first", func(tx *gorm.DB) {
		if fired || tx.Statement.Schema == nil || tx.Statement.Schema.Table != table {
			return
		}
		fired = true
		if err := tx.Session(&gorm.Session{NewDB: true}).Create(rival).Error; err != nil {
			tx.AddError(err)
		}
	})
	require.NoError(t, err)
}
