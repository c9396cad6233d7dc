package migrations

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/saulo-duarte/mockinterview-lambda/internal/interview"
	"github.com/saulo-duarte/mockinterview-lambda/internal/user"
	"gorm.io/gorm"
)

func list() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "001_users",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&user.User{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("users")
			},
		},
		{
			ID: "002_interview_core",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&interview.Session{},
					&interview.Question{},
					&interview.Response{},
					&interview.Feedback{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					"interview_feedback",
					"interview_responses",
					"interview_questions",
					"interview_sessions",
				)
			},
		},
		{
			ID: "003_sessions_user_created_index",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_sessions_user_created ON interview_sessions (user_id, created_at DESC)").Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("DROP INDEX IF EXISTS idx_sessions_user_created").Error
			},
		},
	}
}

// Run applies every pending migration in order.
func Run(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, list())
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("run gormigrate migrations: %w", err)
	}
	return nil
}
