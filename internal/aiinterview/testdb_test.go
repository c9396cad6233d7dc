package aiinterview_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mockinterview-lambda/internal/interview"
	"github.com/saulo-duarte/mockinterview-lambda/internal/migrations"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) interview.Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, migrations.Run(db))
	return interview.NewRepository(db)
}

func seedSession(t *testing.T, repo interview.Repository, userID uuid.UUID, status interview.SessionStatus) *interview.Session {
	t.Helper()
	s := &interview.Session{
		UserID:         userID,
		JobRole:        "Backend Engineer",
		JobDescription: "Go services",
		InterviewType:  interview.TypeTechnical,
		Difficulty:     interview.DifficultyEasy,
		Status:         status,
		FocusAreas:     []string{},
	}
	require.NoError(t, repo.CreateSession(context.Background(), s))
	return s
}

func seedAnswer(t *testing.T, repo interview.Repository, sessionID uuid.UUID, index int, answer string) {
	t.Helper()
	ctx := context.Background()
	q := &interview.Question{
		SessionID:    sessionID,
		QuestionText: "Explain goroutines",
		Category:     interview.CategoryTechnical,
		Difficulty:   interview.DifficultyEasy,
		OrderIndex:   index,
		KeyPoints:    []string{"scheduler"},
	}
	require.NoError(t, repo.CreateQuestion(ctx, q))
	require.NoError(t, repo.CreateResponse(ctx, &interview.Response{
		SessionID:     sessionID,
		QuestionID:    q.ID,
		Transcription: answer,
	}))
}
