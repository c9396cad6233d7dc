package interview_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mockinterview-lambda/internal/interview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSession(t *testing.T, repo interview.Repository, userID uuid.UUID, status interview.SessionStatus, createdAt time.Time) *interview.Session {
	t.Helper()
	s := &interview.Session{
		UserID:         userID,
		JobRole:        "Backend Engineer",
		JobDescription: "Go services",
		InterviewType:  interview.TypeTechnical,
		Difficulty:     interview.DifficultyMedium,
		Status:         status,
		FocusAreas:     []string{"concurrency"},
		CreatedAt:      createdAt,
	}
	require.NoError(t, repo.CreateSession(context.Background(), s))
	return s
}

func seedQuestion(t *testing.T, repo interview.Repository, sessionID uuid.UUID, index int) *interview.Question {
	t.Helper()
	q := &interview.Question{
		SessionID:    sessionID,
		QuestionText: "Question",
		Category:     interview.CategoryTechnical,
		Difficulty:   interview.DifficultyMedium,
		OrderIndex:   index,
		KeyPoints:    []string{"a", "b"},
	}
	require.NoError(t, repo.CreateQuestion(context.Background(), q))
	return q
}

func seedResponse(t *testing.T, repo interview.Repository, sessionID, questionID uuid.UUID, text string, createdAt time.Time) *interview.Response {
	t.Helper()
	r := &interview.Response{
		SessionID:     sessionID,
		QuestionID:    questionID,
		Transcription: text,
		CreatedAt:     createdAt,
	}
	require.NoError(t, repo.CreateResponse(context.Background(), r))
	return r
}

func TestRepositorySessions(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("FindIsScopedToOwner", func(t *testing.T) {
		repo := interview.NewRepository(newTestDB(t))
		owner := uuid.New()
		s := seedSession(t, repo, owner, interview.StatusPending, base)

		got, err := repo.FindSession(ctx, s.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, "Backend Engineer", got.JobRole)
		assert.Equal(t, []string{"concurrency"}, []string(got.FocusAreas))

		_, err = repo.FindSession(ctx, s.ID, uuid.New())
		assert.ErrorIs(t, err, interview.ErrSessionNotFound)
	})

	t.Run("ListNewestFirstWithCounts", func(t *testing.T) {
		repo := interview.NewRepository(newTestDB(t))
		owner := uuid.New()
		older := seedSession(t, repo, owner, interview.StatusPending, base)
		newer := seedSession(t, repo, owner, interview.StatusInProgress, base.Add(time.Hour))
		seedSession(t, repo, uuid.New(), interview.StatusPending, base.Add(2*time.Hour))

		q0 := seedQuestion(t, repo, newer.ID, 0)
		seedQuestion(t, repo, newer.ID, 1)
		seedResponse(t, repo, newer.ID, q0.ID, "answer", base)

		sessions, err := repo.ListSessions(ctx, owner, 10, 0)
		require.NoError(t, err)
		require.Len(t, sessions, 2)
		assert.Equal(t, newer.ID, sessions[0].ID)
		assert.Equal(t, older.ID, sessions[1].ID)

		page, err := repo.ListSessions(ctx, owner, 1, 1)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, older.ID, page[0].ID)

		counts, err := repo.CountChildren(ctx, []uuid.UUID{older.ID, newer.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts[newer.ID].QuestionCount)
		assert.Equal(t, int64(1), counts[newer.ID].ResponseCount)
		assert.Equal(t, int64(0), counts[older.ID].QuestionCount)

		total, err := repo.CountSessions(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("DetailOrdersChildren", func(t *testing.T) {
		repo := interview.NewRepository(newTestDB(t))
		owner := uuid.New()
		s := seedSession(t, repo, owner, interview.StatusInProgress, base)

		q2 := seedQuestion(t, repo, s.ID, 2)
		q0 := seedQuestion(t, repo, s.ID, 0)
		q1 := seedQuestion(t, repo, s.ID, 1)
		seedResponse(t, repo, s.ID, q1.ID, "second", base.Add(time.Minute))
		seedResponse(t, repo, s.ID, q0.ID, "first", base)

		got, err := repo.FindSessionDetail(ctx, s.ID, owner)
		require.NoError(t, err)
		require.Len(t, got.Questions, 3)
		assert.Equal(t, []uuid.UUID{q0.ID, q1.ID, q2.ID}, []uuid.UUID{got.Questions[0].ID, got.Questions[1].ID, got.Questions[2].ID})
		require.Len(t, got.Responses, 2)
		assert.Equal(t, "first", got.Responses[0].Transcription)
		require.NotNil(t, got.Responses[0].Question)
		assert.Equal(t, q0.ID, got.Responses[0].Question.ID)
		assert.Nil(t, got.Feedback)
	})

	t.Run("OrderIndexUniquePerSession", func(t *testing.T) {
		repo := interview.NewRepository(newTestDB(t))
		s := seedSession(t, repo, uuid.New(), interview.StatusPending, base)
		seedQuestion(t, repo, s.ID, 0)

		err := repo.CreateQuestion(ctx, &interview.Question{SessionID: s.ID, QuestionText: "dup", OrderIndex: 0})
		assert.Error(t, err)

		other := seedSession(t, repo, uuid.New(), interview.StatusPending, base)
		seedQuestion(t, repo, other.ID, 0)
	})

	t.Run("TransitionIsConditional", func(t *testing.T) {
		repo := interview.NewRepository(newTestDB(t))
		owner := uuid.New()
		s := seedSession(t, repo, owner, interview.StatusPending, base)

		now := base.Add(time.Minute)
		s.Status = interview.StatusInProgress
		s.StartedAt = &now
		require.NoError(t, repo.TransitionSession(ctx, s, interview.StatusPending))

		got, err := repo.FindSession(ctx, s.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, interview.StatusInProgress, got.Status)
		require.NotNil(t, got.StartedAt)

		s.Status = interview.StatusCancelled
		err = repo.TransitionSession(ctx, s, interview.StatusPending)
		assert.ErrorIs(t, err, interview.ErrInvalidTransition)
	})

	t.Run("DeleteCascades", func(t *testing.T) {
		db := newTestDB(t)
		repo := interview.NewRepository(db)
		owner := uuid.New()
		s := seedSession(t, repo, owner, interview.StatusCompleted, base)
		q := seedQuestion(t, repo, s.ID, 0)
		seedResponse(t, repo, s.ID, q.ID, "answer", base)
		require.NoError(t, repo.CreateFeedback(ctx, &interview.Feedback{SessionID: s.ID, OverallScore: 7, OverallSummary: "ok", CommunicationScore: 6}))

		assert.ErrorIs(t, repo.DeleteSession(ctx, s.ID, uuid.New()), interview.ErrSessionNotFound)
		require.NoError(t, repo.DeleteSession(ctx, s.ID, owner))

		for _, model := range []interface{}{&interview.Question{}, &interview.Response{}, &interview.Feedback{}} {
			var count int64
			require.NoError(t, db.Model(model).Where("session_id = ?", s.ID).Count(&count).Error)
			assert.Zero(t, count)
		}
	})
}

func TestRepositoryResponsesAndFeedback(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("FindResponseScopedToOwner", func(t *testing.T) {
		repo := interview.NewRepository(newTestDB(t))
		owner := uuid.New()
		s := seedSession(t, repo, owner, interview.StatusInProgress, base)
		q := seedQuestion(t, repo, s.ID, 0)
		r := seedResponse(t, repo, s.ID, q.ID, "answer", base)

		got, err := repo.FindResponse(ctx, r.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, "answer", got.Transcription)

		_, err = repo.FindResponse(ctx, r.ID, uuid.New())
		assert.ErrorIs(t, err, interview.ErrResponseNotFound)

		got.Transcription = "edited"
		require.NoError(t, repo.UpdateResponse(ctx, got))
		again, err := repo.FindResponse(ctx, r.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, "edited", again.Transcription)

		require.NoError(t, repo.DeleteResponse(ctx, r.ID))
		n, err := repo.CountResponses(ctx, s.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("FeedbackRequiresResponses", func(t *testing.T) {
		repo := interview.NewRepository(newTestDB(t))
		owner := uuid.New()
		s := seedSession(t, repo, owner, interview.StatusCompleted, base)

		err := repo.CreateFeedback(ctx, &interview.Feedback{SessionID: s.ID, OverallScore: 5, OverallSummary: "x"})
		assert.ErrorIs(t, err, interview.ErrNoResponses)

		q := seedQuestion(t, repo, s.ID, 0)
		seedResponse(t, repo, s.ID, q.ID, "answer", base)

		fb := &interview.Feedback{
			SessionID:          s.ID,
			OverallScore:       8,
			OverallSummary:     "Solid",
			CommunicationScore: 7,
			Strengths:          []string{"clear"},
			QuestionAnalysis: []interview.QuestionAnalysis{
				{QuestionIndex: 0, Score: 8, Feedback: "good", KeyPointsCovered: []string{"a"}},
			},
		}
		require.NoError(t, repo.CreateFeedback(ctx, fb))

		got, err := repo.FindFeedback(ctx, s.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, 8.0, got.OverallScore)
		assert.Equal(t, []string{"clear"}, []string(got.Strengths))
		require.Len(t, got.QuestionAnalysis, 1)
		assert.Equal(t, []string{"a"}, got.QuestionAnalysis[0].KeyPointsCovered)

		_, err = repo.FindFeedback(ctx, s.ID, uuid.New())
		assert.ErrorIs(t, err, interview.ErrFeedbackNotFound)

		completed, err := repo.ListCompletedSessions(ctx, owner)
		require.NoError(t, err)
		require.Len(t, completed, 1)
		require.NotNil(t, completed[0].Feedback)
	})
}
