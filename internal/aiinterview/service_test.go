package aiinterview_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mockinterview-lambda/internal/aiinterview"
	"github.com/saulo-duarte/mockinterview-lambda/internal/interview"
	"github.com/saulo-duarte/mockinterview-lambda/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	answer  string
	err     error
	prompts []string
}

func (p *fakeProvider) Generate(_ context.Context, prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if p.err != nil {
		return "", p.err
	}
	return p.answer, nil
}

const twoQuestions = "```json\n" + `{"questions": [
	{"questionText": "Explain goroutines", "category": "Technical", "difficulty": "Easy", "keyPoints": ["scheduler"]},
	{"questionText": "How do you review code?", "category": "Behavioral"}
]}` + "\n```"

func newUser() *user.User {
	return &user.User{ID: uuid.New(), ExternalID: "ext-1", Industry: "Fintech", Skills: []string{"Go", "SQL"}}
}

func TestGenerateQuestions(t *testing.T) {
	ctx := context.Background()

	t.Run("PersistsInOrder", func(t *testing.T) {
		repo := newTestRepo(t)
		u := newUser()
		session := seedSession(t, repo, u.ID, interview.StatusPending)
		provider := &fakeProvider{answer: twoQuestions}
		svc := aiinterview.NewService(repo, provider, testCounts, false)

		questions, err := svc.GenerateQuestions(ctx, u, session.ID)
		require.NoError(t, err)
		require.Len(t, questions, 2)

		require.Len(t, provider.prompts, 1)
		assert.Contains(t, provider.prompts[0], "Generate 5 interview questions")
		assert.Contains(t, provider.prompts[0], "Industry: Fintech")

		stored, err := repo.ListQuestions(ctx, session.ID)
		require.NoError(t, err)
		require.Len(t, stored, 2)
		assert.Equal(t, "Explain goroutines", stored[0].QuestionText)
		assert.Equal(t, 0, stored[0].OrderIndex)
		assert.Equal(t, "How do you review code?", stored[1].QuestionText)
		assert.Equal(t, interview.DifficultyEasy, stored[1].Difficulty)
	})

	t.Run("TestModeSkipsProvider", func(t *testing.T) {
		repo := newTestRepo(t)
		u := newUser()
		session := seedSession(t, repo, u.ID, interview.StatusInProgress)
		svc := aiinterview.NewService(repo, nil, testCounts, true)

		questions, err := svc.GenerateQuestions(ctx, u, session.ID)
		require.NoError(t, err)
		assert.Len(t, questions, testCounts.Easy)
	})

	t.Run("SecondRunConflicts", func(t *testing.T) {
		repo := newTestRepo(t)
		u := newUser()
		session := seedSession(t, repo, u.ID, interview.StatusPending)
		svc := aiinterview.NewService(repo, nil, testCounts, true)

		_, err := svc.GenerateQuestions(ctx, u, session.ID)
		require.NoError(t, err)
		_, err = svc.GenerateQuestions(ctx, u, session.ID)
		assert.ErrorIs(t, err, aiinterview.ErrPersistence)
	})

	t.Run("NotConfigured", func(t *testing.T) {
		repo := newTestRepo(t)
		u := newUser()
		session := seedSession(t, repo, u.ID, interview.StatusPending)
		svc := aiinterview.NewService(repo, nil, testCounts, false)

		_, err := svc.GenerateQuestions(ctx, u, session.ID)
		assert.ErrorIs(t, err, aiinterview.ErrUpstream)
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		repo := newTestRepo(t)
		u := newUser()
		session := seedSession(t, repo, u.ID, interview.StatusPending)
		cause := errors.New("quota exceeded")
		svc := aiinterview.NewService(repo, &fakeProvider{err: cause}, testCounts, false)

		_, err := svc.GenerateQuestions(ctx, u, session.ID)
		assert.ErrorIs(t, err, aiinterview.ErrUpstream)
		assert.ErrorIs(t, err, cause)

		stored, err := repo.ListQuestions(ctx, session.ID)
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("MalformedAnswerWritesNothing", func(t *testing.T) {
		repo := newTestRepo(t)
		u := newUser()
		session := seedSession(t, repo, u.ID, interview.StatusPending)
		svc := aiinterview.NewService(repo, &fakeProvider{answer: "Sorry, I cannot help."}, testCounts, false)

		_, err := svc.GenerateQuestions(ctx, u, session.ID)
		assert.ErrorIs(t, err, aiinterview.ErrMalformedResponse)

		stored, err := repo.ListQuestions(ctx, session.ID)
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("ClosedSession", func(t *testing.T) {
		repo := newTestRepo(t)
		u := newUser()
		session := seedSession(t, repo, u.ID, interview.StatusCancelled)
		provider := &fakeProvider{answer: twoQuestions}
		svc := aiinterview.NewService(repo, provider, testCounts, false)

		_, err := svc.GenerateQuestions(ctx, u, session.ID)
		assert.ErrorIs(t, err, interview.ErrSessionClosed)
		assert.Empty(t, provider.prompts)
	})

	t.Run("OtherUsersSession", func(t *testing.T) {
		repo := newTestRepo(t)
		session := seedSession(t, repo, uuid.New(), interview.StatusPending)
		svc := aiinterview.NewService(repo, &fakeProvider{answer: twoQuestions}, testCounts, false)

		_, err := svc.GenerateQuestions(ctx, newUser(), session.ID)
		assert.ErrorIs(t, err, interview.ErrSessionNotFound)
	})
}

func TestGenerateFeedback(t *testing.T) {
	ctx := context.Background()

	t.Run("PersistsOnce", func(t *testing.T) {
		repo := newTestRepo(t)
		u := newUser()
		session := seedSession(t, repo, u.ID, interview.StatusCompleted)
		seedAnswer(t, repo, session.ID, 0, "Goroutines are cheap threads managed by the runtime.")
		provider := &fakeProvider{answer: validFeedback}
		svc := aiinterview.NewService(repo, provider, testCounts, false)

		fb, err := svc.GenerateFeedback(ctx, u, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 7.5, fb.OverallScore)

		require.Len(t, provider.prompts, 1)
		assert.Contains(t, provider.prompts[0], "Q1 [Technical]: Explain goroutines")
		assert.Contains(t, provider.prompts[0], "Goroutines are cheap threads")

		stored, err := svc.GetFeedback(ctx, u, session.ID)
		require.NoError(t, err)
		assert.Equal(t, fb.ID, stored.ID)
		assert.Equal(t, []string{"Clear structure"}, []string(stored.Strengths))
		assert.Equal(t, []string{"Go"}, stored.MetricsData.Data().SkillsAssessed)

		_, err = svc.GenerateFeedback(ctx, u, session.ID)
		assert.ErrorIs(t, err, aiinterview.ErrFeedbackExists)
		assert.Len(t, provider.prompts, 1)
	})

	t.Run("RequiresCompletedSession", func(t *testing.T) {
		repo := newTestRepo(t)
		u := newUser()
		session := seedSession(t, repo, u.ID, interview.StatusInProgress)
		seedAnswer(t, repo, session.ID, 0, "answer")
		provider := &fakeProvider{answer: validFeedback}
		svc := aiinterview.NewService(repo, provider, testCounts, false)

		_, err := svc.GenerateFeedback(ctx, u, session.ID)
		assert.ErrorIs(t, err, aiinterview.ErrNotCompleted)
		assert.Empty(t, provider.prompts)
	})

	t.Run("RequiresResponses", func(t *testing.T) {
		repo := newTestRepo(t)
		u := newUser()
		session := seedSession(t, repo, u.ID, interview.StatusCompleted)
		provider := &fakeProvider{answer: validFeedback}
		svc := aiinterview.NewService(repo, provider, testCounts, false)

		_, err := svc.GenerateFeedback(ctx, u, session.ID)
		assert.ErrorIs(t, err, interview.ErrNoResponses)
		assert.Empty(t, provider.prompts)
	})

	t.Run("InvalidShapeWritesNothing", func(t *testing.T) {
		repo := newTestRepo(t)
		u := newUser()
		session := seedSession(t, repo, u.ID, interview.StatusCompleted)
		seedAnswer(t, repo, session.ID, 0, "answer")
		svc := aiinterview.NewService(repo, &fakeProvider{answer: `{"overallScore": 15, "overallSummary": "x", "communicationScore": 5}`}, testCounts, false)

		_, err := svc.GenerateFeedback(ctx, u, session.ID)
		assert.ErrorIs(t, err, aiinterview.ErrInvalidShape)

		_, err = svc.GetFeedback(ctx, u, session.ID)
		assert.ErrorIs(t, err, interview.ErrFeedbackNotFound)
	})
}

func TestGenerateFollowUp(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	u := newUser()
	session := seedSession(t, repo, u.ID, interview.StatusInProgress)

	t.Run("TrimsQuotes", func(t *testing.T) {
		provider := &fakeProvider{answer: "  \"What would you do differently next time?\"\n"}
		svc := aiinterview.NewService(repo, provider, testCounts, false)

		question, err := svc.GenerateFollowUp(ctx, u, session.ID, "I rolled back the release.")
		require.NoError(t, err)
		assert.Equal(t, "What would you do differently next time?", question)
		assert.Contains(t, provider.prompts[0], "I rolled back the release.")
	})

	t.Run("RequiresAnswer", func(t *testing.T) {
		svc := aiinterview.NewService(repo, &fakeProvider{answer: "x"}, testCounts, false)
		_, err := svc.GenerateFollowUp(ctx, u, session.ID, "   ")
		assert.ErrorIs(t, err, interview.ErrInvalidInput)
	})

	t.Run("EmptyAnswerFromModel", func(t *testing.T) {
		svc := aiinterview.NewService(repo, &fakeProvider{answer: "\"\""}, testCounts, false)
		_, err := svc.GenerateFollowUp(ctx, u, session.ID, "I rolled back.")
		assert.ErrorIs(t, err, aiinterview.ErrMalformedResponse)
	})
}
