package aiinterview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/saulo-duarte/mockinterview-lambda/internal/config"
	"github.com/saulo-duarte/mockinterview-lambda/internal/interview"
	"github.com/saulo-duarte/mockinterview-lambda/internal/user"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotCompleted   = errors.New("interview session is not completed")
	ErrFeedbackExists = errors.New("feedback already exists for this session")
)

const rawLogLimit = 1000

type Service interface {
	GenerateQuestions(ctx context.Context, u *user.User, sessionID uuid.UUID) ([]interview.Question, error)
	GenerateFeedback(ctx context.Context, u *user.User, sessionID uuid.UUID) (*interview.Feedback, error)
	GetFeedback(ctx context.Context, u *user.User, sessionID uuid.UUID) (*interview.Feedback, error)
	GenerateFollowUp(ctx context.Context, u *user.User, sessionID uuid.UUID, previousAnswer string) (string, error)
}

type service struct {
	repo     interview.Repository
	provider Provider
	counts   config.QuestionCounts
	testMode bool
}

func NewService(repo interview.Repository, provider Provider, counts config.QuestionCounts, testMode bool) Service {
	return &service{
		repo:     repo,
		provider: provider,
		counts:   counts,
		testMode: testMode,
	}
}

func (s *service) GenerateQuestions(ctx context.Context, u *user.User, sessionID uuid.UUID) ([]interview.Question, error) {
	log := config.WithContext(ctx).WithField("session_id", sessionID)

	session, err := s.repo.FindSession(ctx, sessionID, u.ID)
	if err != nil {
		return nil, err
	}
	if session.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: status is %s", interview.ErrSessionClosed, session.Status)
	}

	count := QuestionCount(session.Difficulty, s.counts)
	log = log.WithFields(logrus.Fields{"count": count, "test_mode": s.testMode})

	var raw string
	if s.testMode {
		questions := SampleQuestions(session.JobRole, session.InterviewType, session.Difficulty, count)
		data, err := json.Marshal(QuestionSet{Questions: questions})
		if err != nil {
			return nil, err
		}
		raw = string(data)
	} else {
		prompt := BuildQuestionPrompt(QuestionPromptInput{
			JobRole:        session.JobRole,
			JobDescription: session.JobDescription,
			InterviewType:  session.InterviewType,
			Difficulty:     session.Difficulty,
			Industry:       u.Industry,
			Skills:         u.Skills,
			Count:          count,
		})
		raw, err = s.generate(ctx, prompt)
		if err != nil {
			log.WithError(err).Error("Question generation failed")
			return nil, err
		}
	}
	log.WithField("raw", truncate(raw, rawLogLimit)).Debug("Raw question set")

	set, err := DecodeQuestionSet(raw)
	if err != nil {
		log.WithError(err).Error("Could not decode generated questions")
		return nil, err
	}

	questions, err := PersistQuestions(ctx, s.repo, session.ID, session.Difficulty, set)
	if err != nil {
		log.WithError(err).Error("Failed to save generated questions")
		return nil, err
	}

	log.WithField("saved", len(questions)).Info("Interview questions generated")
	return questions, nil
}

// GenerateFeedback evaluates a completed session. The session must have at least one
// response; this is checked before the model is called.
func (s *service) GenerateFeedback(ctx context.Context, u *user.User, sessionID uuid.UUID) (*interview.Feedback, error) {
	log := config.WithContext(ctx).WithField("session_id", sessionID)

	session, err := s.repo.FindSessionDetail(ctx, sessionID, u.ID)
	if err != nil {
		return nil, err
	}
	if session.Status != interview.StatusCompleted {
		return nil, fmt.Errorf("%w: status is %s", ErrNotCompleted, session.Status)
	}
	if len(session.Responses) == 0 {
		log.Warn("Feedback requested for a session without responses")
		return nil, interview.ErrNoResponses
	}
	if session.Feedback != nil {
		return nil, ErrFeedbackExists
	}

	answers := make([]AnsweredQuestion, 0, len(session.Responses))
	for _, r := range session.Responses {
		a := AnsweredQuestion{Answer: r.Transcription, Duration: r.Duration}
		if r.Question != nil {
			a.Question = r.Question.QuestionText
			a.Category = r.Question.Category
			a.KeyPoints = r.Question.KeyPoints
		}
		answers = append(answers, a)
	}

	raw, err := s.generate(ctx, BuildFeedbackPrompt(FeedbackPromptInput{
		JobRole:       session.JobRole,
		InterviewType: session.InterviewType,
		Answers:       answers,
	}))
	if err != nil {
		log.WithError(err).Error("Feedback generation failed")
		return nil, err
	}
	log.WithField("raw", truncate(raw, rawLogLimit)).Debug("Raw feedback")

	generated, err := DecodeFeedback(raw)
	if err != nil {
		log.WithError(err).Error("Could not decode generated feedback")
		return nil, err
	}

	feedback, err := PersistFeedback(ctx, s.repo, session.ID, generated)
	if err != nil {
		log.WithError(err).Error("Failed to save feedback")
		return nil, err
	}

	log.WithField("overall_score", feedback.OverallScore).Info("Interview feedback generated")
	return feedback, nil
}

func (s *service) GetFeedback(ctx context.Context, u *user.User, sessionID uuid.UUID) (*interview.Feedback, error) {
	return s.repo.FindFeedback(ctx, sessionID, u.ID)
}

func (s *service) GenerateFollowUp(ctx context.Context, u *user.User, sessionID uuid.UUID, previousAnswer string) (string, error) {
	log := config.WithContext(ctx).WithField("session_id", sessionID)

	previousAnswer = strings.TrimSpace(previousAnswer)
	if previousAnswer == "" {
		return "", fmt.Errorf("%w: previous answer is required", interview.ErrInvalidInput)
	}

	session, err := s.repo.FindSession(ctx, sessionID, u.ID)
	if err != nil {
		return "", err
	}

	raw, err := s.generate(ctx, BuildFollowUpPrompt(session.JobRole, session.InterviewType, previousAnswer))
	if err != nil {
		log.WithError(err).Error("Follow-up generation failed")
		return "", err
	}

	question := strings.Trim(strings.TrimSpace(raw), "\"")
	if question == "" {
		return "", fmt.Errorf("%w: empty follow-up question", ErrMalformedResponse)
	}
	return question, nil
}

func (s *service) generate(ctx context.Context, prompt string) (string, error) {
	if s.provider == nil {
		return "", fmt.Errorf("%w: generation is not configured", ErrUpstream)
	}
	raw, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, ErrUpstream) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return raw, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
