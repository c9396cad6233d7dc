package interview

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mockinterview-lambda/internal/config"
	"github.com/saulo-duarte/mockinterview-lambda/internal/voice"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrSessionClosed   = errors.New("interview session is closed")
	ErrEmptyTranscript = errors.New("no answer was captured")
)

const maxListLimit = 100

type Service interface {
	CreateSession(ctx context.Context, userID uuid.UUID, dto CreateSessionDTO) (*Session, error)
	ListSessions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]SessionSummaryResponse, error)
	GetSession(ctx context.Context, userID, id uuid.UUID) (*Session, error)
	StartSession(ctx context.Context, userID, id uuid.UUID) (*Session, error)
	CompleteSession(ctx context.Context, userID, id uuid.UUID) (*Session, error)
	CancelSession(ctx context.Context, userID, id uuid.UUID) (*Session, error)
	DeleteSession(ctx context.Context, userID, id uuid.UUID) error
	GetStats(ctx context.Context, userID uuid.UUID) (*StatsResponse, error)

	SaveResponse(ctx context.Context, userID, sessionID uuid.UUID, dto SaveResponseDTO) (*Response, error)
	ListResponses(ctx context.Context, userID, sessionID uuid.UUID) ([]Response, error)
	UpdateTranscription(ctx context.Context, userID, responseID uuid.UUID, dto UpdateTranscriptionDTO) (*Response, error)
	DeleteResponse(ctx context.Context, userID, responseID uuid.UUID) error

	AssistantConfig(ctx context.Context, userID, sessionID, questionID uuid.UUID) (*voice.AssistantConfig, error)
	AnswerByVoice(ctx context.Context, userID, sessionID, questionID uuid.UUID) (*Response, error)
}

type service struct {
	repo      Repository
	voice     *voice.Client
	assistant voice.AssistantDefaults
	listLimit int
	now       func() time.Time
}

func NewService(repo Repository, voiceClient *voice.Client, assistant voice.AssistantDefaults, listLimit int) Service {
	if listLimit <= 0 {
		listLimit = 10
	}
	return &service{
		repo:      repo,
		voice:     voiceClient,
		assistant: assistant,
		listLimit: listLimit,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) CreateSession(ctx context.Context, userID uuid.UUID, dto CreateSessionDTO) (*Session, error) {
	log := config.WithContext(ctx)

	dto.JobRole = strings.TrimSpace(dto.JobRole)
	dto.JobDescription = strings.TrimSpace(dto.JobDescription)
	if dto.JobRole == "" || dto.JobDescription == "" {
		return nil, fmt.Errorf("%w: job role and description are required", ErrInvalidInput)
	}
	if !dto.InterviewType.IsValid() {
		return nil, fmt.Errorf("%w: unknown interview type %q", ErrInvalidInput, dto.InterviewType)
	}
	if dto.Difficulty == "" {
		dto.Difficulty = DifficultyMedium
	}
	if !dto.Difficulty.IsValid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidInput, dto.Difficulty)
	}
	if dto.Duration != nil && *dto.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	session := Session{
		UserID:         userID,
		JobRole:        dto.JobRole,
		JobDescription: dto.JobDescription,
		InterviewType:  dto.InterviewType,
		Difficulty:     dto.Difficulty,
		Duration:       dto.Duration,
		FocusAreas:     dto.FocusAreas,
		Status:         StatusPending,
	}
	if name := strings.TrimSpace(dto.CompanyName); name != "" {
		session.CompanyName = &name
	}
	if session.FocusAreas == nil {
		session.FocusAreas = []string{}
	}

	if err := s.repo.CreateSession(ctx, &session); err != nil {
		log.WithError(err).Error("Failed to create interview session")
		return nil, err
	}

	log.WithField("session_id", session.ID).Info("Interview session created")
	return &session, nil
}

func (s *service) ListSessions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]SessionSummaryResponse, error) {
	log := config.WithContext(ctx)

	if limit <= 0 {
		limit = s.listLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	sessions, err := s.repo.ListSessions(ctx, userID, limit, offset)
	if err != nil {
		log.WithError(err).Error("Failed to list interview sessions")
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(sessions))
	for _, sess := range sessions {
		ids = append(ids, sess.ID)
	}
	counts, err := s.repo.CountChildren(ctx, ids)
	if err != nil {
		log.WithError(err).Error("Failed to count session questions and responses")
		return nil, err
	}

	responses := make([]SessionSummaryResponse, 0, len(sessions))
	for i := range sessions {
		responses = append(responses, toSummary(&sessions[i], counts[sessions[i].ID]))
	}
	return responses, nil
}

func (s *service) GetSession(ctx context.Context, userID, id uuid.UUID) (*Session, error) {
	return s.repo.FindSessionDetail(ctx, id, userID)
}

func (s *service) StartSession(ctx context.Context, userID, id uuid.UUID) (*Session, error) {
	return s.transition(ctx, userID, id, StatusInProgress)
}

func (s *service) CompleteSession(ctx context.Context, userID, id uuid.UUID) (*Session, error) {
	return s.transition(ctx, userID, id, StatusCompleted)
}

func (s *service) CancelSession(ctx context.Context, userID, id uuid.UUID) (*Session, error) {
	return s.transition(ctx, userID, id, StatusCancelled)
}

func (s *service) transition(ctx context.Context, userID, id uuid.UUID, to SessionStatus) (*Session, error) {
	log := config.WithContext(ctx).WithField("session_id", id)

	session, err := s.repo.FindSession(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	// Starting an in-progress session is a no-op.
	if to == StatusInProgress && session.Status == StatusInProgress {
		return session, nil
	}

	from := session.Status
	if err := checkTransition(from, to); err != nil {
		log.WithError(err).Warn("Rejected session status change")
		return nil, err
	}

	now := s.now()
	session.Status = to
	session.UpdatedAt = now
	switch to {
	case StatusInProgress:
		session.StartedAt = &now
	case StatusCompleted:
		session.CompletedAt = &now
	}

	if err := s.repo.TransitionSession(ctx, session, from); err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			log.WithError(err).Warn("Session status changed concurrently")
		} else {
			log.WithError(err).Error("Failed to update session status")
		}
		return nil, err
	}

	log.WithFields(logrus.Fields{"from": from, "to": to}).Info("Session status changed")
	return session, nil
}

func (s *service) DeleteSession(ctx context.Context, userID, id uuid.UUID) error {
	log := config.WithContext(ctx).WithField("session_id", id)

	if err := s.repo.DeleteSession(ctx, id, userID); err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			log.WithError(err).Error("Failed to delete interview session")
		}
		return err
	}

	log.Info("Interview session deleted")
	return nil
}

func (s *service) GetStats(ctx context.Context, userID uuid.UUID) (*StatsResponse, error) {
	log := config.WithContext(ctx)

	total, err := s.repo.CountSessions(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to count interview sessions")
		return nil, err
	}

	completed, err := s.repo.ListCompletedSessions(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to load completed sessions")
		return nil, err
	}

	var overall, communication float64
	var scored int
	for _, sess := range completed {
		if sess.Feedback == nil {
			continue
		}
		overall += sess.Feedback.OverallScore
		communication += sess.Feedback.CommunicationScore
		scored++
	}

	stats := &StatsResponse{
		TotalInterviews:     int(total),
		CompletedInterviews: len(completed),
	}
	if scored > 0 {
		stats.AverageScore = round2(overall / float64(scored))
		stats.AverageCommunicationScore = round2(communication / float64(scored))
	}
	return stats, nil
}

func (s *service) SaveResponse(ctx context.Context, userID, sessionID uuid.UUID, dto SaveResponseDTO) (*Response, error) {
	log := config.WithContext(ctx).WithField("session_id", sessionID)

	if strings.TrimSpace(dto.Transcription) == "" {
		return nil, fmt.Errorf("%w: transcription is required", ErrInvalidInput)
	}
	if dto.Duration != nil && *dto.Duration < 0 {
		return nil, fmt.Errorf("%w: duration cannot be negative", ErrInvalidInput)
	}

	session, err := s.openSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindQuestion(ctx, session.ID, dto.QuestionID); err != nil {
		return nil, err
	}

	resp := Response{
		SessionID:     session.ID,
		QuestionID:    dto.QuestionID,
		Transcription: strings.TrimSpace(dto.Transcription),
		AudioURL:      dto.AudioURL,
		Duration:      dto.Duration,
		Confidence:    dto.Confidence,
	}
	if err := s.repo.CreateResponse(ctx, &resp); err != nil {
		log.WithError(err).Error("Failed to save response")
		return nil, err
	}

	log.WithField("response_id", resp.ID).Info("Response saved")
	return &resp, nil
}

func (s *service) ListResponses(ctx context.Context, userID, sessionID uuid.UUID) ([]Response, error) {
	if _, err := s.repo.FindSession(ctx, sessionID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListResponses(ctx, sessionID)
}

func (s *service) UpdateTranscription(ctx context.Context, userID, responseID uuid.UUID, dto UpdateTranscriptionDTO) (*Response, error) {
	log := config.WithContext(ctx).WithField("response_id", responseID)

	if strings.TrimSpace(dto.Transcription) == "" {
		return nil, fmt.Errorf("%w: transcription is required", ErrInvalidInput)
	}

	resp, err := s.repo.FindResponse(ctx, responseID, userID)
	if err != nil {
		return nil, err
	}

	resp.Transcription = strings.TrimSpace(dto.Transcription)
	if dto.Confidence != nil {
		resp.Confidence = dto.Confidence
	}
	resp.UpdatedAt = s.now()

	if err := s.repo.UpdateResponse(ctx, resp); err != nil {
		log.WithError(err).Error("Failed to update transcription")
		return nil, err
	}
	return resp, nil
}

func (s *service) DeleteResponse(ctx context.Context, userID, responseID uuid.UUID) error {
	log := config.WithContext(ctx).WithField("response_id", responseID)

	resp, err := s.repo.FindResponse(ctx, responseID, userID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteResponse(ctx, resp.ID); err != nil {
		log.WithError(err).Error("Failed to delete response")
		return err
	}
	return nil
}

func (s *service) AssistantConfig(ctx context.Context, userID, sessionID, questionID uuid.UUID) (*voice.AssistantConfig, error) {
	if _, err := s.repo.FindSession(ctx, sessionID, userID); err != nil {
		return nil, err
	}
	q, err := s.repo.FindQuestion(ctx, sessionID, questionID)
	if err != nil {
		return nil, err
	}
	cfg := voice.NewInterviewAssistant(q.QuestionText, s.assistant)
	return &cfg, nil
}

// AnswerByVoice runs one voice call for a question and stores what the candidate said.
// It blocks until the call ends or the assistant's maximum duration elapses.
func (s *service) AnswerByVoice(ctx context.Context, userID, sessionID, questionID uuid.UUID) (*Response, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"session_id":  sessionID,
		"question_id": questionID,
	})

	if s.voice == nil {
		return nil, voice.ErrNotConfigured
	}

	session, err := s.openSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	q, err := s.repo.FindQuestion(ctx, session.ID, questionID)
	if err != nil {
		return nil, err
	}

	callCtx := ctx
	if s.assistant.MaxDurationSeconds > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, time.Duration(s.assistant.MaxDurationSeconds)*time.Second)
		defer cancel()
	}

	call, err := s.voice.Start(callCtx, voice.NewInterviewAssistant(q.QuestionText, s.assistant))
	if err != nil {
		return nil, err
	}

	result, err := call.Wait(callCtx)
	if err != nil {
		if !errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			log.WithError(err).Error("Voice call failed")
			return nil, err
		}
		log.Warn("Voice call reached its maximum duration")
	}

	if result.Transcript == "" {
		log.Warn("Voice call ended without an answer")
		return nil, ErrEmptyTranscript
	}

	seconds := result.Seconds
	resp := Response{
		SessionID:     session.ID,
		QuestionID:    q.ID,
		Transcription: result.Transcript,
		Duration:      &seconds,
		Confidence:    result.Confidence,
	}
	if err := s.repo.CreateResponse(ctx, &resp); err != nil {
		log.WithError(err).Error("Failed to save voice response")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"response_id": resp.ID,
		"seconds":     seconds,
	}).Info("Voice response saved")
	return &resp, nil
}

// openSession loads a session that still accepts answers.
func (s *service) openSession(ctx context.Context, userID, sessionID uuid.UUID) (*Session, error) {
	session, err := s.repo.FindSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: status is %s", ErrSessionClosed, session.Status)
	}
	return session, nil
}

func toSummary(sess *Session, counts SessionCounts) SessionSummaryResponse {
	summary := SessionSummaryResponse{
		ID:             sess.ID,
		JobRole:        sess.JobRole,
		JobDescription: sess.JobDescription,
		CompanyName:    sess.CompanyName,
		InterviewType:  sess.InterviewType,
		Difficulty:     sess.Difficulty,
		Status:         sess.Status,
		QuestionCount:  counts.QuestionCount,
		ResponseCount:  counts.ResponseCount,
		CreatedAt:      sess.CreatedAt,
	}
	if sess.Feedback != nil {
		summary.Feedback = &FeedbackScores{
			OverallScore:       sess.Feedback.OverallScore,
			CommunicationScore: sess.Feedback.CommunicationScore,
		}
	}
	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
