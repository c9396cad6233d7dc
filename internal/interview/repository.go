package interview

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSessionNotFound  = errors.New("interview session not found")
	ErrQuestionNotFound = errors.New("interview question not found")
	ErrResponseNotFound = errors.New("interview response not found")
	ErrFeedbackNotFound = errors.New("interview feedback not found")
	ErrNoResponses      = errors.New("no responses found for this session")
)

type SessionCounts struct {
	SessionID     uuid.UUID
	QuestionCount int64
	ResponseCount int64
}

type Repository interface {
	CreateSession(ctx context.Context, s *Session) error
	FindSession(ctx context.Context, id, userID uuid.UUID) (*Session, error)
	FindSessionDetail(ctx context.Context, id, userID uuid.UUID) (*Session, error)
	ListSessions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Session, error)
	CountChildren(ctx context.Context, sessionIDs []uuid.UUID) (map[uuid.UUID]SessionCounts, error)
	ListCompletedSessions(ctx context.Context, userID uuid.UUID) ([]Session, error)
	CountSessions(ctx context.Context, userID uuid.UUID) (int64, error)
	TransitionSession(ctx context.Context, s *Session, from SessionStatus) error
	DeleteSession(ctx context.Context, id, userID uuid.UUID) error

	CreateQuestion(ctx context.Context, q *Question) error
	ListQuestions(ctx context.Context, sessionID uuid.UUID) ([]Question, error)
	FindQuestion(ctx context.Context, sessionID, questionID uuid.UUID) (*Question, error)

	CreateResponse(ctx context.Context, r *Response) error
	ListResponses(ctx context.Context, sessionID uuid.UUID) ([]Response, error)
	CountResponses(ctx context.Context, sessionID uuid.UUID) (int64, error)
	FindResponse(ctx context.Context, id, userID uuid.UUID) (*Response, error)
	UpdateResponse(ctx context.Context, r *Response) error
	DeleteResponse(ctx context.Context, id uuid.UUID) error

	CreateFeedback(ctx context.Context, f *Feedback) error
	FindFeedback(ctx context.Context, sessionID, userID uuid.UUID) (*Feedback, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateSession(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindSession(ctx context.Context, id, userID uuid.UUID) (*Session, error) {
	var s Session
	if err := r.db.WithContext(ctx).
		First(&s, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindSessionDetail(ctx context.Context, id, userID uuid.UUID) (*Session, error) {
	var s Session
	if err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Responses.Question").
		Preload("Feedback").
		First(&s, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) ListSessions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Session, error) {
	var sessions []Session
	if err := r.db.WithContext(ctx).
		Preload("Feedback").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *repository) CountChildren(ctx context.Context, sessionIDs []uuid.UUID) (map[uuid.UUID]SessionCounts, error) {
	counts := make(map[uuid.UUID]SessionCounts, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return counts, nil
	}

	type row struct {
		SessionID uuid.UUID
		Total     int64
	}

	var questionRows []row
	if err := r.db.WithContext(ctx).Model(&Question{}).
		Select("session_id, COUNT(*) AS total").
		Where("session_id IN ?", sessionIDs).
		Group("session_id").
		Scan(&questionRows).Error; err != nil {
		return nil, err
	}

	var responseRows []row
	if err := r.db.WithContext(ctx).Model(&Response{}).
		Select("session_id, COUNT(*) AS total").
		Where("session_id IN ?", sessionIDs).
		Group("session_id").
		Scan(&responseRows).Error; err != nil {
		return nil, err
	}

	for _, id := range sessionIDs {
		counts[id] = SessionCounts{SessionID: id}
	}
	for _, qr := range questionRows {
		c := counts[qr.SessionID]
		c.QuestionCount = qr.Total
		counts[qr.SessionID] = c
	}
	for _, rr := range responseRows {
		c := counts[rr.SessionID]
		c.ResponseCount = rr.Total
		counts[rr.SessionID] = c
	}
	return counts, nil
}

func (r *repository) ListCompletedSessions(ctx context.Context, userID uuid.UUID) ([]Session, error) {
	var sessions []Session
	if err := r.db.WithContext(ctx).
		Preload("Feedback").
		Where("user_id = ? AND status = ?", userID, StatusCompleted).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *repository) CountSessions(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Session{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TransitionSession writes the new status only if the row is still in `from`.
func (r *repository) TransitionSession(ctx context.Context, s *Session, from SessionStatus) error {
	result := r.db.WithContext(ctx).Model(&Session{}).
		Where("id = ? AND user_id = ? AND status = ?", s.ID, s.UserID, from).
		Updates(map[string]interface{}{
			"status":       s.Status,
			"started_at":   s.StartedAt,
			"completed_at": s.CompletedAt,
			"updated_at":   s.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: session %s is no longer %s", ErrInvalidTransition, s.ID, from)
	}
	return nil
}

func (r *repository) DeleteSession(ctx context.Context, id, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s Session
		if err := tx.First(&s, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		if err := tx.Delete(&Feedback{}, "session_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Response{}, "session_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Question{}, "session_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&s).Error
	})
}

func (r *repository) CreateQuestion(ctx context.Context, q *Question) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *repository) ListQuestions(ctx context.Context, sessionID uuid.UUID) ([]Question, error) {
	var questions []Question
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("order_index ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *repository) FindQuestion(ctx context.Context, sessionID, questionID uuid.UUID) (*Question, error) {
	var q Question
	if err := r.db.WithContext(ctx).
		First(&q, "id = ? AND session_id = ?", questionID, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *repository) CreateResponse(ctx context.Context, resp *Response) error {
	return r.db.WithContext(ctx).Create(resp).Error
}

func (r *repository) ListResponses(ctx context.Context, sessionID uuid.UUID) ([]Response, error) {
	var responses []Response
	if err := r.db.WithContext(ctx).
		Preload("Question").
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *repository) CountResponses(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Response{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) FindResponse(ctx context.Context, id, userID uuid.UUID) (*Response, error) {
	var resp Response
	if err := r.db.WithContext(ctx).
		Joins("JOIN interview_sessions ON interview_sessions.id = interview_responses.session_id").
		Where("interview_responses.id = ? AND interview_sessions.user_id = ?", id, userID).
		First(&resp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResponseNotFound
		}
		return nil, err
	}
	return &resp, nil
}

func (r *repository) UpdateResponse(ctx context.Context, resp *Response) error {
	return r.db.WithContext(ctx).Save(resp).Error
}

func (r *repository) DeleteResponse(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Response{}, "id = ?", id).Error
}

// CreateFeedback refuses to write when the session has no responses.
func (r *repository) CreateFeedback(ctx context.Context, f *Feedback) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Response{}).
			Where("session_id = ?", f.SessionID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNoResponses
		}
		return tx.Create(f).Error
	})
}

func (r *repository) FindFeedback(ctx context.Context, sessionID, userID uuid.UUID) (*Feedback, error) {
	var f Feedback
	if err := r.db.WithContext(ctx).
		Joins("JOIN interview_sessions ON interview_sessions.id = interview_feedback.session_id").
		Where("interview_feedback.session_id = ? AND interview_sessions.user_id = ?", sessionID, userID).
		First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return &f, nil
}
