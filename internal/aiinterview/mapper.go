package aiinterview

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mockinterview-lambda/internal/interview"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

// RecordWriter is the part of the interview repository the mapper writes through.
type RecordWriter interface {
	CreateQuestion(ctx context.Context, q *interview.Question) error
	CreateFeedback(ctx context.Context, f *interview.Feedback) error
}

// PersistQuestions stores one row per generated question with OrderIndex equal to its
// position in the set. Rows are written concurrently and independently, so a failure
// leaves the rows that did succeed in place.
func PersistQuestions(ctx context.Context, w RecordWriter, sessionID uuid.UUID, fallback interview.Difficulty, set *QuestionSet) ([]interview.Question, error) {
	questions := make([]interview.Question, len(set.Questions))
	for i, gq := range set.Questions {
		keyPoints := gq.KeyPoints
		if keyPoints == nil {
			keyPoints = []string{}
		}
		questions[i] = interview.Question{
			SessionID:          sessionID,
			QuestionText:       strings.TrimSpace(gq.QuestionText),
			Category:           toCategory(gq.Category),
			Difficulty:         toDifficulty(gq.Difficulty, fallback),
			OrderIndex:         i,
			KeyPoints:          keyPoints,
			EvaluationCriteria: datatypes.NewJSONType(gq.EvaluationCriteria),
		}
	}

	var g errgroup.Group
	for i := range questions {
		q := &questions[i]
		g.Go(func() error {
			if err := w.CreateQuestion(ctx, q); err != nil {
				return fmt.Errorf("%w: question %d: %w", ErrPersistence, q.OrderIndex, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return questions, nil
}

// PersistFeedback stores the evaluation of a session as its single feedback row.
func PersistFeedback(ctx context.Context, w RecordWriter, sessionID uuid.UUID, fb *GeneratedFeedback) (*interview.Feedback, error) {
	row := interview.Feedback{
		SessionID:          sessionID,
		OverallScore:       *fb.OverallScore,
		OverallSummary:     strings.TrimSpace(fb.OverallSummary),
		TechnicalScore:     fb.TechnicalScore,
		BehavioralScore:    fb.BehavioralScore,
		CommunicationScore: *fb.CommunicationScore,
		Strengths:          orEmpty(fb.Strengths),
		Improvements:       orEmpty(fb.Improvements),
		Recommendations:    orEmpty(fb.Recommendations),
		QuestionAnalysis:   fb.QuestionAnalysis,
		MetricsData:        datatypes.NewJSONType(fb.MetricsData),
	}
	if row.QuestionAnalysis == nil {
		row.QuestionAnalysis = []interview.QuestionAnalysis{}
	}

	if err := w.CreateFeedback(ctx, &row); err != nil {
		return nil, fmt.Errorf("%w: feedback: %w", ErrPersistence, err)
	}
	return &row, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toCategory(s string) interview.Category {
	switch c := interview.Category(strings.TrimSpace(s)); c {
	case interview.CategoryTechnical, interview.CategoryBehavioral, interview.CategorySituational:
		return c
	default:
		return interview.CategoryTechnical
	}
}

func toDifficulty(s string, fallback interview.Difficulty) interview.Difficulty {
	if d := interview.Difficulty(strings.TrimSpace(s)); d.IsValid() {
		return d
	}
	return fallback
}
