package aiinterview

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
)

var (
	openingFence = regexp.MustCompile("```(?:json)?\\n?")
	strayFence   = regexp.MustCompile("```")
)

// ExtractJSON recovers the JSON object a model was asked to return from text that may
// wrap it in prose or code fences. The span from the first '{' to the last '}' is tried
// first, then the whole text with fences removed. A top-level array is returned as
// {"questions": [...]}.
func ExtractJSON(text string) (map[string]json.RawMessage, error) {
	payload, err := recoverJSON(text)
	if err != nil {
		return nil, err
	}

	if payload[0] == '[' {
		payload = append(append([]byte(`{"questions":`), payload...), '}')
	}
	if payload[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object, got %.20q", ErrMalformedResponse, payload)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return fields, nil
}

func recoverJSON(text string) ([]byte, error) {
	if candidate, ok := braceSpan(text); ok && json.Valid([]byte(candidate)) {
		return []byte(candidate), nil
	}

	stripped := strings.TrimSpace(strayFence.ReplaceAllString(openingFence.ReplaceAllString(text, ""), ""))
	var probe interface{}
	if err := json.Unmarshal([]byte(stripped), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return bytes.TrimSpace([]byte(stripped)), nil
}

// braceSpan slices text from the first '{' to the last '}'. When that span is directly
// enclosed by '[' and ']' the brackets are kept so a bare array survives.
func braceSpan(text string) (string, bool) {
	first := strings.IndexByte(text, '{')
	last := strings.LastIndexByte(text, '}')
	if first == -1 || last == -1 || last <= first {
		return "", false
	}

	start, end := first, last+1
	before := strings.TrimRight(text[:first], " \t\r\n")
	after := strings.TrimLeft(text[end:], " \t\r\n")
	if strings.HasSuffix(before, "[") && strings.HasPrefix(after, "]") {
		start = len(before) - 1
		end = len(text) - len(after) + 1
	}
	return text[start:end], true
}

// DecodeQuestionSet extracts and validates a question-set answer.
func DecodeQuestionSet(text string) (*QuestionSet, error) {
	fields, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	raw, ok := fields["questions"]
	if !ok {
		return nil, fmt.Errorf("%w: missing \"questions\"", ErrInvalidShape)
	}

	var set QuestionSet
	if err := json.Unmarshal(raw, &set.Questions); err != nil {
		return nil, fmt.Errorf("%w: \"questions\" must be an array of question objects: %v", ErrInvalidShape, err)
	}
	if len(set.Questions) == 0 {
		return nil, fmt.Errorf("%w: \"questions\" is empty", ErrInvalidShape)
	}
	for i, q := range set.Questions {
		if strings.TrimSpace(q.QuestionText) == "" {
			return nil, fmt.Errorf("%w: question %d has no questionText", ErrInvalidShape, i)
		}
	}
	return &set, nil
}

// DecodeFeedback extracts and validates an evaluation answer. Scores must lie in 0..10.
func DecodeFeedback(text string) (*GeneratedFeedback, error) {
	fields, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	for _, key := range []string{"overallScore", "overallSummary", "communicationScore"} {
		if _, ok := fields[key]; !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidShape, key)
		}
	}

	normalized, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var fb GeneratedFeedback
	if err := json.Unmarshal(normalized, &fb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}

	if fb.OverallScore == nil || fb.CommunicationScore == nil {
		return nil, fmt.Errorf("%w: overallScore and communicationScore must be numbers", ErrInvalidShape)
	}
	if strings.TrimSpace(fb.OverallSummary) == "" {
		return nil, fmt.Errorf("%w: overallSummary is empty", ErrInvalidShape)
	}

	scores := map[string]*float64{
		"overallScore":       fb.OverallScore,
		"communicationScore": fb.CommunicationScore,
		"technicalScore":     fb.TechnicalScore,
		"behavioralScore":    fb.BehavioralScore,
	}
	for name, v := range scores {
		if v != nil && !validScore(*v) {
			return nil, fmt.Errorf("%w: %s %.2f is outside 0-10", ErrInvalidShape, name, *v)
		}
	}
	for i, qa := range fb.QuestionAnalysis {
		if !validScore(qa.Score) {
			return nil, fmt.Errorf("%w: questionAnalysis[%d] score %.2f is outside 0-10", ErrInvalidShape, i, qa.Score)
		}
	}
	return &fb, nil
}

func validScore(v float64) bool {
	return v >= 0 && v <= 10
}
