package aiinterview

import "github.com/saulo-duarte/mockinterview-lambda/internal/interview"

type GeneratedQuestion struct {
	QuestionText       string                       `json:"questionText"`
	Category           string                       `json:"category"`
	Difficulty         string                       `json:"difficulty"`
	KeyPoints          []string                     `json:"keyPoints"`
	EvaluationCriteria interview.EvaluationCriteria `json:"evaluationCriteria"`
}

type QuestionSet struct {
	Questions []GeneratedQuestion `json:"questions"`
}

type GeneratedFeedback struct {
	OverallScore       *float64                     `json:"overallScore"`
	OverallSummary     string                       `json:"overallSummary"`
	TechnicalScore     *float64                     `json:"technicalScore"`
	BehavioralScore    *float64                     `json:"behavioralScore"`
	CommunicationScore *float64                     `json:"communicationScore"`
	Strengths          []string                     `json:"strengths"`
	Improvements       []string                     `json:"improvements"`
	Recommendations    []string                     `json:"recommendations"`
	QuestionAnalysis   []interview.QuestionAnalysis `json:"questionAnalysis"`
	MetricsData        interview.MetricsData        `json:"metricsData"`
}

type FollowUpRequest struct {
	PreviousAnswer string `json:"previous_answer"`
}

type FollowUpResponse struct {
	Question string `json:"question"`
}

type CompleteResponse struct {
	Session  *interview.Session  `json:"session"`
	Feedback *interview.Feedback `json:"feedback,omitempty"`
	Error    string              `json:"feedback_error,omitempty"`
}
