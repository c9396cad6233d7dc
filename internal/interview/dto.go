package interview

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionDTO struct {
	JobRole        string        `json:"job_role"`
	JobDescription string        `json:"job_description"`
	CompanyName    string        `json:"company_name"`
	InterviewType  InterviewType `json:"interview_type"`
	Difficulty     Difficulty    `json:"difficulty"`
	Duration       *int          `json:"duration"`
	FocusAreas     []string      `json:"focus_areas"`
}

type SaveResponseDTO struct {
	QuestionID    uuid.UUID `json:"question_id"`
	Transcription string    `json:"transcription"`
	AudioURL      *string   `json:"audio_url"`
	Duration      *int      `json:"duration"`
	Confidence    *float64  `json:"confidence"`
}

type UpdateTranscriptionDTO struct {
	Transcription string   `json:"transcription"`
	Confidence    *float64 `json:"confidence"`
}

type FeedbackScores struct {
	OverallScore       float64 `json:"overall_score"`
	CommunicationScore float64 `json:"communication_score"`
}

type SessionSummaryResponse struct {
	ID             uuid.UUID       `json:"id"`
	JobRole        string          `json:"job_role"`
	JobDescription string          `json:"job_description"`
	CompanyName    *string         `json:"company_name,omitempty"`
	InterviewType  InterviewType   `json:"interview_type"`
	Difficulty     Difficulty      `json:"difficulty"`
	Status         SessionStatus   `json:"status"`
	Feedback       *FeedbackScores `json:"feedback,omitempty"`
	QuestionCount  int64           `json:"question_count"`
	ResponseCount  int64           `json:"response_count"`
	CreatedAt      time.Time       `json:"created_at"`
}

type StatsResponse struct {
	TotalInterviews           int     `json:"total_interviews"`
	CompletedInterviews       int     `json:"completed_interviews"`
	AverageScore              float64 `json:"average_score"`
	AverageCommunicationScore float64 `json:"average_communication_score"`
}
