package interview

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Session struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID                   `gorm:"type:uuid;not null;index" json:"user_id"`
	JobRole        string                      `gorm:"type:text;not null" json:"job_role"`
	JobDescription string                      `gorm:"type:text;not null" json:"job_description"`
	CompanyName    *string                     `gorm:"type:text" json:"company_name,omitempty"`
	InterviewType  InterviewType               `gorm:"type:text;not null" json:"interview_type"`
	Difficulty     Difficulty                  `gorm:"type:text;not null" json:"difficulty"`
	Duration       *int                        `json:"duration,omitempty"`
	FocusAreas     datatypes.JSONSlice[string] `json:"focus_areas"`
	Status         SessionStatus               `gorm:"type:text;not null;index" json:"status"`
	StartedAt      *time.Time                  `json:"started_at,omitempty"`
	CompletedAt    *time.Time                  `json:"completed_at,omitempty"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`

	Questions []Question `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Responses []Response `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"responses,omitempty"`
	Feedback  *Feedback  `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"feedback,omitempty"`
}

type EvaluationCriteria struct {
	Clarity   string `json:"clarity"`
	Depth     string `json:"depth"`
	Relevance string `json:"relevance"`
}

type Question struct {
	ID                 uuid.UUID                              `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID          uuid.UUID                              `gorm:"type:uuid;not null;uniqueIndex:idx_question_session_order" json:"session_id"`
	QuestionText       string                                 `gorm:"type:text;not null" json:"question_text"`
	Category           Category                               `gorm:"type:text" json:"category"`
	Difficulty         Difficulty                             `gorm:"type:text" json:"difficulty"`
	OrderIndex         int                                    `gorm:"not null;uniqueIndex:idx_question_session_order" json:"order_index"`
	KeyPoints          datatypes.JSONSlice[string]            `json:"key_points"`
	EvaluationCriteria datatypes.JSONType[EvaluationCriteria] `json:"evaluation_criteria"`
	CreatedAt          time.Time                              `gorm:"autoCreateTime" json:"created_at"`
}

type Response struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID     uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	QuestionID    uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	Question      *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"question,omitempty"`
	Transcription string    `gorm:"type:text;not null" json:"transcription"`
	AudioURL      *string   `gorm:"type:text" json:"audio_url,omitempty"`
	Duration      *int      `json:"duration,omitempty"`
	Confidence    *float64  `json:"confidence,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type QuestionAnalysis struct {
	QuestionIndex    int      `json:"questionIndex"`
	Score            float64  `json:"score"`
	Feedback         string   `json:"feedback"`
	KeyPointsCovered []string `json:"keyPointsCovered"`
}

type MetricsData struct {
	CategoryScores map[string]float64 `json:"categoryScores,omitempty"`
	SkillsAssessed []string           `json:"skillsAssessed,omitempty"`
}

type Feedback struct {
	ID                 uuid.UUID                             `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID          uuid.UUID                             `gorm:"type:uuid;not null;uniqueIndex" json:"session_id"`
	OverallScore       float64                               `gorm:"not null" json:"overall_score"`
	OverallSummary     string                                `gorm:"type:text;not null" json:"overall_summary"`
	TechnicalScore     *float64                              `json:"technical_score,omitempty"`
	BehavioralScore    *float64                              `json:"behavioral_score,omitempty"`
	CommunicationScore float64                               `gorm:"not null" json:"communication_score"`
	Strengths          datatypes.JSONSlice[string]           `json:"strengths"`
	Improvements       datatypes.JSONSlice[string]           `json:"improvements"`
	Recommendations    datatypes.JSONSlice[string]           `json:"recommendations"`
	QuestionAnalysis   datatypes.JSONSlice[QuestionAnalysis] `json:"question_analysis"`
	MetricsData        datatypes.JSONType[MetricsData]       `json:"metrics_data"`
	CreatedAt          time.Time                             `gorm:"autoCreateTime" json:"created_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (Session) TableName() string { return "interview_sessions" }
func (Question) TableName() string { return "interview_questions" }
func (Response) TableName() string { return "interview_responses" }
func (Feedback) TableName() string { return "interview_feedback" }
