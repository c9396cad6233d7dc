package interview

type SessionStatus string

const (
	StatusPending    SessionStatus = "pending"
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusCancelled  SessionStatus = "cancelled"
)

var AllStatuses = []SessionStatus{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

func (s SessionStatus) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type InterviewType string

const (
	TypeTechnical  InterviewType = "Technical"
	TypeBehavioral InterviewType = "Behavioral"
	TypeMixed      InterviewType = "Mixed"
)

var AllInterviewTypes = []InterviewType{TypeTechnical, TypeBehavioral, TypeMixed}

func (t InterviewType) IsValid() bool {
	for _, v := range AllInterviewTypes {
		if t == v {
			return true
		}
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

var AllDifficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) IsValid() bool {
	for _, v := range AllDifficulties {
		if d == v {
			return true
		}
	}
	return false
}

type Category string

const (
	CategoryTechnical   Category = "Technical"
	CategoryBehavioral  Category = "Behavioral"
	CategorySituational Category = "Situational"
)
