package aiinterview

import (
	"fmt"

	"github.com/saulo-duarte/mockinterview-lambda/internal/interview"
)

// SampleQuestions builds a fixed question set used when the generation endpoint is bypassed.
func SampleQuestions(jobRole string, t interview.InterviewType, d interview.Difficulty, count int) []GeneratedQuestion {
	if count <= 0 {
		return nil
	}

	technical := []GeneratedQuestion{
		{
			QuestionText: fmt.Sprintf("Describe your experience with the key technologies required for a %s position.", jobRole),
			Category:     string(interview.CategoryTechnical),
			KeyPoints: []string{
				"Specific technologies and frameworks",
				"Years of experience with each",
				"Real-world projects where you used them",
				"Depth of knowledge demonstrated",
			},
			EvaluationCriteria: interview.EvaluationCriteria{
				Clarity:   "Clear articulation of technical experience",
				Depth:     "Demonstrates deep understanding of technologies",
				Relevance: "Experience aligns with job requirements",
			},
		},
		{
			QuestionText: "Walk me through how you would approach solving a complex technical problem in this role.",
			Category:     string(interview.CategoryTechnical),
			KeyPoints: []string{
				"Problem analysis and breakdown",
				"Solution design approach",
				"Consideration of trade-offs",
				"Testing and validation strategy",
			},
			EvaluationCriteria: interview.EvaluationCriteria{
				Clarity:   "Structured and logical explanation",
				Depth:     "Shows systematic problem-solving approach",
				Relevance: "Practical and applicable to real scenarios",
			},
		},
		{
			QuestionText: "What are the most important best practices you follow in your development work?",
			Category:     string(interview.CategoryTechnical),
			KeyPoints: []string{
				"Code quality and maintainability",
				"Testing and documentation",
				"Version control practices",
				"Security considerations",
			},
			EvaluationCriteria: interview.EvaluationCriteria{
				Clarity:   "Well-articulated practices",
				Depth:     "Understanding of why practices matter",
				Relevance: "Industry-standard approaches",
			},
		},
	}

	behavioral := []GeneratedQuestion{
		{
			QuestionText: "Tell me about a challenging project you worked on and how you overcame the obstacles.",
			Category:     string(interview.CategoryBehavioral),
			KeyPoints: []string{
				"Specific situation and context",
				"Challenges faced",
				"Actions taken to overcome them",
				"Results and lessons learned",
			},
			EvaluationCriteria: interview.EvaluationCriteria{
				Clarity:   "Clear STAR format response",
				Depth:     "Demonstrates problem-solving and resilience",
				Relevance: "Applicable to the target role",
			},
		},
		{
			QuestionText: "Describe a time when you had to work with a difficult team member. How did you handle it?",
			Category:     string(interview.CategoryBehavioral),
			KeyPoints: []string{
				"Situation description",
				"Communication approach",
				"Conflict resolution strategy",
				"Outcome and relationship improvement",
			},
			EvaluationCriteria: interview.EvaluationCriteria{
				Clarity:   "Honest and professional response",
				Depth:     "Shows emotional intelligence",
				Relevance: "Demonstrates teamwork skills",
			},
		},
		{
			QuestionText: "How do you prioritize tasks when you have multiple deadlines?",
			Category:     string(interview.CategoryBehavioral),
			KeyPoints: []string{
				"Prioritization framework",
				"Communication with stakeholders",
				"Time management techniques",
				"Handling competing priorities",
			},
			EvaluationCriteria: interview.EvaluationCriteria{
				Clarity:   "Clear methodology explained",
				Depth:     "Shows organizational skills",
				Relevance: "Practical and effective approach",
			},
		},
	}

	situational := []GeneratedQuestion{
		{
			QuestionText: fmt.Sprintf("If you were hired for this %s position, what would you focus on in your first 90 days?", jobRole),
			Category:     string(interview.CategorySituational),
			KeyPoints: []string{
				"Learning and onboarding plan",
				"Relationship building",
				"Quick wins identification",
				"Long-term strategy alignment",
			},
			EvaluationCriteria: interview.EvaluationCriteria{
				Clarity:   "Well-structured 90-day plan",
				Depth:     "Shows strategic thinking",
				Relevance: "Aligned with role expectations",
			},
		},
		{
			QuestionText: "How would you handle a situation where you disagree with a technical decision made by your team lead?",
			Category:     string(interview.CategorySituational),
			KeyPoints: []string{
				"Respectful communication",
				"Data-driven arguments",
				"Willingness to understand other perspectives",
				"Team collaboration",
			},
			EvaluationCriteria: interview.EvaluationCriteria{
				Clarity:   "Professional approach outlined",
				Depth:     "Shows maturity and diplomacy",
				Relevance: "Demonstrates good judgment",
			},
		},
	}

	var selected []GeneratedQuestion
	switch t {
	case interview.TypeTechnical:
		selected = append(selected, technical[:min(count, len(technical))]...)
	case interview.TypeBehavioral:
		selected = append(selected, behavioral[:min(count, len(behavioral))]...)
	default:
		techCount := (count + 1) / 2
		selected = append(selected, technical[:min(techCount, len(technical))]...)
		selected = append(selected, behavioral[:min(count-techCount, len(behavioral))]...)
	}

	for len(selected) < count {
		selected = append(selected, situational[len(selected)%len(situational)])
	}

	for i := range selected {
		selected[i].Difficulty = string(d)
	}
	return selected[:count]
}
