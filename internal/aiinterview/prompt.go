package aiinterview

import (
	"fmt"
	"strings"

	"github.com/saulo-duarte/mockinterview-lambda/internal/config"
	"github.com/saulo-duarte/mockinterview-lambda/internal/interview"
)

const questionPrompt = `You are an expert technical interviewer. Generate %d interview questions for the following position:

Job Role: %s
Job Description: %s
Interview Type: %s
Difficulty Level: %s
%s
Generate a mix of questions based on the interview type:
- If "Technical": Focus on technical skills, problem-solving, and domain knowledge
- If "Behavioral": Focus on past experiences, soft skills, and situational responses
- If "Mixed": Include both technical and behavioral questions

For each question, provide:
1. The question text
2. Category (Technical, Behavioral, or Situational)
3. Key points that should be covered in a good answer
4. Evaluation criteria

Return ONLY valid JSON in this exact format, no additional text:
{
  "questions": [
    {
      "questionText": "string",
      "category": "Technical|Behavioral|Situational",
      "difficulty": "Easy|Medium|Hard",
      "keyPoints": ["point1", "point2", "point3"],
      "evaluationCriteria": {
        "clarity": "What to look for in terms of clarity",
        "depth": "What depth of knowledge is expected",
        "relevance": "How relevant the answer should be"
      }
    }
  ]
}`

const feedbackPrompt = `You are an expert interview evaluator. Analyze the following interview responses and provide comprehensive feedback.

Job Role: %s
Interview Type: %s

Questions and Answers:
%s
Provide a detailed evaluation in the following JSON format (ONLY JSON, no additional text):
{
  "overallScore": <number 0-10>,
  "overallSummary": "A comprehensive summary of the interview performance",
  "technicalScore": <number 0-10 or null if no technical questions>,
  "behavioralScore": <number 0-10 or null if no behavioral questions>,
  "communicationScore": <number 0-10>,
  "strengths": ["strength1", "strength2", "strength3"],
  "improvements": ["improvement1", "improvement2", "improvement3"],
  "recommendations": ["recommendation1", "recommendation2", "recommendation3"],
  "questionAnalysis": [
    {
      "questionIndex": 0,
      "score": <number 0-10>,
      "feedback": "Detailed feedback for this question",
      "keyPointsCovered": ["point1", "point2"]
    }
  ],
  "metricsData": {
    "categoryScores": {
      "Technical": <number 0-10>,
      "Behavioral": <number 0-10>,
      "Situational": <number 0-10>
    },
    "skillsAssessed": ["skill1", "skill2", "skill3"]
  }
}

Evaluation Guidelines:
- Be constructive and encouraging
- Provide specific, actionable feedback
- Consider both content quality and communication clarity
- Assess how well key points were addressed
- Evaluate the depth and relevance of answers`

const followUpPrompt = `You are conducting a %s interview for a %s position.

The candidate just answered: "%s"

Generate ONE insightful follow-up question that:
1. Probes deeper into their answer
2. Clarifies any ambiguous points
3. Assesses their depth of knowledge

Return ONLY the follow-up question text, nothing else.`

type QuestionPromptInput struct {
	JobRole        string
	JobDescription string
	InterviewType  interview.InterviewType
	Difficulty     interview.Difficulty
	Industry       string
	Skills         []string
	Count          int
}

type AnsweredQuestion struct {
	Question  string
	Category  interview.Category
	KeyPoints []string
	Answer    string
	Duration  *int
}

type FeedbackPromptInput struct {
	JobRole       string
	InterviewType interview.InterviewType
	Answers       []AnsweredQuestion
}

// QuestionCount returns how many questions a session of the given difficulty gets.
func QuestionCount(d interview.Difficulty, counts config.QuestionCounts) int {
	switch d {
	case interview.DifficultyEasy:
		return counts.Easy
	case interview.DifficultyHard:
		return counts.Hard
	default:
		return counts.Medium
	}
}

func BuildQuestionPrompt(in QuestionPromptInput) string {
	var profile strings.Builder
	if in.Industry != "" {
		fmt.Fprintf(&profile, "Industry: %s\n", in.Industry)
	}
	if len(in.Skills) > 0 {
		fmt.Fprintf(&profile, "Candidate Skills: %s\n", strings.Join(in.Skills, ", "))
	}

	return fmt.Sprintf(questionPrompt,
		in.Count,
		in.JobRole,
		in.JobDescription,
		in.InterviewType,
		in.Difficulty,
		profile.String(),
	)
}

func BuildFeedbackPrompt(in FeedbackPromptInput) string {
	var qa strings.Builder
	for i, a := range in.Answers {
		duration := "N/A"
		if a.Duration != nil {
			duration = fmt.Sprintf("%d", *a.Duration)
		}
		fmt.Fprintf(&qa, "Q%d [%s]: %s\n", i+1, a.Category, a.Question)
		fmt.Fprintf(&qa, "Expected Key Points: %s\n", strings.Join(a.KeyPoints, ", "))
		fmt.Fprintf(&qa, "Candidate's Answer: %s\n", a.Answer)
		fmt.Fprintf(&qa, "Response Duration: %s seconds\n\n", duration)
	}

	return fmt.Sprintf(feedbackPrompt, in.JobRole, in.InterviewType, qa.String())
}

func BuildFollowUpPrompt(jobRole string, interviewType interview.InterviewType, previousAnswer string) string {
	return fmt.Sprintf(followUpPrompt, interviewType, jobRole, previousAnswer)
}
