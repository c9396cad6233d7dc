package aiinterview_test

import (
	"testing"

	"github.com/saulo-duarte/mockinterview-lambda/internal/aiinterview"
	"github.com/saulo-duarte/mockinterview-lambda/internal/config"
	"github.com/saulo-duarte/mockinterview-lambda/internal/interview"
	"github.com/stretchr/testify/assert"
)

var testCounts = config.QuestionCounts{Easy: 5, Medium: 6, Hard: 8}

func TestQuestionCount(t *testing.T) {
	assert.Equal(t, 5, aiinterview.QuestionCount(interview.DifficultyEasy, testCounts))
	assert.Equal(t, 6, aiinterview.QuestionCount(interview.DifficultyMedium, testCounts))
	assert.Equal(t, 8, aiinterview.QuestionCount(interview.DifficultyHard, testCounts))
	assert.Equal(t, 6, aiinterview.QuestionCount("", testCounts))
}

func TestBuildQuestionPrompt(t *testing.T) {
	in := aiinterview.QuestionPromptInput{
		JobRole:        "Backend Engineer",
		JobDescription: "Build payment APIs in Go",
		InterviewType:  interview.TypeMixed,
		Difficulty:     interview.DifficultyHard,
		Count:          8,
	}

	t.Run("WithoutProfile", func(t *testing.T) {
		prompt := aiinterview.BuildQuestionPrompt(in)
		assert.Contains(t, prompt, "Generate 8 interview questions")
		assert.Contains(t, prompt, "Job Role: Backend Engineer")
		assert.Contains(t, prompt, "Job Description: Build payment APIs in Go")
		assert.Contains(t, prompt, "Interview Type: Mixed")
		assert.Contains(t, prompt, "Difficulty Level: Hard")
		assert.NotContains(t, prompt, "Industry:")
		assert.NotContains(t, prompt, "Candidate Skills:")
		assert.Contains(t, prompt, `"questions"`)
	})

	t.Run("WithProfile", func(t *testing.T) {
		in := in
		in.Industry = "Fintech"
		in.Skills = []string{"Go", "PostgreSQL"}
		prompt := aiinterview.BuildQuestionPrompt(in)
		assert.Contains(t, prompt, "Industry: Fintech\n")
		assert.Contains(t, prompt, "Candidate Skills: Go, PostgreSQL\n")
	})
}

func TestBuildFeedbackPrompt(t *testing.T) {
	ninety := 90
	prompt := aiinterview.BuildFeedbackPrompt(aiinterview.FeedbackPromptInput{
		JobRole:       "Backend Engineer",
		InterviewType: interview.TypeTechnical,
		Answers: []aiinterview.AnsweredQuestion{
			{
				Question:  "Explain channels",
				Category:  interview.CategoryTechnical,
				KeyPoints: []string{"buffering", "blocking"},
				Answer:    "Channels pass values between goroutines.",
				Duration:  &ninety,
			},
			{
				Question: "Describe a conflict",
				Category: interview.CategoryBehavioral,
				Answer:   "I talked it through.",
			},
		},
	})

	assert.Contains(t, prompt, "Job Role: Backend Engineer")
	assert.Contains(t, prompt, "Interview Type: Technical")
	assert.Contains(t, prompt, "Q1 [Technical]: Explain channels\n")
	assert.Contains(t, prompt, "Expected Key Points: buffering, blocking\n")
	assert.Contains(t, prompt, "Candidate's Answer: Channels pass values between goroutines.\n")
	assert.Contains(t, prompt, "Response Duration: 90 seconds")
	assert.Contains(t, prompt, "Q2 [Behavioral]: Describe a conflict\n")
	assert.Contains(t, prompt, "Response Duration: N/A seconds")
	assert.Contains(t, prompt, `"overallScore"`)
}

func TestBuildFollowUpPrompt(t *testing.T) {
	prompt := aiinterview.BuildFollowUpPrompt("SRE", interview.TypeBehavioral, "I fixed the outage by rolling back.")
	assert.Contains(t, prompt, "conducting a Behavioral interview for a SRE position")
	assert.Contains(t, prompt, `"I fixed the outage by rolling back."`)
	assert.Contains(t, prompt, "ONE insightful follow-up question")
}
