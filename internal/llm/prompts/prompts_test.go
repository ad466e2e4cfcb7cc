package prompts

import (
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func testProfile() Profile {
	return Profile{
		Name:                "alice",
		Grade:               "sophomore",
		Major:               "Physics",
		Gender:              "female",
		CET4Score:           "520",
		CET4ReadingScore:    "180",
		CET6Score:           "N/A",
		CET6ReadingScore:    "N/A",
		OtherScores:         "N/A",
		PostScore:           "70",
		PostStrategiesScore: "40",
		FalseID:             "1-2,2-3",
	}
}

func assertPair(t *testing.T, msgs []openai.ChatCompletionMessage) {
	t.Helper()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("first message role = %q, want system", msgs[0].Role)
	}
	if msgs[1].Role != openai.ChatMessageRoleUser {
		t.Errorf("second message role = %q, want user", msgs[1].Role)
	}
	if msgs[0].Content == "" || msgs[1].Content == "" {
		t.Error("messages must not be empty")
	}
}

func TestBuildProfileAnalysis(t *testing.T) {
	msgs, err := BuildProfileAnalysis(testProfile())
	if err != nil {
		t.Fatalf("BuildProfileAnalysis: %v", err)
	}
	assertPair(t, msgs)
	for _, want := range []string{"alice", "sophomore", "520", "1-2,2-3"} {
		if !strings.Contains(msgs[1].Content, want) {
			t.Errorf("user message missing %q:\n%s", want, msgs[1].Content)
		}
	}
}

func TestBuildWrongAnswerAnalysis(t *testing.T) {
	questions := []WrongQuestion{
		{ExamID: 1, QuestionNum: 2, Excerpt: "Coffee was first discovered...", Question: "Where did coffee originate?", Answer: "Ethiopia"},
		{ExamID: 2, QuestionNum: 3, Excerpt: "Sleep is essential...", Question: "How many hours?", Answer: "Seven to nine"},
	}
	msgs, err := BuildWrongAnswerAnalysis(testProfile(), questions)
	if err != nil {
		t.Fatalf("BuildWrongAnswerAnalysis: %v", err)
	}
	assertPair(t, msgs)
	if !strings.Contains(msgs[1].Content, "Wrong question 1:") {
		t.Errorf("questions should be numbered from 1:\n%s", msgs[1].Content)
	}
	if !strings.Contains(msgs[1].Content, "Ethiopia") || !strings.Contains(msgs[1].Content, "Seven to nine") {
		t.Errorf("answers missing from user message:\n%s", msgs[1].Content)
	}
}

func TestBuildStrategySuggestion(t *testing.T) {
	msgs, err := BuildStrategySuggestion(testProfile(), "40", "intermediate")
	if err != nil {
		t.Fatalf("BuildStrategySuggestion: %v", err)
	}
	assertPair(t, msgs)
	if !strings.Contains(msgs[1].Content, "40/75") {
		t.Errorf("strategy score missing:\n%s", msgs[1].Content)
	}
	if !strings.Contains(msgs[1].Content, "intermediate") {
		t.Errorf("level missing:\n%s", msgs[1].Content)
	}
}

func TestBuildFinalSummary(t *testing.T) {
	scores := SummaryScores{
		PostScore:             "50",
		AfterScore:            "75",
		PostStrategiesScore:   "40",
		AfterStrategiesScore:  "60",
		ScoreImprovement:      50,
		StrategiesImprovement: 50,
		ReadingLevel:          "intermediate",
		StrategyLevel:         "advanced",
	}
	msgs, err := BuildFinalSummary(testProfile(), scores)
	if err != nil {
		t.Fatalf("BuildFinalSummary: %v", err)
	}
	assertPair(t, msgs)
	if !strings.Contains(msgs[1].Content, "50.0%") {
		t.Errorf("improvement percentage missing:\n%s", msgs[1].Content)
	}
	if !strings.Contains(msgs[1].Content, "75/100") {
		t.Errorf("post-test score missing:\n%s", msgs[1].Content)
	}
}

func TestBuildChat(t *testing.T) {
	msgs, err := BuildChat(testProfile(), "How can I read faster?")
	if err != nil {
		t.Fatalf("BuildChat: %v", err)
	}
	assertPair(t, msgs)
	if !strings.Contains(msgs[1].Content, "How can I read faster?") {
		t.Errorf("learner message missing:\n%s", msgs[1].Content)
	}
}
