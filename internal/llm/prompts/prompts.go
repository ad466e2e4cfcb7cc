// Package prompts builds the chat message pairs sent to the completion
// model. Each builder returns exactly two messages: a system prompt
// describing the tutoring task and a user message carrying the learner's
// data rendered from an embedded template.
package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"sync"
	"text/template"

	openai "github.com/sashabaranov/go-openai"
)

//go:embed templates/*.txt templates/*.tmpl
var templateFS embed.FS

// TaskKind names one of the tutoring tasks the model is asked to do.
type TaskKind string

const (
	TaskProfileAnalysis TaskKind = "profile_analysis"
	TaskWrongAnswers    TaskKind = "wrong_answers"
	TaskStrategies      TaskKind = "strategies"
	TaskSummary         TaskKind = "summary"
	TaskChat            TaskKind = "chat"
)

var (
	loadOnce      sync.Once
	loadErr       error
	systemPrompts map[TaskKind]string
	userTemplates map[TaskKind]*template.Template
)

var templateFuncs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
}

func ensureLoaded() error {
	loadOnce.Do(func() {
		systemPrompts = make(map[TaskKind]string)
		userTemplates = make(map[TaskKind]*template.Template)

		files := map[TaskKind]string{
			TaskProfileAnalysis: "profile",
			TaskWrongAnswers:    "wrong",
			TaskStrategies:      "strategies",
			TaskSummary:         "summary",
			TaskChat:            "chat",
		}
		for kind, base := range files {
			sys, err := templateFS.ReadFile("templates/" + base + "_system.txt")
			if err != nil {
				loadErr = fmt.Errorf("read system prompt for %s: %w", kind, err)
				return
			}
			systemPrompts[kind] = string(bytes.TrimSpace(sys))

			user, err := templateFS.ReadFile("templates/" + base + "_user.tmpl")
			if err != nil {
				loadErr = fmt.Errorf("read user template for %s: %w", kind, err)
				return
			}
			tmpl, err := template.New(base).Funcs(templateFuncs).Parse(string(user))
			if err != nil {
				loadErr = fmt.Errorf("parse user template for %s: %w", kind, err)
				return
			}
			userTemplates[kind] = tmpl
		}
	})
	return loadErr
}

// Profile carries display-ready learner fields for the templates.
// Empty values should already be replaced by "N/A" by the caller.
type Profile struct {
	Name                string
	Grade               string
	Major               string
	Gender              string
	CET4Score           string
	CET4ReadingScore    string
	CET6Score           string
	CET6ReadingScore    string
	OtherScores         string
	PostScore           string
	PostStrategiesScore string
	FalseID             string
}

// WrongQuestion is one resolved wrong answer for the analysis prompt.
type WrongQuestion struct {
	ExamID      int
	QuestionNum int
	Excerpt     string
	Question    string
	Answer      string
}

// SummaryScores carries the pre/post comparison for the summary prompt.
type SummaryScores struct {
	PostScore             string
	AfterScore            string
	PostStrategiesScore   string
	AfterStrategiesScore  string
	ScoreImprovement      float64
	StrategiesImprovement float64
	ReadingLevel          string
	StrategyLevel         string
}

// BuildProfileAnalysis builds the profile analysis message pair.
func BuildProfileAnalysis(p Profile) ([]openai.ChatCompletionMessage, error) {
	return build(TaskProfileAnalysis, p)
}

// BuildWrongAnswerAnalysis builds the wrong-answer analysis message pair.
func BuildWrongAnswerAnalysis(p Profile, questions []WrongQuestion) ([]openai.ChatCompletionMessage, error) {
	return build(TaskWrongAnswers, struct {
		Profile   Profile
		Questions []WrongQuestion
	}{p, questions})
}

// BuildStrategySuggestion builds the strategy recommendation message
// pair. Level is the learner's strategy level label.
func BuildStrategySuggestion(p Profile, strategiesScore, level string) ([]openai.ChatCompletionMessage, error) {
	return build(TaskStrategies, struct {
		Profile         Profile
		StrategiesScore string
		Level           string
	}{p, strategiesScore, level})
}

// BuildFinalSummary builds the learning summary message pair.
func BuildFinalSummary(p Profile, scores SummaryScores) ([]openai.ChatCompletionMessage, error) {
	return build(TaskSummary, struct {
		Profile Profile
		Scores  SummaryScores
	}{p, scores})
}

// BuildChat builds the free-form chat message pair.
func BuildChat(p Profile, message string) ([]openai.ChatCompletionMessage, error) {
	return build(TaskChat, struct {
		Profile Profile
		Message string
	}{p, message})
}

func build(kind TaskKind, data any) ([]openai.ChatCompletionMessage, error) {
	if err := ensureLoaded(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := userTemplates[kind].Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s prompt: %w", kind, err)
	}
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompts[kind]},
		{Role: openai.ChatMessageRoleUser, Content: buf.String()},
	}, nil
}
