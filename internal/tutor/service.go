// Package tutor orchestrates the tutoring operations: it joins learner
// state with the exam bank, builds prompts, calls the completion model
// and guarantees the caller always gets prose back.
package tutor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"readtutor/internal/catalog"
	"readtutor/internal/llm"
	"readtutor/internal/llm/prompts"
	"readtutor/internal/model"
	"readtutor/internal/store"
)

// Completer is the completion client surface the service needs.
type Completer interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage) llm.Outcome
}

// preTestExamIDs are the exams whose wrong answers feed the analysis.
var preTestExamIDs = []int{1, 2}

type Service struct {
	store    *store.Store
	llm      Completer
	catalog  *catalog.Catalog
	deadline time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New builds the tutoring service. The completion deadline is the
// client timeout plus an explicit margin, so the outer bound always
// outlives the transport's own.
func New(s *store.Store, completer Completer, cat *catalog.Catalog, clientTimeout, margin time.Duration) *Service {
	return &Service{
		store:    s,
		llm:      completer,
		catalog:  cat,
		deadline: clientTimeout + margin,
		locks:    make(map[string]*sync.Mutex),
	}
}

// exampleProfile is the deterministic substitute used when a learner
// cannot be loaded, so the analysis endpoints stay demonstrable.
func exampleProfile(name string) model.LearnerProfile {
	return model.LearnerProfile{
		Name:                 name,
		Grade:                "junior",
		Major:                "Computer Science",
		Gender:               "male",
		PostScore:            "80",
		AfterScore:           "90",
		FalseID:              "1-2,1-3,2-1",
		PostStrategiesScore:  "45",
		AfterStrategiesScore: "60",
	}
}

// ResolveProfile loads the learner's profile, substituting the example
// record when the learner is unknown or the read fails.
func (s *Service) ResolveProfile(name string) (model.LearnerProfile, model.ProfileSource) {
	p, err := s.store.GetProfile(name)
	if err != nil {
		slog.Error("profile lookup failed, using example data", "name", name, "error", err)
		return exampleProfile(name), model.SourceExample
	}
	if p == nil {
		slog.Warn("learner not found, using example data", "name", name)
		return exampleProfile(name), model.SourceExample
	}
	return *p, model.SourceReal
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func promptProfile(p model.LearnerProfile) prompts.Profile {
	return prompts.Profile{
		Name:                orNA(p.Name),
		Grade:               orNA(p.Grade),
		Major:               orNA(p.Major),
		Gender:              orNA(p.Gender),
		CET4Score:           orNA(p.CET4Score),
		CET4ReadingScore:    orNA(p.CET4ReadingScore),
		CET6Score:           orNA(p.CET6Score),
		CET6ReadingScore:    orNA(p.CET6ReadingScore),
		OtherScores:         orNA(p.OtherScores),
		PostScore:           orNA(p.PostScore),
		PostStrategiesScore: orNA(p.PostStrategiesScore),
		FalseID:             orNA(p.FalseID),
	}
}

// complete runs one bounded completion and maps failures to fallback
// text. chatMessage is only consulted for the chat task.
func (s *Service) complete(ctx context.Context, kind prompts.TaskKind, messages []openai.ChatCompletionMessage, chatMessage string) string {
	cctx, cancel := context.WithTimeout(ctx, s.deadline)
	defer cancel()

	out := s.llm.Complete(cctx, messages)
	if out.Success && out.Content != "" {
		return out.Content
	}
	slog.Warn("completion failed, serving fallback",
		"task", string(kind), "kind", string(out.Kind), "message", out.Message)
	return selectFallback(kind, out, chatMessage)
}

// AnalyzeProfile returns a reading ability analysis for the learner.
func (s *Service) AnalyzeProfile(ctx context.Context, name string) string {
	profile, source := s.ResolveProfile(name)
	slog.Info("analyzing learner profile", "name", name, "source", string(source))

	messages, err := prompts.BuildProfileAnalysis(promptProfile(profile))
	if err != nil {
		slog.Error("building profile analysis prompt failed", "name", name, "error", err)
		return longFormFallback(prompts.TaskProfileAnalysis, "")
	}
	return s.complete(ctx, prompts.TaskProfileAnalysis, messages, "")
}

const (
	noWrongAnswersText = "No wrong-answer records were found, so there is nothing to analyze."

	unparseableWrongIDsFmt = `# Wrong Answer Analysis

## Parsing Result

Your wrong-answer records could not be parsed. The raw data was: %s

## General Reading Advice

Even without an analysis of your specific mistakes, the following habits improve English reading comprehension:

1. **Preview**: skim the title, the first and last paragraphs and any figures before reading
2. **Ask questions**: questioning the text as you read strengthens memory and understanding
3. **Infer from context**: use surrounding clues to work out unknown words
4. **Mix intensive and extensive reading**: choose the approach that fits your purpose
5. **Review regularly**: keep a log of your mistakes and revisit it

Save the specific wrong-answer details next time you take a test so the system can give a more targeted analysis.`

	unresolvableWrongIDsFmt = `# Wrong Answer Analysis

The system found wrong-answer records (%s) but could not retrieve the details of those questions. Possible reasons:

1. The question numbers do not match the exam bank
2. The exam ID does not exist or is malformed

## General Reading Advice

The following habits improve English reading comprehension:

1. **Locate information precisely**: practice finding key words and topic sentences quickly
2. **Strengthen inference**: practice drawing reasonable conclusions from the text
3. **Analyze syntax**: learn to untangle complex sentence structures, especially long sentences
4. **Infer vocabulary**: work out word meaning from context rather than relying on memorization alone

Record the details of your wrong answers to get a more targeted analysis next time.`
)

// AnalyzeWrongAnswers explains the learner's wrong answers. It degrades
// to explanatory canned text when there is nothing usable to analyze.
func (s *Service) AnalyzeWrongAnswers(ctx context.Context, name string) string {
	profile, source := s.ResolveProfile(name)
	slog.Info("analyzing wrong answers", "name", name, "source", string(source), "false_id", profile.FalseID)

	if profile.FalseID == "" {
		return noWrongAnswersText
	}

	refs := catalog.ParseWrongIDs(profile.FalseID, preTestExamIDs)
	if len(refs) == 0 {
		return fmt.Sprintf(unparseableWrongIDsFmt, profile.FalseID)
	}

	resolved, err := s.catalog.ResolveAll(refs)
	if err != nil {
		slog.Error("resolving wrong answers failed", "name", name, "error", err)
		return fmt.Sprintf(unresolvableWrongIDsFmt, profile.FalseID)
	}
	if len(resolved) == 0 {
		return fmt.Sprintf(unresolvableWrongIDsFmt, profile.FalseID)
	}

	questions := make([]prompts.WrongQuestion, 0, len(resolved))
	for _, rq := range resolved {
		questions = append(questions, prompts.WrongQuestion{
			ExamID:      rq.ExamID,
			QuestionNum: rq.QuestionNum,
			Excerpt:     rq.Excerpt,
			Question:    rq.Question,
			Answer:      rq.Answer,
		})
	}

	messages, err := prompts.BuildWrongAnswerAnalysis(promptProfile(profile), questions)
	if err != nil {
		slog.Error("building wrong-answer prompt failed", "name", name, "error", err)
		return longFormFallback(prompts.TaskWrongAnswers, "")
	}
	return s.complete(ctx, prompts.TaskWrongAnswers, messages, "")
}

// SuggestStrategies recommends reading strategies for the learner.
func (s *Service) SuggestStrategies(ctx context.Context, name string) string {
	profile, source := s.ResolveProfile(name)
	slog.Info("suggesting strategies", "name", name, "source", string(source))

	level := StrategyLevel(parseScore(profile.PostStrategiesScore))
	messages, err := prompts.BuildStrategySuggestion(
		promptProfile(profile), orNA(profile.PostStrategiesScore), level)
	if err != nil {
		slog.Error("building strategy prompt failed", "name", name, "error", err)
		return longFormFallback(prompts.TaskStrategies, "")
	}
	return s.complete(ctx, prompts.TaskStrategies, messages, "")
}

// FinalSummary produces the pre/post learning summary report.
func (s *Service) FinalSummary(ctx context.Context, name string) string {
	profile, source := s.ResolveProfile(name)
	slog.Info("generating final summary", "name", name, "source", string(source))

	post := parseScoreFloat(profile.PostScore)
	after := parseScoreFloat(profile.AfterScore)
	postStrategies := parseScoreFloat(profile.PostStrategiesScore)
	afterStrategies := parseScoreFloat(profile.AfterStrategiesScore)

	scores := prompts.SummaryScores{
		PostScore:             orNA(profile.PostScore),
		AfterScore:            orNA(profile.AfterScore),
		PostStrategiesScore:   orNA(profile.PostStrategiesScore),
		AfterStrategiesScore:  orNA(profile.AfterStrategiesScore),
		ScoreImprovement:      improvement(post, after),
		StrategiesImprovement: improvement(postStrategies, afterStrategies),
		ReadingLevel:          ReadingLevel(int(after)),
		StrategyLevel:         StrategyLevel(int(afterStrategies)),
	}

	messages, err := prompts.BuildFinalSummary(promptProfile(profile), scores)
	if err != nil {
		slog.Error("building summary prompt failed", "name", name, "error", err)
		return longFormFallback(prompts.TaskSummary, "")
	}
	return s.complete(ctx, prompts.TaskSummary, messages, "")
}

// Chat answers a free-form learner message.
func (s *Service) Chat(ctx context.Context, name, message string) string {
	profile, source := s.ResolveProfile(name)
	slog.Info("handling chat message", "name", name, "source", string(source))

	messages, err := prompts.BuildChat(promptProfile(profile), message)
	if err != nil {
		slog.Error("building chat prompt failed", "name", name, "error", err)
		return chatReply(message)
	}
	return s.complete(ctx, prompts.TaskChat, messages, message)
}

// learnerLock returns the mutex guarding one learner's read-modify-write
// submissions.
func (s *Service) learnerLock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[name] = lock
	}
	return lock
}

// SubmitExamResult records one exam score. Exams 1 and 2 accumulate the
// pre-test total and the wrong-answer union; exams 3 and 4 accumulate
// the post-test total and leave wrong answers alone.
func (s *Service) SubmitExamResult(result model.ExamResult) error {
	if result.Name == "" {
		return fmt.Errorf("submit exam result: name is required")
	}
	if result.ExamID < 1 || result.ExamID > 4 {
		return fmt.Errorf("submit exam result: exam id %d out of range 1..4", result.ExamID)
	}

	lock := s.learnerLock(result.Name)
	lock.Lock()
	defer lock.Unlock()

	profile, err := s.store.GetProfile(result.Name)
	if err != nil {
		return fmt.Errorf("load profile for %q: %w", result.Name, err)
	}
	if profile == nil {
		profile = &model.LearnerProfile{Name: result.Name}
	}

	score := fmt.Sprintf("%d", result.Score)
	var upd model.ProfileUpdate

	switch result.ExamID {
	case 1:
		total := fmt.Sprintf("%d", result.Score+parseScore(profile.Exam2Score))
		merged := mergeWrongTokens(profile.FalseID, result.WrongQuestions)
		upd = model.ProfileUpdate{Exam1Score: &score, PostScore: &total, FalseID: &merged}
	case 2:
		total := fmt.Sprintf("%d", result.Score+parseScore(profile.Exam1Score))
		merged := mergeWrongTokens(profile.FalseID, result.WrongQuestions)
		upd = model.ProfileUpdate{Exam2Score: &score, PostScore: &total, FalseID: &merged}
	case 3:
		total := fmt.Sprintf("%d", result.Score+parseScore(profile.Exam4Score))
		upd = model.ProfileUpdate{Exam3Score: &score, AfterScore: &total}
	case 4:
		total := fmt.Sprintf("%d", result.Score+parseScore(profile.Exam3Score))
		upd = model.ProfileUpdate{Exam4Score: &score, AfterScore: &total}
	}

	if err := s.store.UpdateProfile(result.Name, upd); err != nil {
		return fmt.Errorf("save exam result for %q: %w", result.Name, err)
	}
	slog.Info("exam result recorded",
		"name", result.Name, "exam_id", result.ExamID, "score", result.Score)
	return nil
}

// SubmitStrategyResult records a strategy questionnaire score, routed
// to the pre-test or post-test slot.
func (s *Service) SubmitStrategyResult(result model.StrategyResult) error {
	if result.Name == "" {
		return fmt.Errorf("submit strategy result: name is required")
	}

	lock := s.learnerLock(result.Name)
	lock.Lock()
	defer lock.Unlock()

	score := fmt.Sprintf("%d", result.Score)
	var upd model.ProfileUpdate
	if result.IsPreTest {
		upd.PostStrategiesScore = &score
	} else {
		upd.AfterStrategiesScore = &score
	}

	if err := s.store.UpdateProfile(result.Name, upd); err != nil {
		return fmt.Errorf("save strategy result for %q: %w", result.Name, err)
	}
	slog.Info("strategy result recorded",
		"name", result.Name, "pre_test", result.IsPreTest, "score", result.Score)
	return nil
}
