package catalog

import (
	"strings"
	"testing"

	"readtutor/internal/model"
	"readtutor/internal/store"
)

func newTestCatalog(t *testing.T) (*Catalog, *store.Store) {
	t.Helper()
	s, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s), s
}

func TestResolveQuestion(t *testing.T) {
	c, s := newTestCatalog(t)
	exam := model.Exam{
		ID:      1,
		Content: "Coffee was first discovered in Ethiopia.",
		Questions: []model.ExamQuestion{
			{Number: 1, Question: "Where did coffee originate?", Answer: "Ethiopia"},
		},
	}
	if err := s.InsertExam(exam); err != nil {
		t.Fatalf("InsertExam: %v", err)
	}

	rq, err := c.ResolveQuestion(model.WrongRef{ExamID: 1, QuestionNum: 1})
	if err != nil {
		t.Fatalf("ResolveQuestion: %v", err)
	}
	if rq == nil {
		t.Fatal("expected resolved question")
	}
	if rq.Excerpt != exam.Content || rq.Answer != "Ethiopia" {
		t.Errorf("resolved mismatch: %+v", rq)
	}
}

func TestResolveQuestionMissing(t *testing.T) {
	c, s := newTestCatalog(t)
	if err := s.InsertExam(model.Exam{ID: 1, Content: "text", Questions: []model.ExamQuestion{
		{Number: 1, Question: "q", Answer: "a"},
	}}); err != nil {
		t.Fatalf("InsertExam: %v", err)
	}

	if rq, err := c.ResolveQuestion(model.WrongRef{ExamID: 9, QuestionNum: 1}); err != nil || rq != nil {
		t.Errorf("missing exam: got %+v, %v; want nil, nil", rq, err)
	}
	if rq, err := c.ResolveQuestion(model.WrongRef{ExamID: 1, QuestionNum: 9}); err != nil || rq != nil {
		t.Errorf("missing question: got %+v, %v; want nil, nil", rq, err)
	}
}

func TestResolveQuestionTruncatesExcerpt(t *testing.T) {
	c, s := newTestCatalog(t)
	long := strings.Repeat("a", 800)
	if err := s.InsertExam(model.Exam{ID: 1, Content: long, Questions: []model.ExamQuestion{
		{Number: 1, Question: "q", Answer: "a"},
	}}); err != nil {
		t.Fatalf("InsertExam: %v", err)
	}

	rq, err := c.ResolveQuestion(model.WrongRef{ExamID: 1, QuestionNum: 1})
	if err != nil {
		t.Fatalf("ResolveQuestion: %v", err)
	}
	if !strings.HasSuffix(rq.Excerpt, truncationMarker) {
		t.Errorf("excerpt should carry truncation marker: %q", rq.Excerpt[len(rq.Excerpt)-40:])
	}
	if len([]rune(rq.Excerpt)) != excerptLimit+len([]rune(truncationMarker)) {
		t.Errorf("excerpt length = %d", len([]rune(rq.Excerpt)))
	}
}

func TestResolveAllSkipsUnresolvable(t *testing.T) {
	c, s := newTestCatalog(t)
	if err := s.InsertExam(model.Exam{ID: 1, Content: "text", Questions: []model.ExamQuestion{
		{Number: 1, Question: "q1", Answer: "a1"},
		{Number: 2, Question: "q2", Answer: "a2"},
	}}); err != nil {
		t.Fatalf("InsertExam: %v", err)
	}

	refs := []model.WrongRef{
		{ExamID: 1, QuestionNum: 1},
		{ExamID: 7, QuestionNum: 1},
		{ExamID: 1, QuestionNum: 2},
	}
	resolved, err := c.ResolveAll(refs)
	if err != nil {
		t.Fatalf("ResolveAll: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("resolved %d questions, want 2", len(resolved))
	}
	if resolved[0].Question != "q1" || resolved[1].Question != "q2" {
		t.Errorf("resolved order mismatch: %+v", resolved)
	}
}
