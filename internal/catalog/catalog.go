// Package catalog resolves wrong-answer references against the stored
// exam bank.
package catalog

import (
	"fmt"
	"log/slog"

	"readtutor/internal/model"
	"readtutor/internal/store"
)

// excerptLimit caps how much passage text goes into a prompt.
const excerptLimit = 500

const truncationMarker = "... (excerpt truncated)"

type Catalog struct {
	store *store.Store
}

func New(s *store.Store) *Catalog {
	return &Catalog{store: s}
}

// ResolveQuestion looks up the passage, question text and answer for a
// wrong-answer reference. It returns nil when the exam or question is
// missing so callers can skip unresolvable references.
func (c *Catalog) ResolveQuestion(ref model.WrongRef) (*model.ResolvedQuestion, error) {
	exam, err := c.store.GetExamByID(ref.ExamID)
	if err != nil {
		return nil, fmt.Errorf("get exam %d: %w", ref.ExamID, err)
	}
	if exam == nil {
		slog.Warn("exam not found for wrong answer", "exam_id", ref.ExamID)
		return nil, nil
	}

	q, err := c.store.GetExamQuestion(ref.ExamID, ref.QuestionNum)
	if err != nil {
		return nil, fmt.Errorf("get question %d of exam %d: %w", ref.QuestionNum, ref.ExamID, err)
	}
	if q == nil {
		slog.Warn("question not found for wrong answer",
			"exam_id", ref.ExamID, "question_num", ref.QuestionNum)
		return nil, nil
	}

	return &model.ResolvedQuestion{
		ExamID:      ref.ExamID,
		QuestionNum: ref.QuestionNum,
		Excerpt:     excerpt(exam.Content),
		Question:    q.Question,
		Answer:      q.Answer,
	}, nil
}

// ResolveAll resolves every reference it can, skipping the rest.
func (c *Catalog) ResolveAll(refs []model.WrongRef) ([]model.ResolvedQuestion, error) {
	var resolved []model.ResolvedQuestion
	for _, ref := range refs {
		rq, err := c.ResolveQuestion(ref)
		if err != nil {
			return nil, err
		}
		if rq != nil {
			resolved = append(resolved, *rq)
		}
	}
	return resolved, nil
}

func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLimit {
		return content
	}
	return string(runes[:excerptLimit]) + truncationMarker
}
