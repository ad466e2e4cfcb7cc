package store

import (
	"database/sql"
	"errors"
	"fmt"

	"readtutor/internal/model"
)

// InsertExam stores an exam passage and its questions, replacing any
// previous version of the same exam id.
func (s *Store) InsertExam(e model.Exam) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO exams (id, content) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET content = ?`,
		e.ID, e.Content, e.Content,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM exam_questions WHERE exam_id = ?`, e.ID); err != nil {
		return err
	}
	for _, q := range e.Questions {
		if _, err := tx.Exec(
			`INSERT INTO exam_questions (exam_id, question_num, question, answer) VALUES (?, ?, ?, ?)`,
			e.ID, q.Number, q.Question, q.Answer,
		); err != nil {
			return fmt.Errorf("insert question %d of exam %d: %w", q.Number, e.ID, err)
		}
	}
	return tx.Commit()
}

// GetExamByID returns an exam with its questions, or nil if absent.
func (s *Store) GetExamByID(id int) (*model.Exam, error) {
	var e model.Exam
	err := s.db.QueryRow(`SELECT id, content FROM exams WHERE id = ?`, id).
		Scan(&e.ID, &e.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT question_num, question, answer FROM exam_questions
		 WHERE exam_id = ? ORDER BY question_num`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var q model.ExamQuestion
		if err := rows.Scan(&q.Number, &q.Question, &q.Answer); err != nil {
			return nil, err
		}
		e.Questions = append(e.Questions, q)
	}
	return &e, rows.Err()
}

// GetExamQuestion returns one question/answer pair, or nil when either
// the exam or the question number is missing.
func (s *Store) GetExamQuestion(examID, questionNum int) (*model.ExamQuestion, error) {
	var q model.ExamQuestion
	err := s.db.QueryRow(
		`SELECT question_num, question, answer FROM exam_questions
		 WHERE exam_id = ? AND question_num = ?`, examID, questionNum,
	).Scan(&q.Number, &q.Question, &q.Answer)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ExamCount returns the number of stored exams.
func (s *Store) ExamCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM exams`).Scan(&count)
	return count, err
}
