package store

import (
	"database/sql"
	"errors"
	"fmt"

	"readtutor/internal/model"
)

const profileColumns = `name, grade, major, gender,
	cet4_taken, cet4_score, cet4_reading_score,
	cet6_taken, cet6_score, cet6_reading_score,
	other_scores, exam_name, total_score, reading_score,
	exam1_score, exam2_score, exam3_score, exam4_score,
	post_score, after_score, false_id,
	post_strategies_score, after_strategies_score`

// GetProfile returns the learner profile by name, or nil if absent.
func (s *Store) GetProfile(name string) (*model.LearnerProfile, error) {
	row := s.db.QueryRow(
		`SELECT `+profileColumns+` FROM learner_profiles WHERE name = ?`, name,
	)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanProfile(row *sql.Row) (*model.LearnerProfile, error) {
	var p model.LearnerProfile
	fields := []*string{
		&p.Grade, &p.Major, &p.Gender,
		&p.CET4Taken, &p.CET4Score, &p.CET4ReadingScore,
		&p.CET6Taken, &p.CET6Score, &p.CET6ReadingScore,
		&p.OtherScores, &p.ExamName, &p.TotalScore, &p.ReadingScore,
		&p.Exam1Score, &p.Exam2Score, &p.Exam3Score, &p.Exam4Score,
		&p.PostScore, &p.AfterScore, &p.FalseID,
		&p.PostStrategiesScore, &p.AfterStrategiesScore,
	}
	dest := make([]any, 0, len(fields)+1)
	dest = append(dest, &p.Name)
	nulls := make([]sql.NullString, len(fields))
	for i := range nulls {
		dest = append(dest, &nulls[i])
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	for i, n := range nulls {
		if n.Valid {
			*fields[i] = n.String
		}
	}
	return &p, nil
}

// CreateProfile inserts a new learner row. The name must be non-empty
// and not already present.
func (s *Store) CreateProfile(p model.LearnerProfile) error {
	if p.Name == "" {
		return fmt.Errorf("create profile: name is required")
	}
	_, err := s.db.Exec(
		`INSERT INTO learner_profiles (`+profileColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Grade, p.Major, p.Gender,
		p.CET4Taken, p.CET4Score, p.CET4ReadingScore,
		p.CET6Taken, p.CET6Score, p.CET6ReadingScore,
		p.OtherScores, p.ExamName, p.TotalScore, p.ReadingScore,
		p.Exam1Score, p.Exam2Score, p.Exam3Score, p.Exam4Score,
		p.PostScore, p.AfterScore, p.FalseID,
		p.PostStrategiesScore, p.AfterStrategiesScore,
	)
	return err
}

// UpdateProfile applies a partial update to the learner row by name.
// If the learner does not exist yet, the update degrades to a create so
// first submissions work without a prior profile (upsert semantics).
// Nil fields in upd are left untouched.
func (s *Store) UpdateProfile(name string, upd model.ProfileUpdate) error {
	if name == "" {
		return fmt.Errorf("update profile: name is required")
	}

	existing, err := s.GetProfile(name)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.CreateProfile(applyUpdate(model.LearnerProfile{Name: name}, upd))
	}

	set, args := updateClauses(upd)
	if len(set) == 0 {
		return nil
	}
	query := `UPDATE learner_profiles SET `
	for i, clause := range set {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	query += ` WHERE name = ?`
	args = append(args, name)
	_, err = s.db.Exec(query, args...)
	return err
}

func updateClauses(upd model.ProfileUpdate) ([]string, []any) {
	cols := []struct {
		name  string
		value *string
	}{
		{"grade", upd.Grade},
		{"major", upd.Major},
		{"gender", upd.Gender},
		{"cet4_taken", upd.CET4Taken},
		{"cet4_score", upd.CET4Score},
		{"cet4_reading_score", upd.CET4ReadingScore},
		{"cet6_taken", upd.CET6Taken},
		{"cet6_score", upd.CET6Score},
		{"cet6_reading_score", upd.CET6ReadingScore},
		{"other_scores", upd.OtherScores},
		{"exam_name", upd.ExamName},
		{"total_score", upd.TotalScore},
		{"reading_score", upd.ReadingScore},
		{"exam1_score", upd.Exam1Score},
		{"exam2_score", upd.Exam2Score},
		{"exam3_score", upd.Exam3Score},
		{"exam4_score", upd.Exam4Score},
		{"post_score", upd.PostScore},
		{"after_score", upd.AfterScore},
		{"false_id", upd.FalseID},
		{"post_strategies_score", upd.PostStrategiesScore},
		{"after_strategies_score", upd.AfterStrategiesScore},
	}
	var set []string
	var args []any
	for _, c := range cols {
		if c.value != nil {
			set = append(set, c.name+" = ?")
			args = append(args, *c.value)
		}
	}
	return set, args
}

func applyUpdate(p model.LearnerProfile, upd model.ProfileUpdate) model.LearnerProfile {
	pairs := []struct {
		dst *string
		src *string
	}{
		{&p.Grade, upd.Grade},
		{&p.Major, upd.Major},
		{&p.Gender, upd.Gender},
		{&p.CET4Taken, upd.CET4Taken},
		{&p.CET4Score, upd.CET4Score},
		{&p.CET4ReadingScore, upd.CET4ReadingScore},
		{&p.CET6Taken, upd.CET6Taken},
		{&p.CET6Score, upd.CET6Score},
		{&p.CET6ReadingScore, upd.CET6ReadingScore},
		{&p.OtherScores, upd.OtherScores},
		{&p.ExamName, upd.ExamName},
		{&p.TotalScore, upd.TotalScore},
		{&p.ReadingScore, upd.ReadingScore},
		{&p.Exam1Score, upd.Exam1Score},
		{&p.Exam2Score, upd.Exam2Score},
		{&p.Exam3Score, upd.Exam3Score},
		{&p.Exam4Score, upd.Exam4Score},
		{&p.PostScore, upd.PostScore},
		{&p.AfterScore, upd.AfterScore},
		{&p.FalseID, upd.FalseID},
		{&p.PostStrategiesScore, upd.PostStrategiesScore},
		{&p.AfterStrategiesScore, upd.AfterStrategiesScore},
	}
	for _, pair := range pairs {
		if pair.src != nil {
			*pair.dst = *pair.src
		}
	}
	return p
}

// ProfileCount returns the number of learner profiles.
func (s *Store) ProfileCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM learner_profiles`).Scan(&count)
	return count, err
}
