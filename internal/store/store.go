package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := s.seedSurveys(); err != nil {
		return nil, fmt.Errorf("seed surveys: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS learner_profiles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		grade TEXT,
		major TEXT,
		gender TEXT,
		cet4_taken TEXT,
		cet4_score TEXT,
		cet4_reading_score TEXT,
		cet6_taken TEXT,
		cet6_score TEXT,
		cet6_reading_score TEXT,
		other_scores TEXT,
		exam_name TEXT,
		total_score TEXT,
		reading_score TEXT,
		exam1_score TEXT,
		exam2_score TEXT,
		exam3_score TEXT,
		exam4_score TEXT,
		post_score TEXT,
		after_score TEXT,
		false_id TEXT,
		post_strategies_score TEXT,
		after_strategies_score TEXT
	);

	CREATE TABLE IF NOT EXISTS exams (
		id INTEGER PRIMARY KEY,
		content TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exam_questions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		exam_id INTEGER NOT NULL,
		question_num INTEGER NOT NULL,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		UNIQUE (exam_id, question_num),
		FOREIGN KEY (exam_id) REFERENCES exams(id)
	);

	CREATE TABLE IF NOT EXISTS introduction (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS self_rate_items (
		id INTEGER PRIMARY KEY,
		content TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS strategy_items (
		id INTEGER PRIMARY KEY,
		content TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS import_metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}
