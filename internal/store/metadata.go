package store

import (
	"database/sql"
	"errors"
)

// GetImportedFileHash returns the recorded content hash for an imported
// exams file, or empty string if the file was never imported.
func (s *Store) GetImportedFileHash(path string) (string, error) {
	var hash string
	err := s.db.QueryRow(
		`SELECT value FROM import_metadata WHERE key = ?`, "import:"+path,
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return hash, err
}

// SetImportedFileHash records the content hash of an imported exams file.
func (s *Store) SetImportedFileHash(path, hash string) error {
	_, err := s.db.Exec(
		`INSERT INTO import_metadata (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = ?`,
		"import:"+path, hash, hash,
	)
	return err
}
