package store

import (
	"fmt"

	"readtutor/internal/model"
)

// ExportAllProfiles returns every learner profile ordered by name, for
// the export subcommand.
func (s *Store) ExportAllProfiles() ([]model.LearnerProfile, error) {
	rows, err := s.db.Query(`SELECT name FROM learner_profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var profiles []model.LearnerProfile
	for _, name := range names {
		p, err := s.GetProfile(name)
		if err != nil {
			return nil, fmt.Errorf("get profile %q: %w", name, err)
		}
		if p != nil {
			profiles = append(profiles, *p)
		}
	}
	return profiles, nil
}
