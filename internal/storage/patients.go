package storage

import (
	"fmt"

	"github.com/neubond/emgdash/internal/models"
)

// ListPatients returns all patient profiles ordered by name.
func (s *Storage) ListPatients() ([]models.Patient, error) {
	if cached, ok := s.cache.patients.Get("all"); ok {
		return cached, nil
	}

	rows, err := s.DB.Query(`
        SELECT id, name
        FROM patient_profiles
        ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	var patients []models.Patient
	for rows.Next() {
		var p models.Patient
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.cache.patients.Add("all", patients)
	return patients, nil
}
