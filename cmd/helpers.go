package cmd

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/neubond/emgdash/internal/config"
	"github.com/neubond/emgdash/internal/emg"
	"github.com/neubond/emgdash/internal/export"
	"github.com/neubond/emgdash/internal/models"
	"github.com/neubond/emgdash/internal/storage"
)

// loadCfg loads the config file with defaults filled in.
func loadCfg() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// fetchRecords gathers raw records for the selected session IDs, either
// from the database or from a previously exported bundle file.
func fetchRecords(cfg *config.Config, fromFile string, sessionIDs []string) ([]models.RawRecord, error) {
	if fromFile != "" {
		records, err := export.ReadBundleFile(fromFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read bundle %s: %w", fromFile, err)
		}
		return filterRecords(records, sessionIDs), nil
	}

	st := storage.NewStorage(cfg)
	defer st.Close()

	records := make([]models.RawRecord, 0, len(sessionIDs))
	for _, id := range sessionIDs {
		rec, err := st.FetchSessionRecord(id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch session %s: %w", id, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// filterRecords keeps the given session IDs in the given order. An empty
// selection means all records, in file order.
func filterRecords(records []models.RawRecord, sessionIDs []string) []models.RawRecord {
	if len(sessionIDs) == 0 {
		return records
	}

	byID := make(map[string]models.RawRecord, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}

	var out []models.RawRecord
	for _, id := range sessionIDs {
		if rec, ok := byID[id]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// loadSelection validates records into sessions, preserving record order.
// Records arriving from foreign files without an ID get one assigned so
// the rest of the pipeline can key on it.
func loadSelection(records []models.RawRecord, coerceUnknown bool) ([]models.Session, error) {
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.New().String()
		}
		if coerceUnknown {
			records[i].PhaseMarkers = emg.CoerceUnknownMarkers(records[i].PhaseMarkers)
		}
	}

	byID, err := emg.Load(records)
	if err != nil {
		return nil, err
	}

	sessions := make([]models.Session, 0, len(records))
	for _, rec := range records {
		sessions = append(sessions, byID[rec.ID])
	}
	return sessions, nil
}
