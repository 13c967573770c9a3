package storage

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/neubond/emgdash/internal/models"
)

// queryCache is the explicit, time-boxed memoization of remote query
// results. TTLs are short: the patient list barely moves, session rows
// change while a patient is exercising.
type queryCache struct {
	patients *expirable.LRU[string, []models.Patient]
	sessions *expirable.LRU[string, []models.SessionMeta]
	records  *expirable.LRU[string, models.RawRecord]
}

const cacheSize = 128

func newQueryCache(patientsTTL, sessionsTTL time.Duration) *queryCache {
	return &queryCache{
		patients: expirable.NewLRU[string, []models.Patient](cacheSize, nil, patientsTTL),
		sessions: expirable.NewLRU[string, []models.SessionMeta](cacheSize, nil, sessionsTTL),
		records:  expirable.NewLRU[string, models.RawRecord](cacheSize, nil, sessionsTTL),
	}
}

func (c *queryCache) purge() {
	c.patients.Purge()
	c.sessions.Purge()
	c.records.Purge()
}
