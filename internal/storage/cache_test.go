package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/neubond/emgdash/internal/models"
)

func TestQueryCacheTTL(t *testing.T) {
	cache := newQueryCache(50*time.Millisecond, 50*time.Millisecond)

	cache.patients.Add("all", []models.Patient{{ID: "p1", Name: "Jane"}})
	got, ok := cache.patients.Get("all")
	assert.True(t, ok)
	assert.Len(t, got, 1)

	time.Sleep(80 * time.Millisecond)
	_, ok = cache.patients.Get("all")
	assert.False(t, ok, "entries expire after the TTL")
}

func TestInvalidateDropsAllCaches(t *testing.T) {
	s := &Storage{cache: newQueryCache(time.Minute, time.Minute)}
	s.cache.patients.Add("all", []models.Patient{{ID: "p1"}})
	s.cache.sessions.Add("p1", []models.SessionMeta{{ID: "s1"}})
	s.cache.records.Add("s1", models.RawRecord{ID: "s1"})

	s.Invalidate()

	_, ok := s.cache.patients.Get("all")
	assert.False(t, ok)
	_, ok = s.cache.sessions.Get("p1")
	assert.False(t, ok)
	_, ok = s.cache.records.Get("s1")
	assert.False(t, ok)
}
