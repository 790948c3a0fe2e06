package db

import (
	"github.com/tride/tride/internal/models"
)

// Dashboard-sized cap, mirrors the original 200-row live query
const defaultQueryLimit = 200

// Query describes a live session feed
type Query struct {
	// DateKey restricts the feed to one calendar day; empty means all days
	DateKey string
	// Limit caps the number of sessions; 0 means the default cap
	Limit int
}

// Snapshot receives the full current result of a query. Incremental deltas
// are never delivered: consumers re-derive their views from each snapshot.
type Snapshot func(sessions []models.Session)

type subscriber struct {
	query Query
	fn    Snapshot
}

// Subscribe registers a live feed for a query. The current snapshot is
// delivered immediately, then a fresh one after every store mutation.
// Callbacks run synchronously on the mutating goroutine. The returned
// function cancels the subscription.
func (s *Store) Subscribe(q Query, fn Snapshot) (func(), error) {
	sessions, err := s.querySessions(q)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = subscriber{query: q, fn: fn}
	s.mu.Unlock()

	fn(sessions)

	cancel := func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
	return cancel, nil
}

// notify re-runs every subscribed query and pushes the fresh snapshots
func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sessions, err := s.querySessions(sub.query)
		if err != nil {
			continue // feed keeps its last snapshot on a transient failure
		}
		sub.fn(sessions)
	}
}

// querySessions runs a live-feed query: newest first, capped
func (s *Store) querySessions(q Query) ([]models.Session, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	query := s.db.Preload("Tags").Preload("Notes").
		Order("started_at DESC").
		Limit(limit)
	if q.DateKey != "" {
		query = query.Where("date_key = ?", q.DateKey)
	}

	var sessions []models.Session
	if err := query.Find(&sessions).Error; err != nil {
		return nil, storeError(err)
	}
	return sessions, nil
}
