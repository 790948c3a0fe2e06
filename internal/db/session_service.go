package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tride/tride/internal/ledger"
	"github.com/tride/tride/internal/models"
)

// CreateSession opens a new session for a user. The check against an
// existing open session runs inside the transaction, and the partial unique
// index catches whatever slips through from another process, so at most one
// open session per user can ever exist.
func (s *Store) CreateSession(req ledger.CreateSessionRequest) (*models.Session, error) {
	now := s.now()
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		UserName:  req.UserName,
		UserEmail: req.UserEmail,
		Task:      req.Task,
		StartedAt: now,
		DateKey:   ledger.DayKey(now, s.tz),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var active models.Session
		err := tx.Where("user_id = ? AND ended_at IS NULL", req.UserID).First(&active).Error
		if err == nil {
			return ledger.ErrAlreadyActive
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if len(req.Tags) > 0 {
			tags, err := findOrCreateTags(tx, req.Tags)
			if err != nil {
				return err
			}
			session.Tags = tags
		}

		if req.Note != nil {
			note := *req.Note
			note.CreatedAt = now
			session.Notes = []models.Note{note}
		}

		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, storeError(err)
	}

	s.notify()
	return s.SessionByID(session.ID)
}

// AppendNote attaches a note to a session, stamping the store's current
// time. The open check runs inside the transaction so a concurrent
// check-out cannot sneak a note onto a closed session.
func (s *Store) AppendNote(sessionID string, note *models.Note) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ledger.ErrSessionClosed
			}
			return err
		}
		if !session.Open() {
			return ledger.ErrSessionClosed
		}

		note.SessionID = sessionID
		note.CreatedAt = s.now()
		return tx.Create(note).Error
	})
	if err != nil {
		return storeError(err)
	}

	s.notify()
	return nil
}

// AddTag attaches a tag to an open session; adding an existing tag is a no-op
func (s *Store) AddTag(sessionID, name string) error {
	added := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ledger.ErrSessionClosed
			}
			return err
		}
		if !session.Open() {
			return ledger.ErrSessionClosed
		}

		tags, err := findOrCreateTags(tx, []string{name})
		if err != nil {
			return err
		}

		var existing models.SessionTag
		err = tx.Where("session_id = ? AND tag_id = ?", sessionID, tags[0].ID).First(&existing).Error
		if err == nil {
			return nil // already tagged
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		added = true
		return tx.Create(&models.SessionTag{SessionID: sessionID, TagID: tags[0].ID}).Error
	})
	if err != nil {
		return storeError(err)
	}

	if added {
		s.notify()
	}
	return nil
}

// CloseSession ends an open session, setting the end timestamp exactly once
func (s *Store) CloseSession(sessionID, summary string) (*models.Session, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ledger.ErrNotActive
			}
			return err
		}
		if !session.Open() {
			return ledger.ErrNotActive
		}

		now := s.now()
		return tx.Model(&session).Updates(map[string]interface{}{
			"ended_at": &now,
			"summary":  summary,
		}).Error
	})
	if err != nil {
		return nil, storeError(err)
	}

	s.notify()
	return s.SessionByID(sessionID)
}

// ActiveSession returns the user's open session, or nil when there is none
func (s *Store) ActiveSession(userID string) (*models.Session, error) {
	var session models.Session
	err := s.db.Where("user_id = ? AND ended_at IS NULL", userID).
		Preload("Tags").
		Preload("Notes").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // No active session is not an error
	}
	if err != nil {
		return nil, storeError(err)
	}
	return &session, nil
}

// SessionByID returns a session by id, or nil when it does not exist
func (s *Store) SessionByID(id string) (*models.Session, error) {
	var session models.Session
	err := s.db.Preload("Tags").Preload("Notes").First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError(err)
	}
	return &session, nil
}

// SessionsByUser returns all of a user's sessions, most recent first
func (s *Store) SessionsByUser(userID string) ([]models.Session, error) {
	var sessions []models.Session
	err := s.db.Where("user_id = ?", userID).
		Preload("Tags").
		Preload("Notes").
		Order("started_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, storeError(err)
	}
	return sessions, nil
}

// SessionsInWindow returns all sessions whose start falls in [start, end),
// most recent first
func (s *Store) SessionsInWindow(start, end time.Time) ([]models.Session, error) {
	var sessions []models.Session
	err := s.db.Where("started_at >= ? AND started_at < ?", start, end).
		Preload("Tags").
		Preload("Notes").
		Order("started_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, storeError(err)
	}
	return sessions, nil
}

// SessionsByDateKey returns all sessions checked in on a calendar day
// (reference-timezone date key), most recent first
func (s *Store) SessionsByDateKey(key string) ([]models.Session, error) {
	return s.querySessions(Query{DateKey: key})
}

// RecentSessions returns the latest sessions across all days
func (s *Store) RecentSessions(limit int) ([]models.Session, error) {
	return s.querySessions(Query{Limit: limit})
}

// DateKey returns the date key of the store's current instant
func (s *Store) DateKey() string {
	return ledger.DayKey(s.now(), s.tz)
}

// Timezone returns the store's reference timezone
func (s *Store) Timezone() *time.Location {
	return s.tz
}

// findOrCreateTags finds existing tags or creates new ones
func findOrCreateTags(tx *gorm.DB, tagNames []string) ([]models.Tag, error) {
	var tags []models.Tag

	for _, name := range tagNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		var tag models.Tag

		// Try to find existing tag
		err := tx.Where("name = ?", name).First(&tag).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			// Tag doesn't exist, create it
			tag = models.Tag{Name: name}
			if err := tx.Create(&tag).Error; err != nil {
				return nil, err
			}
		}

		tags = append(tags, tag)
	}

	return tags, nil
}

// storeError maps driver errors onto the ledger taxonomy. Ledger sentinels
// pass through; a unique index violation means another writer won the
// one-open-session race; anything else is an opaque store failure.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ledger.ErrAlreadyActive),
		errors.Is(err, ledger.ErrSessionClosed),
		errors.Is(err, ledger.ErrNotActive):
		return err
	case strings.Contains(err.Error(), "UNIQUE constraint failed: sessions.user_id"):
		return ledger.ErrAlreadyActive
	default:
		return fmt.Errorf("%w: %v", ledger.ErrStoreUnavailable, err)
	}
}
