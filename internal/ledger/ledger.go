// Package ledger turns raw check-in/check-out records into correct running
// timers, per-user totals and exportable views. It is stateless between
// calls: every operation validates its input, then reads and writes through
// the record store. Authoritative timestamps are always assigned by the
// store, never by the caller.
package ledger

import (
	"strings"

	"github.com/tride/tride/internal/models"
	"github.com/tride/tride/internal/parser"
)

// CreateSessionRequest holds the data a store needs to open a session.
// The store assigns ID, StartedAt and DateKey from its own clock.
type CreateSessionRequest struct {
	UserID    string
	UserName  string
	UserEmail string
	Task      string
	Tags      []string
	Note      *models.Note // optional opening note
}

// Store is the record store the ledger mutates through. Implementations must
// enforce the one-open-session-per-user invariant atomically in their write
// path; the ledger's own pre-check only gives callers a friendly error ahead
// of the race, it cannot close it.
type Store interface {
	CreateSession(req CreateSessionRequest) (*models.Session, error)
	AppendNote(sessionID string, note *models.Note) error
	AddTag(sessionID, tag string) error
	CloseSession(sessionID, summary string) (*models.Session, error)
	ActiveSession(userID string) (*models.Session, error)
	SessionByID(id string) (*models.Session, error)
}

// Service is the session state machine: NONE → OPEN → CLOSED, one open
// session per user, no transition back from CLOSED.
type Service struct {
	store Store
}

// NewService creates a ledger service on top of a record store
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CheckInRequest describes a check-in attempt by the current actor
type CheckInRequest struct {
	UserID    string
	UserName  string
	UserEmail string
	Task      string
	Tags      []string
	Note      string // optional opening note text
}

// CheckIn opens a new session for the user. Fails with ErrInvalidTask when
// the task trims to empty and with ErrAlreadyActive when the user already
// has an open session.
func (s *Service) CheckIn(req CheckInRequest) (*models.Session, error) {
	task := strings.TrimSpace(req.Task)
	if task == "" {
		return nil, ErrInvalidTask
	}

	active, err := s.store.ActiveSession(req.UserID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrAlreadyActive
	}

	create := CreateSessionRequest{
		UserID:    req.UserID,
		UserName:  req.UserName,
		UserEmail: req.UserEmail,
		Task:      task,
		Tags:      req.Tags,
	}
	if text := strings.TrimSpace(req.Note); text != "" {
		create.Note = &models.Note{
			Author: req.UserID,
			Text:   text,
			Links:  parser.ExtractLinks(text),
		}
	}

	return s.store.CreateSession(create)
}

// AddNote appends a note to an open session, extracting any links from the
// text. Fails with ErrSessionClosed when the session is closed or unknown.
func (s *Service) AddNote(sessionID, author, text string) (*models.Note, error) {
	session, err := s.store.SessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.Open() {
		return nil, ErrSessionClosed
	}

	note := &models.Note{
		SessionID: sessionID,
		Author:    author,
		Text:      text,
		Links:     parser.ExtractLinks(text),
	}
	if err := s.store.AppendNote(sessionID, note); err != nil {
		return nil, err
	}
	return note, nil
}

// AddTag attaches a tag to an open session. Adding a tag the session already
// carries is a no-op, not an error. Fails with ErrSessionClosed when the
// session is closed or unknown.
func (s *Service) AddTag(sessionID, tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil
	}

	session, err := s.store.SessionByID(sessionID)
	if err != nil {
		return err
	}
	if session == nil || !session.Open() {
		return ErrSessionClosed
	}
	if session.HasTag(tag) {
		return nil
	}

	return s.store.AddTag(sessionID, tag)
}

// CheckOut closes an open session with a trimmed summary (may be empty).
// Fails with ErrNotActive when the session is closed or unknown. The end
// timestamp is assigned by the store and never modified again.
func (s *Service) CheckOut(sessionID, summary string) (*models.Session, error) {
	session, err := s.store.SessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.Open() {
		return nil, ErrNotActive
	}

	return s.store.CloseSession(sessionID, strings.TrimSpace(summary))
}
