package models

import (
	"time"
)

// Session represents one check-in to check-out work interval for a user
type Session struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID    string `gorm:"not null;index" json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`

	Task      string     `gorm:"not null" json:"task"`
	DateKey   string     `gorm:"index" json:"date_key"` // YYYY-MM-DD of StartedAt in the reference timezone
	StartedAt time.Time  `gorm:"not null" json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
	Summary   string     `json:"summary"`

	// Relationships
	Tags  []Tag  `gorm:"many2many:session_tags;" json:"tags"`
	Notes []Note `gorm:"foreignKey:SessionID" json:"notes"`
}

// Open reports whether the session is still running (no check-out yet)
func (s *Session) Open() bool {
	return s.EndedAt == nil
}

// HasTag reports whether the session carries the exact tag (case-sensitive)
func (s *Session) HasTag(name string) bool {
	for _, tag := range s.Tags {
		if tag.Name == name {
			return true
		}
	}
	return false
}

// TagNames returns the session's tag labels in stored order
func (s *Session) TagNames() []string {
	var names []string
	for _, tag := range s.Tags {
		names = append(names, tag.Name)
	}
	return names
}

// Note is a timestamped remark attached to a session while it is open
type Note struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	SessionID string    `gorm:"not null;index" json:"session_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Links     []string  `gorm:"serializer:json" json:"links"` // URLs extracted from Text, in order of appearance
	CreatedAt time.Time `json:"created_at"`
}
