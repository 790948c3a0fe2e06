package models

// Tag represents a session tag
type Tag struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`

	// Relationships
	Sessions []Session `gorm:"many2many:session_tags;" json:"-"`
}

// SessionTag is the join table for the many-to-many relationship
type SessionTag struct {
	SessionID string `gorm:"primaryKey"`
	TagID     uint   `gorm:"primaryKey"`
}
