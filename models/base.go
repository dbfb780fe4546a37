package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model is implemented by every catalog entity handled by the generic CRUD stack
type Model interface {
	// GetID returns the primary key
	GetID() string
	// ModelName is the snake_case entity name used in routing keys and messages
	ModelName() string
}

// Base carries the identity, timestamps and soft-delete marker shared by all entities
type Base struct {
	ID        string         `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// BeforeCreate assigns a UUID before the first insert. The id never changes afterwards.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// GetID returns the entity id
func (b Base) GetID() string {
	return b.ID
}

// Trashed reports whether the record has been soft-deleted
func (b Base) Trashed() bool {
	return b.DeletedAt.Valid
}
