package models

import (
	"time"

	"github.com/google/uuid"
)

// Routine is a reusable instruction set. OwnerID nil means system-owned.
// Templates are readable by everyone; deletion only flips IsActive.
type Routine struct {
	ID                  uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title               string        `gorm:"not null;size:200" json:"title"`
	Category            string        `gorm:"not null;size:100" json:"category"`
	SimpleDescription   *string       `gorm:"type:text" json:"simple_description,omitempty"`
	OriginalDescription *string       `gorm:"type:text" json:"original_description,omitempty"`
	IsActive            bool          `gorm:"not null" json:"is_active"`
	OwnerID             *uuid.UUID    `gorm:"type:uuid;index" json:"owner_id,omitempty"`
	IsTemplate          bool          `gorm:"not null" json:"is_template"`
	Steps               []RoutineStep `gorm:"foreignKey:RoutineID" json:"steps,omitempty"`
	Tags                []Tag         `gorm:"many2many:routine_tags" json:"tags,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// OwnedBy reports whether userID is the recorded owner.
func (r *Routine) OwnedBy(userID uuid.UUID) bool {
	return r.OwnerID != nil && *r.OwnerID == userID
}

type RoutineStep struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RoutineID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"routine_id"`
	Order        int               `gorm:"column:step_order;not null" json:"order"`
	SimpleText   string            `gorm:"type:text;not null" json:"simple_text"`
	OriginalText *string           `gorm:"type:text" json:"original_text,omitempty"`
	IconKey      *string           `gorm:"size:100" json:"icon_key,omitempty"`
	ImageURL     *string           `gorm:"column:image_url;type:text" json:"image_url,omitempty"`
	Translations []StepTranslation `gorm:"foreignKey:RoutineStepID" json:"translations,omitempty"`
}

type StepTranslation struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RoutineStepID uuid.UUID `gorm:"type:uuid;not null;index" json:"routine_step_id"`
	LanguageID    uuid.UUID `gorm:"type:uuid;not null" json:"language_id"`
	Language      *Language `gorm:"foreignKey:LanguageID" json:"language,omitempty"`
	Text          string    `gorm:"type:text;not null" json:"text"`
}

type Language struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code string    `gorm:"not null;size:10;uniqueIndex" json:"code"`
	Name string    `gorm:"not null;size:100" json:"name"`
}

type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name string    `gorm:"not null;size:100" json:"name"`
}
