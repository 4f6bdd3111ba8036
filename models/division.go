package models

import (
	"time"

	"github.com/google/uuid"
)

// Division is the second level of the tenant hierarchy. Division names are
// unique within their company, not globally.
type Division struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyId uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_divisions_company_name,priority:1;not null" json:"company_id"`
	Name      string    `gorm:"uniqueIndex:uq_divisions_company_name,priority:2;size:255;not null" json:"name"`
	Guid      string    `gorm:"index;size:64" json:"guid"`
	TallyUrl  *string   `gorm:"size:255" json:"tally_url"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// DefaultDivisionName is used when a source row carries no division name.
// Keeping division_id non-null keeps the (company_id, division_id, guid)
// upsert key usable as a plain unique constraint.
const DefaultDivisionName = "Default"
