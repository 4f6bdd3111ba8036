package models

import (
	"time"

	"github.com/google/uuid"
)

// AddressDetail is a mailing address attached to a Ledger by name.
type AddressDetail struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CompanyId     uuid.UUID  `gorm:"type:uuid;uniqueIndex:uq_address_details_tenant_guid,priority:1;not null" json:"company_id"`
	DivisionId    uuid.UUID  `gorm:"type:uuid;uniqueIndex:uq_address_details_tenant_guid,priority:2;not null" json:"division_id"`
	Guid          string     `gorm:"uniqueIndex:uq_address_details_tenant_guid,priority:3;size:64;not null" json:"guid"`
	Ledger        *string    `gorm:"size:255" json:"ledger"`
	LedgerId      *uuid.UUID `gorm:"type:uuid;index" json:"ledger_id"`
	Address       *string    `gorm:"type:text" json:"address"`
	State         *string    `gorm:"size:100" json:"state"`
	Country       *string    `gorm:"size:100" json:"country"`
	Pincode       *string    `gorm:"size:20" json:"pincode"`
	ContactPerson *string    `gorm:"size:255" json:"contact_person"`
	Phone         *string    `gorm:"size:20" json:"phone"`
	Email         *string    `gorm:"size:255" json:"email"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
