package models

import (
	"time"

	"github.com/google/uuid"
)

// BankDetail is a bank account attached to a Ledger by name.
type BankDetail struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CompanyId     uuid.UUID  `gorm:"type:uuid;uniqueIndex:uq_bank_details_tenant_guid,priority:1;not null" json:"company_id"`
	DivisionId    uuid.UUID  `gorm:"type:uuid;uniqueIndex:uq_bank_details_tenant_guid,priority:2;not null" json:"division_id"`
	Guid          string     `gorm:"uniqueIndex:uq_bank_details_tenant_guid,priority:3;size:64;not null" json:"guid"`
	Ledger        *string    `gorm:"size:255" json:"ledger"`
	LedgerId      *uuid.UUID `gorm:"type:uuid;index" json:"ledger_id"`
	AccountHolder *string    `gorm:"size:255" json:"account_holder"`
	AccountNumber *string    `gorm:"size:50" json:"account_number"`
	Ifsc          *string    `gorm:"size:20" json:"ifsc"`
	Swift         *string    `gorm:"size:20" json:"swift"`
	BankName      *string    `gorm:"size:100" json:"bank_name"`
	Branch        *string    `gorm:"size:100" json:"branch"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
