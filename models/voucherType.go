package models

import (
	"time"

	"github.com/google/uuid"
)

// VoucherType is the transaction-type taxonomy. Self-referential like Group;
// ParentId is filled on the second linking pass.
type VoucherType struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CompanyId        uuid.UUID  `gorm:"type:uuid;uniqueIndex:uq_voucher_types_tenant_guid,priority:1;not null" json:"company_id"`
	DivisionId       uuid.UUID  `gorm:"type:uuid;uniqueIndex:uq_voucher_types_tenant_guid,priority:2;not null" json:"division_id"`
	Guid             string     `gorm:"uniqueIndex:uq_voucher_types_tenant_guid,priority:3;size:64;not null" json:"guid"`
	Name             string     `gorm:"index;size:255;not null" json:"name"`
	Parent           *string    `gorm:"size:255" json:"parent"`
	ParentId         *uuid.UUID `gorm:"type:uuid;index" json:"parent_id"`
	NumberingMethod  *string    `gorm:"size:50" json:"numbering_method"`
	IsDeemedPositive *bool      `json:"is_deemedpositive"`
	AffectsStock     *bool      `json:"affects_stock"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
