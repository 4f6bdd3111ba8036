package models

import (
	"time"

	"github.com/google/uuid"
)

// Group is a node of the account taxonomy tree. Parent keeps the raw source
// name; ParentId is the resolved self-referential link (filled on pass 2).
type Group struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CompanyId          uuid.UUID  `gorm:"type:uuid;uniqueIndex:uq_groups_tenant_guid,priority:1;not null" json:"company_id"`
	DivisionId         uuid.UUID  `gorm:"type:uuid;uniqueIndex:uq_groups_tenant_guid,priority:2;not null" json:"division_id"`
	Guid               string     `gorm:"uniqueIndex:uq_groups_tenant_guid,priority:3;size:64;not null" json:"guid"`
	Name               string     `gorm:"index;size:255;not null" json:"name"`
	Parent             *string    `gorm:"size:255" json:"parent"`
	ParentId           *uuid.UUID `gorm:"type:uuid;index" json:"parent_id"`
	PrimaryGroup       *string    `gorm:"size:255" json:"primary_group"`
	IsRevenue          *bool      `json:"is_revenue"`
	IsDeemedPositive   *bool      `json:"is_deemedpositive"`
	IsReserved         *bool      `json:"is_reserved"`
	AffectsGrossProfit *bool      `json:"affects_gross_profit"`
	SortPosition       int        `json:"sort_position"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
