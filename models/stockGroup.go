package models

import (
	"time"

	"github.com/google/uuid"
)

type StockGroup struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CompanyId  uuid.UUID  `gorm:"type:uuid;uniqueIndex:uq_stock_groups_tenant_guid,priority:1;not null" json:"company_id"`
	DivisionId uuid.UUID  `gorm:"type:uuid;uniqueIndex:uq_stock_groups_tenant_guid,priority:2;not null" json:"division_id"`
	Guid       string     `gorm:"uniqueIndex:uq_stock_groups_tenant_guid,priority:3;size:64;not null" json:"guid"`
	Name       string     `gorm:"index;size:255;not null" json:"name"`
	Parent     *string    `gorm:"size:255" json:"parent"`
	ParentId   *uuid.UUID `gorm:"type:uuid;index" json:"parent_id"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
