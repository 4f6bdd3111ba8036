package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UnitOfMeasure struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CompanyId       uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_uoms_tenant_guid,priority:1;not null" json:"company_id"`
	DivisionId      uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_uoms_tenant_guid,priority:2;not null" json:"division_id"`
	Guid            string          `gorm:"uniqueIndex:uq_uoms_tenant_guid,priority:3;size:64;not null" json:"guid"`
	Name            string          `gorm:"index;size:50;not null" json:"name"`
	FormalName      *string         `gorm:"size:100" json:"formal_name"`
	IsSimpleUnit    *bool           `json:"is_simple_unit"`
	BaseUnits       *string         `gorm:"size:50" json:"base_units"`
	AdditionalUnits *string         `gorm:"size:50" json:"additional_units"`
	Conversion      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"conversion"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UnitOfMeasure) TableName() string {
	return "units_of_measure"
}
