package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockItem belongs to a StockGroup and a UnitOfMeasure, both matched by name.
type StockItem struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CompanyId         uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_stock_items_tenant_guid,priority:1;not null" json:"company_id"`
	DivisionId        uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_stock_items_tenant_guid,priority:2;not null" json:"division_id"`
	Guid              string          `gorm:"uniqueIndex:uq_stock_items_tenant_guid,priority:3;size:64;not null" json:"guid"`
	Name              string          `gorm:"index;size:255;not null" json:"name"`
	Parent            *string         `gorm:"size:255" json:"parent"`
	StockGroupId      *uuid.UUID      `gorm:"type:uuid;index" json:"stock_group_id"`
	Alias             *string         `gorm:"size:255" json:"alias"`
	Description       *string         `gorm:"type:text" json:"description"`
	Uom               *string         `gorm:"size:50" json:"uom"`
	UomId             *uuid.UUID      `gorm:"type:uuid;index" json:"uom_id"`
	OpeningBalance    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"opening_balance"`
	OpeningRate       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"opening_rate"`
	OpeningValue      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"opening_value"`
	ClosingBalance    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"closing_balance"`
	ClosingRate       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"closing_rate"`
	ClosingValue      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"closing_value"`
	GstHsnCode        *string         `gorm:"size:20" json:"gst_hsn_code"`
	GstHsnDescription *string         `gorm:"type:text" json:"gst_hsn_description"`
	GstRate           decimal.Decimal `gorm:"type:decimal(10,4);default:0" json:"gst_rate"`
	GstTaxability     *string         `gorm:"size:50" json:"gst_taxability"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
