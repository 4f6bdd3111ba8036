package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryEntry is one stock-movement line of a Voucher. Same orphan rule as
// LedgerEntry: no resolvable voucher, no row.
type InventoryEntry struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CompanyId        uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_inventory_entries_tenant_guid,priority:1;not null" json:"company_id"`
	DivisionId       uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_inventory_entries_tenant_guid,priority:2;not null" json:"division_id"`
	Guid             string          `gorm:"uniqueIndex:uq_inventory_entries_tenant_guid,priority:3;size:64;not null" json:"guid"`
	VoucherGuid      string          `gorm:"index;size:64;not null" json:"voucher_guid"`
	VoucherId        uuid.UUID       `gorm:"type:uuid;index;not null" json:"voucher_id"`
	Item             *string         `gorm:"size:255" json:"item"`
	StockItemId      *uuid.UUID      `gorm:"type:uuid;index" json:"stock_item_id"`
	Quantity         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	Rate             decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"rate"`
	Amount           decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	AdditionalAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"additional_amount"`
	DiscountAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount_amount"`
	Godown           *string         `gorm:"size:255" json:"godown"`
	GodownId         *uuid.UUID      `gorm:"type:uuid;index" json:"godown_id"`
	TrackingNumber   *string         `gorm:"size:100" json:"tracking_number"`
	OrderNumber      *string         `gorm:"size:100" json:"order_number"`
	OrderDueDate     *time.Time      `json:"order_due_date"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
