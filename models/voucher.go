package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Voucher is a transaction header. VoucherTypeId and PartyLedgerId are
// resolved by name within the same tenant; a miss leaves them NULL.
type Voucher struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CompanyId           uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_vouchers_tenant_guid,priority:1;not null" json:"company_id"`
	DivisionId          uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_vouchers_tenant_guid,priority:2;not null" json:"division_id"`
	Guid                string          `gorm:"uniqueIndex:uq_vouchers_tenant_guid,priority:3;size:64;not null" json:"guid"`
	VoucherType         *string         `gorm:"size:255" json:"voucher_type"`
	VoucherTypeId       *uuid.UUID      `gorm:"type:uuid;index" json:"voucher_type_id"`
	Date                *time.Time      `gorm:"index" json:"date"`
	VoucherNumber       *string         `gorm:"index;size:100" json:"voucher_number"`
	ReferenceNumber     *string         `gorm:"size:100" json:"reference_number"`
	ReferenceDate       *time.Time      `json:"reference_date"`
	Narration           *string         `gorm:"type:text" json:"narration"`
	PartyName           *string         `gorm:"size:255" json:"party_name"`
	PartyLedgerId       *uuid.UUID      `gorm:"type:uuid;index" json:"party_ledger_id"`
	PlaceOfSupply       *string         `gorm:"size:100" json:"place_of_supply"`
	TotalAmount         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	IsInvoice           *bool           `json:"is_invoice"`
	IsAccountingVoucher *bool           `json:"is_accounting_voucher"`
	IsInventoryVoucher  *bool           `json:"is_inventory_voucher"`
	IsOrderVoucher      *bool           `json:"is_order_voucher"`
	IsCancelled         *bool           `json:"is_cancelled"`
	IsOptional          *bool           `json:"is_optional"`
	AlteredBy           *string         `gorm:"size:100" json:"altered_by"`
	AlteredOn           *time.Time      `json:"altered_on"`
	CreatedAt           time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
