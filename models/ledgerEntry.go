package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntry is one accounting line of a Voucher. The voucher link is
// mandatory: a source line whose voucher guid cannot be resolved is skipped,
// never inserted orphaned. The ledger link is by name and may stay NULL.
type LedgerEntry struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CompanyId        uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_ledger_entries_tenant_guid,priority:1;not null" json:"company_id"`
	DivisionId       uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_ledger_entries_tenant_guid,priority:2;not null" json:"division_id"`
	Guid             string          `gorm:"uniqueIndex:uq_ledger_entries_tenant_guid,priority:3;size:64;not null" json:"guid"`
	VoucherGuid      string          `gorm:"index;size:64;not null" json:"voucher_guid"`
	VoucherId        uuid.UUID       `gorm:"type:uuid;index;not null" json:"voucher_id"`
	Ledger           *string         `gorm:"size:255" json:"ledger"`
	LedgerId         *uuid.UUID      `gorm:"type:uuid;index" json:"ledger_id"`
	Amount           decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	AmountForex      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount_forex"`
	Currency         *string         `gorm:"size:10" json:"currency"`
	IsPartyLedger    *bool           `json:"is_party_ledger"`
	IsDeemedPositive *bool           `json:"is_deemedpositive"`
	CostCentre       *string         `gorm:"size:255" json:"cost_centre"`
	CostCentreId     *uuid.UUID      `gorm:"type:uuid;index" json:"cost_centre_id"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
