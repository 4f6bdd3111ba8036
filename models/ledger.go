package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger is a chart-of-accounts leaf. It belongs to a Group by name; GroupId
// is the resolved link and stays NULL when the name does not match.
type Ledger struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CompanyId           uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_ledgers_tenant_guid,priority:1;not null" json:"company_id"`
	DivisionId          uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_ledgers_tenant_guid,priority:2;not null" json:"division_id"`
	Guid                string          `gorm:"uniqueIndex:uq_ledgers_tenant_guid,priority:3;size:64;not null" json:"guid"`
	Name                string          `gorm:"index;size:255;not null" json:"name"`
	Parent              *string         `gorm:"size:255" json:"parent"`
	GroupId             *uuid.UUID      `gorm:"type:uuid;index" json:"group_id"`
	Alias               *string         `gorm:"size:255" json:"alias"`
	Description         *string         `gorm:"type:text" json:"description"`
	Notes               *string         `gorm:"type:text" json:"notes"`
	IsRevenue           *bool           `json:"is_revenue"`
	IsDeemedPositive    *bool           `json:"is_deemedpositive"`
	OpeningBalance      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"opening_balance"`
	ClosingBalance      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"closing_balance"`
	MailingName         *string         `gorm:"size:255" json:"mailing_name"`
	MailingAddress      *string         `gorm:"type:text" json:"mailing_address"`
	MailingState        *string         `gorm:"size:100" json:"mailing_state"`
	MailingCountry      *string         `gorm:"size:100" json:"mailing_country"`
	MailingPincode      *string         `gorm:"size:20" json:"mailing_pincode"`
	Email               *string         `gorm:"size:255" json:"email"`
	ItPan               *string         `gorm:"size:20" json:"it_pan"`
	GstNumber           *string         `gorm:"size:20" json:"gstn"`
	GstRegistrationType *string         `gorm:"size:50" json:"gst_registration_type"`
	GstSupplyType       *string         `gorm:"size:50" json:"gst_supply_type"`
	BankAccountHolder   *string         `gorm:"size:255" json:"bank_account_holder"`
	BankAccountNumber   *string         `gorm:"size:50" json:"bank_account_number"`
	BankIfsc            *string         `gorm:"size:20" json:"bank_ifsc"`
	BankSwift           *string         `gorm:"size:20" json:"bank_swift"`
	BankName            *string         `gorm:"size:100" json:"bank_name"`
	BankBranch          *string         `gorm:"size:100" json:"bank_branch"`
	BillCreditPeriod    int             `json:"bill_credit_period"`
	CreatedAt           time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
