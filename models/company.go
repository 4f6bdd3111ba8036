package models

import (
	"time"

	"github.com/google/uuid"
)

// Company is the top level of the tenant hierarchy. Resolved by name during a
// sync run; the Tally guid is informational and not part of the tenant key.
type Company struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name               string     `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Guid               string     `gorm:"index;size:64" json:"guid"`
	MailingName        *string    `gorm:"size:255" json:"mailing_name"`
	Address            *string    `gorm:"type:text" json:"address"`
	State              *string    `gorm:"size:100" json:"state"`
	Country            *string    `gorm:"size:100" json:"country"`
	Pincode            *string    `gorm:"size:20" json:"pincode"`
	Email              *string    `gorm:"size:255" json:"email"`
	PanNumber          *string    `gorm:"size:20" json:"pan_number"`
	GstNumber          *string    `gorm:"size:20" json:"gst_number"`
	FinancialYearStart *time.Time `json:"financial_year_start"`
	BooksBeginFrom     *time.Time `json:"books_begin_from"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
