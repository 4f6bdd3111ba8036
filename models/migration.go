package models

import (
	"log"

	"github.com/rneelappa/vyaapari-nexus-sub000/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Company{}, &Division{},
		&UnitOfMeasure{}, &Group{}, &Ledger{},
		&StockGroup{}, &StockItem{}, &Godown{},
		&CostCategory{}, &CostCentre{},
		&VoucherType{}, &Voucher{}, &LedgerEntry{}, &InventoryEntry{},
		&AddressDetail{}, &BankDetail{},
		&TallySyncRun{}, &TallySyncError{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
