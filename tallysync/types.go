package tallysync

import (
	"github.com/google/uuid"
)

// TenantScope is the (company, division) pair every warehouse row belongs to.
type TenantScope struct {
	CompanyId  uuid.UUID
	DivisionId uuid.UUID
}

type SyncRequest struct {
	Action     string `json:"action" binding:"required"`
	BatchSize  int    `json:"batchSize"`
	CompanyId  string `json:"companyId"`
	DivisionId string `json:"divisionId"`
	TableName  string `json:"tableName"`
}

type SyncResult struct {
	Table        string   `json:"table"`
	Synced       int      `json:"synced"`
	Errors       int      `json:"errors"`
	ErrorDetails []string `json:"errorDetails"`
}

type SyncResponse struct {
	Success      bool         `json:"success"`
	Message      string       `json:"message"`
	Results      []SyncResult `json:"results"`
	TotalRecords int          `json:"totalRecords"`
	TotalErrors  int          `json:"totalErrors"`
}

// SyncOptions narrows one run: batch cap for high-volume tables and optional
// tenant filters applied to tables whose source carries tenant columns.
type SyncOptions struct {
	BatchSize  int
	CompanyId  string
	DivisionId string
}

type TableInfo struct {
	Name        string   `json:"name"`
	SourceTable string   `json:"sourceTable"`
	DestTable   string   `json:"destTable"`
	Batched     bool     `json:"batched"`
	DependsOn   []string `json:"dependsOn"`
}

type TablesResponse struct {
	Order  []string    `json:"order"`
	Tables []TableInfo `json:"tables"`
}
