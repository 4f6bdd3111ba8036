package models

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rneelappa/vyaapari-nexus-sub000/config"
	"github.com/rneelappa/vyaapari-nexus-sub000/utils"
)

const (
	SyncRunStatusRunning = "running"
	SyncRunStatusSuccess = "success"
	SyncRunStatusFailed  = "failed"
	SyncRunStatusPartial = "partial"
)

const (
	SyncActionFullSync  = "full_sync"
	SyncActionSyncTable = "sync_table"
)

// TallySyncRun is the persisted history of one orchestrator invocation.
type TallySyncRun struct {
	ID            uint       `gorm:"primary_key" json:"id"`
	Action        string     `gorm:"size:20;not null" json:"action"`
	TableName     string     `gorm:"size:50" json:"table_name"`
	Status        string     `gorm:"size:20;not null" json:"status"`
	RecordsSynced int        `json:"records_synced"`
	ErrorCount    int        `json:"error_count"`
	StatsJSON     []byte     `gorm:"type:json" json:"stats"`
	StartedAt     *time.Time `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at"`
	DurationMs    int64      `json:"duration_ms"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TallySyncError is one record- or table-level error captured during a run.
type TallySyncError struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	SyncRunId uint      `gorm:"index;not null" json:"sync_run_id"`
	TableName string    `gorm:"size:50" json:"table_name"`
	Guid      string    `gorm:"size:64" json:"guid"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func GetSyncRunById(ctx context.Context, id int) (TallySyncRun, error) {
	var run TallySyncRun
	err := config.GetDB().WithContext(ctx).Where("id = ?", id).Take(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return run, utils.ErrorRecordNotFound
		}
		return run, err
	}
	return run, nil
}

func GetSyncRunErrors(ctx context.Context, runId uint) ([]TallySyncError, error) {
	var errs []TallySyncError
	err := config.GetDB().WithContext(ctx).
		Where("sync_run_id = ?", runId).
		Order("id asc").
		Find(&errs).Error
	return errs, err
}

func ListSyncRuns(ctx context.Context, limit int) ([]TallySyncRun, error) {
	var runs []TallySyncRun
	err := config.GetDB().WithContext(ctx).
		Order("id desc").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}
