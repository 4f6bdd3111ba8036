package tallysync

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/rneelappa/vyaapari-nexus-sub000/models"
)

// RunLog persists the history of sync invocations. Logging failures never
// fail the sync itself; the caller ignores RunLog errors after logging them.
type RunLog interface {
	Begin(ctx context.Context, action, tableName string) (uint, error)
	RecordError(ctx context.Context, runId uint, tableName, guid, message string) error
	Finish(ctx context.Context, runId uint, status string, results []SyncResult, totalRecords, totalErrors int, startedAt time.Time) error
}

type gormRunLog struct {
	getDB func() *gorm.DB
}

func NewGormRunLog(getDB func() *gorm.DB) RunLog {
	return &gormRunLog{getDB: getDB}
}

func (l *gormRunLog) Begin(ctx context.Context, action, tableName string) (uint, error) {
	now := time.Now()
	run := models.TallySyncRun{
		Action:    action,
		TableName: tableName,
		Status:    models.SyncRunStatusRunning,
		StartedAt: &now,
	}
	if err := l.getDB().WithContext(ctx).Create(&run).Error; err != nil {
		return 0, err
	}
	return run.ID, nil
}

func (l *gormRunLog) RecordError(ctx context.Context, runId uint, tableName, guid, message string) error {
	rec := models.TallySyncError{
		SyncRunId: runId,
		TableName: tableName,
		Guid:      guid,
		Message:   message,
	}
	return l.getDB().WithContext(ctx).Create(&rec).Error
}

func (l *gormRunLog) Finish(ctx context.Context, runId uint, status string, results []SyncResult, totalRecords, totalErrors int, startedAt time.Time) error {
	stats := make(map[string]int, len(results))
	for _, r := range results {
		stats[r.Table] = r.Synced
	}
	statsJSON, _ := json.Marshal(stats)

	finishedAt := time.Now()
	return l.getDB().WithContext(ctx).
		Model(&models.TallySyncRun{}).
		Where("id = ?", runId).
		Updates(map[string]any{
			"status":         status,
			"finished_at":    finishedAt,
			"duration_ms":    finishedAt.Sub(startedAt).Milliseconds(),
			"records_synced": totalRecords,
			"error_count":    totalErrors,
			"stats_json":     statsJSON,
		}).Error
}
