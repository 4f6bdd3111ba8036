package tallysync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rneelappa/vyaapari-nexus-sub000/config"
	"github.com/rneelappa/vyaapari-nexus-sub000/models"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrUnknownTable  = errors.New("unknown table")
)

const (
	defaultBatchSize      = 1000
	defaultRunTimeoutSec  = 600
	defaultCallTimeoutSec = 30
)

// Runner orchestrates sync runs: one engine per invocation, tables processed
// strictly in dependency order, results aggregated into a single response.
type Runner struct {
	source SourceReader
	wh     Warehouse
	runlog RunLog
	logger *logrus.Logger

	batchSize   int
	runTimeout  time.Duration
	callTimeout time.Duration
}

// NewRunner wires a runner from its stores. runlog may be nil; history is
// then not persisted (used by tests).
func NewRunner(source SourceReader, wh Warehouse, runlog RunLog, logger *logrus.Logger) *Runner {
	return &Runner{
		source:      source,
		wh:          wh,
		runlog:      runlog,
		logger:      logger,
		batchSize:   intFromEnv("SYNC_BATCH_SIZE", defaultBatchSize),
		runTimeout:  time.Duration(intFromEnv("SYNC_RUN_TIMEOUT_SECONDS", defaultRunTimeoutSec)) * time.Second,
		callTimeout: time.Duration(intFromEnv("SYNC_CALL_TIMEOUT_SECONDS", defaultCallTimeoutSec)) * time.Second,
	}
}

// Run executes one sync request. The returned error is reserved for invalid
// requests (unknown action or table); everything that goes wrong during the
// sync itself is reported inside the response instead.
func (r *Runner) Run(ctx context.Context, req SyncRequest) (SyncResponse, error) {
	tables, err := r.tablesFor(req)
	if err != nil {
		return SyncResponse{}, err
	}

	opt := SyncOptions{
		BatchSize:  req.BatchSize,
		CompanyId:  req.CompanyId,
		DivisionId: req.DivisionId,
	}
	if opt.BatchSize <= 0 {
		opt.BatchSize = r.batchSize
	}

	startedAt := time.Now()
	runId := r.beginRun(ctx, req)

	if r.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.runTimeout)
		defer cancel()
	}

	eng := newEngine(r.source, r.wh, r.logger, r.callTimeout)

	resp := SyncResponse{Results: make([]SyncResult, 0, len(tables))}
	for _, name := range tables {
		desc, _ := Descriptor(name)

		var res SyncResult
		var tableErr error
		switch desc.Name {
		case "company":
			res, tableErr = eng.syncCompanies(ctx, desc, opt)
		case "division":
			res, tableErr = eng.syncDivisions(ctx, desc, opt)
		default:
			res, tableErr = eng.syncEntity(ctx, desc, opt)
		}
		if tableErr != nil {
			// The table could not be read at all. Record it and keep going:
			// tables after it may still sync, minus whatever links depended
			// on the failed one.
			res = SyncResult{
				Table:        name,
				Errors:       1,
				ErrorDetails: []string{fmt.Sprintf("%s: %s", desc.Label, tableErr.Error())},
			}
			config.LogError(r.logger, "tallysync", "Run", name, nil, tableErr)
		}

		resp.Results = append(resp.Results, res)
		resp.TotalRecords += res.Synced
		resp.TotalErrors += res.Errors
		r.recordErrors(ctx, runId, name, res.ErrorDetails)
	}

	resp.Success = resp.TotalErrors == 0
	if resp.Success {
		resp.Message = fmt.Sprintf("Synced %d records across %d tables", resp.TotalRecords, len(tables))
	} else {
		resp.Message = fmt.Sprintf("Synced %d records with %d errors", resp.TotalRecords, resp.TotalErrors)
	}

	r.finishRun(ctx, runId, resp, startedAt)
	return resp, nil
}

func (r *Runner) tablesFor(req SyncRequest) ([]string, error) {
	switch req.Action {
	case models.SyncActionFullSync:
		return SyncOrder(), nil
	case models.SyncActionSyncTable:
		if _, ok := Descriptor(req.TableName); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTable, req.TableName)
		}
		return []string{req.TableName}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
}

func (r *Runner) beginRun(ctx context.Context, req SyncRequest) uint {
	if r.runlog == nil {
		return 0
	}
	runId, err := r.runlog.Begin(ctx, req.Action, req.TableName)
	if err != nil {
		config.LogError(r.logger, "tallysync", "beginRun", req.Action, nil, err)
		return 0
	}
	return runId
}

func (r *Runner) recordErrors(ctx context.Context, runId uint, tableName string, details []string) {
	if r.runlog == nil || runId == 0 {
		return
	}
	for _, detail := range details {
		if err := r.runlog.RecordError(ctx, runId, tableName, "", detail); err != nil {
			config.LogError(r.logger, "tallysync", "recordErrors", tableName, nil, err)
			return
		}
	}
}

func (r *Runner) finishRun(ctx context.Context, runId uint, resp SyncResponse, startedAt time.Time) {
	if r.runlog == nil || runId == 0 {
		return
	}
	status := models.SyncRunStatusSuccess
	if resp.TotalErrors > 0 && resp.TotalRecords == 0 {
		status = models.SyncRunStatusFailed
	} else if resp.TotalErrors > 0 {
		status = models.SyncRunStatusPartial
	}
	// Finish with a fresh context: the run context may already be past its
	// deadline, and the history row should still be closed out.
	logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := r.runlog.Finish(logCtx, runId, status, resp.Results, resp.TotalRecords, resp.TotalErrors, startedAt); err != nil {
		config.LogError(r.logger, "tallysync", "finishRun", status, nil, err)
	}
}

func intFromEnv(name string, fallback int) int {
	if raw := os.Getenv(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
