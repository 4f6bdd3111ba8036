package tallysync

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rneelappa/vyaapari-nexus-sub000/models"
	"github.com/rneelappa/vyaapari-nexus-sub000/utils"
)

// SyncHandler triggers a sync run. Invalid requests come back as 400 with the
// same response shape the sync itself produces; a run that completed with
// record errors is still 200 with success=false.
func SyncHandler(runner *Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SyncRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid request: action is required"))
			return
		}
		req.Action = strings.TrimSpace(req.Action)
		req.TableName = strings.TrimSpace(req.TableName)

		ctx := c.Request.Context()
		if req.CompanyId != "" {
			ctx = utils.SetCompanyIdInContext(ctx, req.CompanyId)
		}
		if req.DivisionId != "" {
			ctx = utils.SetDivisionIdInContext(ctx, req.DivisionId)
		}

		resp, err := runner.Run(ctx, req)
		if err != nil {
			if errors.Is(err, ErrUnknownAction) || errors.Is(err, ErrUnknownTable) {
				c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, errorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// TablesHandler lists the syncable tables in the order a full sync
// processes them.
func TablesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		order := SyncOrder()
		tables := make([]TableInfo, 0, len(order))
		for _, name := range order {
			desc, _ := Descriptor(name)
			tables = append(tables, TableInfo{
				Name:        desc.Name,
				SourceTable: desc.SourceTable,
				DestTable:   desc.DestTable,
				Batched:     desc.Batched,
				DependsOn:   desc.DependsOn(),
			})
		}
		c.JSON(http.StatusOK, TablesResponse{Order: order, Tables: tables})
	}
}

func SyncHistoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 20
		if v := strings.TrimSpace(c.Query("limit")); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}

		runs, err := models.ListSyncRuns(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": runs})
	}
}

func SyncRunDetailHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
			return
		}

		run, err := models.GetSyncRunById(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		errs, err := models.GetSyncRunErrors(c.Request.Context(), run.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"run": run, "errors": errs})
	}
}

func errorResponse(message string) SyncResponse {
	return SyncResponse{
		Success:     false,
		Message:     message,
		Results:     []SyncResult{},
		TotalErrors: 1,
	}
}
