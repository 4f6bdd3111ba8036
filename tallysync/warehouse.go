package tallysync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rneelappa/vyaapari-nexus-sub000/models"
)

// Warehouse is the write/lookup contract against the destination schema.
// The sync engine only ever upserts and links; nothing is deleted.
type Warehouse interface {
	// EnsureCompany and EnsureDivision are get-or-create by name. The
	// check-then-act is not guarded against concurrent creators of a brand
	// new name; see DESIGN.md.
	EnsureCompany(ctx context.Context, name string) (uuid.UUID, error)
	EnsureDivision(ctx context.Context, companyId uuid.UUID, name string) (uuid.UUID, error)
	UpdateCompany(ctx context.Context, id uuid.UUID, fields map[string]any) error
	UpdateDivision(ctx context.Context, id uuid.UUID, fields map[string]any) error

	// Upsert writes one row keyed by (company_id, division_id, guid); an
	// existing row with the same key is updated in place, never duplicated.
	Upsert(ctx context.Context, table string, scope TenantScope, guid string, fields map[string]any) error

	// LookupId finds a row id by exact column match within a tenant scope.
	// First match wins; ok is false on a miss.
	LookupId(ctx context.Context, table string, scope TenantScope, column, value string) (uuid.UUID, bool, error)

	// IdsByGuid returns the guid -> id map for one table and tenant scope,
	// used by the second pass of self-referential entities.
	IdsByGuid(ctx context.Context, table string, scope TenantScope) (map[string]uuid.UUID, error)

	// LinkParent fills one resolved parent column on an existing row.
	LinkParent(ctx context.Context, table string, id uuid.UUID, column string, parentId uuid.UUID) error
}

type gormWarehouse struct {
	getDB func() *gorm.DB
}

func NewGormWarehouse(getDB func() *gorm.DB) Warehouse {
	return &gormWarehouse{getDB: getDB}
}

func (w *gormWarehouse) EnsureCompany(ctx context.Context, name string) (uuid.UUID, error) {
	var company models.Company
	err := w.getDB().WithContext(ctx).Where("name = ?", name).Take(&company).Error
	if err == nil {
		return company.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}

	company = models.Company{ID: uuid.New(), Name: name}
	if err := w.getDB().WithContext(ctx).Create(&company).Error; err != nil {
		return uuid.Nil, err
	}
	return company.ID, nil
}

func (w *gormWarehouse) EnsureDivision(ctx context.Context, companyId uuid.UUID, name string) (uuid.UUID, error) {
	var division models.Division
	err := w.getDB().WithContext(ctx).
		Where("company_id = ? AND name = ?", companyId, name).
		Take(&division).Error
	if err == nil {
		return division.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}

	division = models.Division{ID: uuid.New(), CompanyId: companyId, Name: name}
	if err := w.getDB().WithContext(ctx).Create(&division).Error; err != nil {
		return uuid.Nil, err
	}
	return division.ID, nil
}

func (w *gormWarehouse) UpdateCompany(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return w.getDB().WithContext(ctx).
		Model(&models.Company{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (w *gormWarehouse) UpdateDivision(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return w.getDB().WithContext(ctx).
		Model(&models.Division{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (w *gormWarehouse) Upsert(ctx context.Context, table string, scope TenantScope, guid string, fields map[string]any) error {
	now := time.Now()
	record := map[string]any{
		"id":          uuid.New(),
		"company_id":  scope.CompanyId,
		"division_id": scope.DivisionId,
		"guid":        guid,
		"created_at":  now,
		"updated_at":  now,
	}
	updateCols := make([]string, 0, len(fields)+1)
	for col, val := range fields {
		record[col] = val
		updateCols = append(updateCols, col)
	}
	updateCols = append(updateCols, "updated_at")
	sort.Strings(updateCols)

	return w.getDB().WithContext(ctx).
		Table(table).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "company_id"}, {Name: "division_id"}, {Name: "guid"},
			},
			DoUpdates: clause.AssignmentColumns(updateCols),
		}).
		Create(&record).Error
}

func (w *gormWarehouse) LookupId(ctx context.Context, table string, scope TenantScope, column, value string) (uuid.UUID, bool, error) {
	var row struct {
		ID uuid.UUID
	}
	err := w.getDB().WithContext(ctx).
		Table(table).
		Select("id").
		Where("company_id = ? AND division_id = ?", scope.CompanyId, scope.DivisionId).
		Where(fmt.Sprintf("%s = ?", column), value).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	return row.ID, true, nil
}

func (w *gormWarehouse) IdsByGuid(ctx context.Context, table string, scope TenantScope) (map[string]uuid.UUID, error) {
	var rows []struct {
		ID   uuid.UUID
		Guid string
	}
	err := w.getDB().WithContext(ctx).
		Table(table).
		Select("id, guid").
		Where("company_id = ? AND division_id = ?", scope.CompanyId, scope.DivisionId).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]uuid.UUID, len(rows))
	for _, row := range rows {
		out[row.Guid] = row.ID
	}
	return out, nil
}

func (w *gormWarehouse) LinkParent(ctx context.Context, table string, id uuid.UUID, column string, parentId uuid.UUID) error {
	return w.getDB().WithContext(ctx).
		Table(table).
		Where("id = ?", id).
		Updates(map[string]any{column: parentId, "updated_at": time.Now()}).Error
}
