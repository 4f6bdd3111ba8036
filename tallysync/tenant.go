package tallysync

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rneelappa/vyaapari-nexus-sub000/models"
)

// tenantResolver memoizes (company name, division name) -> TenantScope for
// the lifetime of one sync run. The cache is process-local and owned by a
// single sequential run, so no locking.
type tenantResolver struct {
	wh    Warehouse
	cache map[string]TenantScope
}

func newTenantResolver(wh Warehouse) *tenantResolver {
	return &tenantResolver{wh: wh, cache: map[string]TenantScope{}}
}

func (tr *tenantResolver) resolve(ctx context.Context, companyName, divisionName string) (TenantScope, error) {
	if companyName == "" {
		return TenantScope{}, errors.New("company name is missing")
	}
	if divisionName == "" {
		divisionName = models.DefaultDivisionName
	}

	key := companyName + "_" + divisionName
	if scope, ok := tr.cache[key]; ok {
		return scope, nil
	}

	companyId, err := tr.wh.EnsureCompany(ctx, companyName)
	if err != nil {
		return TenantScope{}, err
	}
	divisionId, err := tr.wh.EnsureDivision(ctx, companyId, divisionName)
	if err != nil {
		return TenantScope{}, err
	}

	scope := TenantScope{CompanyId: companyId, DivisionId: divisionId}
	tr.cache[key] = scope
	return scope, nil
}

// lookupCache memoizes parent-name lookups within one run. Misses are cached
// too: a name that did not resolve once will not resolve later in the same
// table pass, and re-querying it per row is the dominant cost on large pulls.
type lookupCache struct {
	wh      Warehouse
	hits    map[string]uuid.UUID
	misses  map[string]bool
	guidIds map[string]map[string]uuid.UUID // table|scope -> guid -> id
}

func newLookupCache(wh Warehouse) *lookupCache {
	return &lookupCache{
		wh:      wh,
		hits:    map[string]uuid.UUID{},
		misses:  map[string]bool{},
		guidIds: map[string]map[string]uuid.UUID{},
	}
}

func (lc *lookupCache) lookup(ctx context.Context, table string, scope TenantScope, column, value string) (uuid.UUID, bool, error) {
	key := table + "|" + scope.CompanyId.String() + "|" + scope.DivisionId.String() + "|" + column + "|" + value
	if id, ok := lc.hits[key]; ok {
		return id, true, nil
	}
	if lc.misses[key] {
		return uuid.Nil, false, nil
	}

	id, ok, err := lc.wh.LookupId(ctx, table, scope, column, value)
	if err != nil {
		return uuid.Nil, false, err
	}
	if !ok {
		lc.misses[key] = true
		return uuid.Nil, false, nil
	}
	lc.hits[key] = id
	return id, true, nil
}

// idsByGuid loads and caches the guid -> id map for one table and scope,
// used by the second pass of self-referential entities.
func (lc *lookupCache) idsByGuid(ctx context.Context, table string, scope TenantScope) (map[string]uuid.UUID, error) {
	key := table + "|" + scope.CompanyId.String() + "|" + scope.DivisionId.String()
	if ids, ok := lc.guidIds[key]; ok {
		return ids, nil
	}
	ids, err := lc.wh.IdsByGuid(ctx, table, scope)
	if err != nil {
		return nil, err
	}
	lc.guidIds[key] = ids
	return ids, nil
}
