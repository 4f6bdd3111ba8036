package tallysync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rneelappa/vyaapari-nexus-sub000/config"
)

// engine runs one sync invocation. Tenant and lookup caches live exactly as
// long as the engine, so every run starts cold.
type engine struct {
	source      SourceReader
	wh          Warehouse
	logger      *logrus.Logger
	tenants     *tenantResolver
	lookups     *lookupCache
	callTimeout time.Duration
}

func newEngine(source SourceReader, wh Warehouse, logger *logrus.Logger, callTimeout time.Duration) *engine {
	return &engine{
		source:      source,
		wh:          wh,
		logger:      logger,
		tenants:     newTenantResolver(wh),
		lookups:     newLookupCache(wh),
		callTimeout: callTimeout,
	}
}

// call bounds one store round-trip so a stuck call surfaces as a row or
// table error instead of hanging the whole run.
func (e *engine) call(ctx context.Context, f func(ctx context.Context) error) error {
	if e.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.callTimeout)
		defer cancel()
	}
	return f(ctx)
}

// linkJob is one deferred self-referential parent link, applied on pass 2
// once every row of the table has a warehouse id.
type linkJob struct {
	scope      TenantScope
	guid       string
	name       string
	parentName string
}

// syncEntity pulls the entity's source rows and upserts them one at a time.
// A returned error means the table could not be processed at all (source
// read failure); per-row failures are folded into the result and never stop
// the remaining rows.
func (e *engine) syncEntity(ctx context.Context, desc *EntityDescriptor, opt SyncOptions) (SyncResult, error) {
	res := SyncResult{Table: desc.Name, ErrorDetails: []string{}}

	q := SourceQuery{Table: desc.SourceTable}
	if desc.TenantFiltered {
		q.CompanyId = opt.CompanyId
		q.DivisionId = opt.DivisionId
	}
	if desc.Batched && opt.BatchSize > 0 {
		q.Limit = opt.BatchSize
	}

	rows, err := e.source.Rows(ctx, q)
	if err != nil {
		return res, err
	}

	var links []linkJob
	for _, row := range rows {
		if ctx.Err() != nil {
			res.Errors++
			res.ErrorDetails = append(res.ErrorDetails,
				fmt.Sprintf("%s: run deadline exceeded before table completed", desc.Label))
			break
		}

		link, err := e.syncRow(ctx, desc, row)
		if err != nil {
			res.Errors++
			res.ErrorDetails = append(res.ErrorDetails,
				fmt.Sprintf("%s %s: %s", desc.Label, rowIdentity(desc, row), err.Error()))
			config.LogError(e.logger, "tallysync", "syncEntity", desc.Name, row.Str("guid"), err)
			continue
		}
		res.Synced++
		if link != nil {
			links = append(links, *link)
		}
	}

	if desc.SelfRef != nil {
		e.linkSelfRefs(ctx, desc, links, &res)
	}
	return res, nil
}

// syncRow processes one source row: tenant scope, parent references, field
// casts, then the keyed upsert. For self-referential entities it returns the
// deferred link to apply on pass 2.
func (e *engine) syncRow(ctx context.Context, desc *EntityDescriptor, row SourceRow) (*linkJob, error) {
	guid := row.Str("guid")
	if guid == "" {
		return nil, fmt.Errorf("source row has no guid")
	}

	scope, err := e.tenants.resolve(ctx, row.Str("company_name"), row.Str("division_name"))
	if err != nil {
		return nil, err
	}

	fields := desc.Fields(row)

	for _, ref := range desc.ParentRefs {
		value := row.Str(ref.SourceField)
		if value == "" {
			if ref.Required {
				return nil, fmt.Errorf("%s is missing, row skipped", ref.SourceField)
			}
			fields[ref.Column] = nil
			continue
		}

		var id uuid.UUID
		var ok bool
		err := e.call(ctx, func(c context.Context) error {
			var lerr error
			id, ok, lerr = e.lookups.lookup(c, ref.Table, scope, ref.By, value)
			return lerr
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			if ref.Required {
				// A transaction line without its voucher is not worth
				// keeping; skip the row instead of inserting it orphaned.
				return nil, fmt.Errorf("%s %s does not resolve, row skipped", ref.SourceField, value)
			}
			fields[ref.Column] = nil
			continue
		}
		fields[ref.Column] = id
	}

	err = e.call(ctx, func(c context.Context) error {
		return e.wh.Upsert(c, desc.DestTable, scope, guid, fields)
	})
	if err != nil {
		return nil, err
	}

	if desc.SelfRef != nil {
		return &linkJob{
			scope:      scope,
			guid:       guid,
			name:       row.Str(desc.NameField),
			parentName: row.Str(desc.SelfRef.SourceField),
		}, nil
	}
	return nil, nil
}

// linkSelfRefs is pass 2 for self-referential entities: every row now has a
// warehouse id, so forward references in the raw source order resolve too.
func (e *engine) linkSelfRefs(ctx context.Context, desc *EntityDescriptor, links []linkJob, res *SyncResult) {
	fail := func(link linkJob, err error) {
		res.Errors++
		res.ErrorDetails = append(res.ErrorDetails,
			fmt.Sprintf("%s %s: parent link failed: %s", desc.Label, link.name, err.Error()))
		config.LogError(e.logger, "tallysync", "linkSelfRefs", desc.Name, link.guid, err)
	}

	for _, link := range links {
		if link.parentName == "" || link.parentName == link.name {
			continue
		}

		var ids map[string]uuid.UUID
		err := e.call(ctx, func(c context.Context) error {
			var lerr error
			ids, lerr = e.lookups.idsByGuid(c, desc.DestTable, link.scope)
			return lerr
		})
		if err != nil {
			fail(link, err)
			continue
		}
		id, ok := ids[link.guid]
		if !ok {
			continue
		}

		var parentId uuid.UUID
		err = e.call(ctx, func(c context.Context) error {
			var lerr error
			parentId, ok, lerr = e.lookups.lookup(c, desc.DestTable, link.scope, "name", link.parentName)
			return lerr
		})
		if err != nil {
			fail(link, err)
			continue
		}
		if !ok {
			// Unknown parent name stays unlinked, same as cross-table refs.
			continue
		}

		err = e.call(ctx, func(c context.Context) error {
			return e.wh.LinkParent(c, desc.DestTable, id, desc.SelfRef.Column, parentId)
		})
		if err != nil {
			fail(link, err)
		}
	}
}

// syncCompanies upserts the company table itself. Companies are keyed by
// name (they are the tenant root), with the Tally guid stored alongside.
func (e *engine) syncCompanies(ctx context.Context, desc *EntityDescriptor, opt SyncOptions) (SyncResult, error) {
	res := SyncResult{Table: desc.Name, ErrorDetails: []string{}}

	rows, err := e.source.Rows(ctx, SourceQuery{Table: desc.SourceTable, CompanyId: opt.CompanyId})
	if err != nil {
		return res, err
	}

	for _, row := range rows {
		name := row.Str("name")
		if name == "" {
			res.Errors++
			res.ErrorDetails = append(res.ErrorDetails, "Company: source row has no name")
			continue
		}
		err := e.call(ctx, func(c context.Context) error {
			id, err := e.wh.EnsureCompany(c, name)
			if err != nil {
				return err
			}
			return e.wh.UpdateCompany(c, id, map[string]any{
				"guid":                 row.Str("guid"),
				"mailing_name":         row.StrPtr("mailing_name"),
				"address":              row.StrPtr("address"),
				"state":                row.StrPtr("state"),
				"country":              row.StrPtr("country"),
				"pincode":              row.StrPtr("pincode"),
				"email":                row.StrPtr("email"),
				"pan_number":           row.StrPtr("pan_number"),
				"gst_number":           row.StrPtr("gst_number"),
				"financial_year_start": row.Time("financial_year_start"),
				"books_begin_from":     row.Time("books_begin_from"),
			})
		})
		if err != nil {
			res.Errors++
			res.ErrorDetails = append(res.ErrorDetails, fmt.Sprintf("Company %s: %s", name, err.Error()))
			config.LogError(e.logger, "tallysync", "syncCompanies", desc.Name, name, err)
			continue
		}
		res.Synced++
	}
	return res, nil
}

// syncDivisions upserts divisions under their company, keyed by
// (company, name).
func (e *engine) syncDivisions(ctx context.Context, desc *EntityDescriptor, opt SyncOptions) (SyncResult, error) {
	res := SyncResult{Table: desc.Name, ErrorDetails: []string{}}

	rows, err := e.source.Rows(ctx, SourceQuery{Table: desc.SourceTable, CompanyId: opt.CompanyId})
	if err != nil {
		return res, err
	}

	for _, row := range rows {
		name := row.Str("name")
		companyName := row.Str("company_name")
		if name == "" || companyName == "" {
			res.Errors++
			res.ErrorDetails = append(res.ErrorDetails, "Division: source row has no name or company name")
			continue
		}
		err := e.call(ctx, func(c context.Context) error {
			companyId, err := e.wh.EnsureCompany(c, companyName)
			if err != nil {
				return err
			}
			id, err := e.wh.EnsureDivision(c, companyId, name)
			if err != nil {
				return err
			}
			return e.wh.UpdateDivision(c, id, map[string]any{
				"guid":      row.Str("guid"),
				"tally_url": row.StrPtr("tally_url"),
				"is_active": row.Bool("is_active"),
			})
		})
		if err != nil {
			res.Errors++
			res.ErrorDetails = append(res.ErrorDetails, fmt.Sprintf("Division %s: %s", name, err.Error()))
			config.LogError(e.logger, "tallysync", "syncDivisions", desc.Name, name, err)
			continue
		}
		res.Synced++
	}
	return res, nil
}

func rowIdentity(desc *EntityDescriptor, row SourceRow) string {
	if name := row.Str(desc.NameField); name != "" {
		return name
	}
	if guid := row.Str("guid"); guid != "" {
		return guid
	}
	return "(unidentified)"
}
