package tallysync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NOTE: These tests are intentionally DB-free. They validate the sync
// semantics against in-memory stores: dependency-ordered linking, keyed
// idempotent upserts, per-record error isolation, and two-pass
// self-referential parent resolution.
//
// Postgres integration tests should be added in an environment that can run
// the warehouse schema; see orchestrator_integration_test.go.

type fakeSource struct {
	rows map[string][]SourceRow
	fail map[string]error
}

func newFakeSource() *fakeSource {
	return &fakeSource{rows: map[string][]SourceRow{}, fail: map[string]error{}}
}

func (s *fakeSource) Rows(_ context.Context, q SourceQuery) ([]SourceRow, error) {
	if err := s.fail[q.Table]; err != nil {
		return nil, err
	}
	rows := s.rows[q.Table]
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	return rows, nil
}

type fakeRow struct {
	id     uuid.UUID
	scope  TenantScope
	guid   string
	fields map[string]any
}

type fakeWarehouse struct {
	companies          map[string]uuid.UUID
	divisions          map[string]uuid.UUID // companyId|name
	companyFields      map[uuid.UUID]map[string]any
	divisionFields     map[uuid.UUID]map[string]any
	tables             map[string][]*fakeRow
	ensureCompanyCalls int
	failGuids          map[string]error
}

func newFakeWarehouse() *fakeWarehouse {
	return &fakeWarehouse{
		companies:      map[string]uuid.UUID{},
		divisions:      map[string]uuid.UUID{},
		companyFields:  map[uuid.UUID]map[string]any{},
		divisionFields: map[uuid.UUID]map[string]any{},
		tables:         map[string][]*fakeRow{},
		failGuids:      map[string]error{},
	}
}

func (f *fakeWarehouse) EnsureCompany(_ context.Context, name string) (uuid.UUID, error) {
	f.ensureCompanyCalls++
	if id, ok := f.companies[name]; ok {
		return id, nil
	}
	id := uuid.New()
	f.companies[name] = id
	return id, nil
}

func (f *fakeWarehouse) EnsureDivision(_ context.Context, companyId uuid.UUID, name string) (uuid.UUID, error) {
	key := companyId.String() + "|" + name
	if id, ok := f.divisions[key]; ok {
		return id, nil
	}
	id := uuid.New()
	f.divisions[key] = id
	return id, nil
}

func (f *fakeWarehouse) UpdateCompany(_ context.Context, id uuid.UUID, fields map[string]any) error {
	f.companyFields[id] = fields
	return nil
}

func (f *fakeWarehouse) UpdateDivision(_ context.Context, id uuid.UUID, fields map[string]any) error {
	f.divisionFields[id] = fields
	return nil
}

func (f *fakeWarehouse) Upsert(_ context.Context, table string, scope TenantScope, guid string, fields map[string]any) error {
	if err := f.failGuids[guid]; err != nil {
		return err
	}
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	for _, row := range f.tables[table] {
		if row.scope == scope && row.guid == guid {
			for k, v := range copied {
				row.fields[k] = v
			}
			return nil
		}
	}
	f.tables[table] = append(f.tables[table], &fakeRow{
		id:     uuid.New(),
		scope:  scope,
		guid:   guid,
		fields: copied,
	})
	return nil
}

func (f *fakeWarehouse) LookupId(_ context.Context, table string, scope TenantScope, column, value string) (uuid.UUID, bool, error) {
	for _, row := range f.tables[table] {
		if row.scope != scope {
			continue
		}
		if column == "guid" {
			if row.guid == value {
				return row.id, true, nil
			}
			continue
		}
		if fieldString(row.fields[column]) == value {
			return row.id, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func (f *fakeWarehouse) IdsByGuid(_ context.Context, table string, scope TenantScope) (map[string]uuid.UUID, error) {
	out := map[string]uuid.UUID{}
	for _, row := range f.tables[table] {
		if row.scope == scope {
			out[row.guid] = row.id
		}
	}
	return out, nil
}

func (f *fakeWarehouse) LinkParent(_ context.Context, table string, id uuid.UUID, column string, parentId uuid.UUID) error {
	for _, row := range f.tables[table] {
		if row.id == id {
			row.fields[column] = parentId
			return nil
		}
	}
	return fmt.Errorf("row %s not found in %s", id, table)
}

func (f *fakeWarehouse) rowByGuid(table, guid string) *fakeRow {
	for _, row := range f.tables[table] {
		if row.guid == guid {
			return row
		}
	}
	return nil
}

func fieldString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	default:
		return fmt.Sprint(t)
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testEngine(src SourceReader, wh Warehouse) *engine {
	return newEngine(src, wh, testLogger(), 0)
}

func mustDescriptor(t *testing.T, name string) *EntityDescriptor {
	t.Helper()
	desc, ok := Descriptor(name)
	if !ok {
		t.Fatalf("descriptor %q not registered", name)
	}
	return desc
}

func groupRow(guid, name, parent string) SourceRow {
	return SourceRow{
		"guid":          guid,
		"name":          name,
		"parent":        parent,
		"company_name":  "Acme Ltd",
		"division_name": "North",
	}
}

func TestSyncEntity_InsertsAndIsIdempotent(t *testing.T) {
	src := newFakeSource()
	src.rows["mst_group"] = []SourceRow{
		groupRow("g-1", "Assets", ""),
		groupRow("g-2", "Liabilities", ""),
	}
	wh := newFakeWarehouse()

	ctx := context.Background()
	desc := mustDescriptor(t, "group")

	for pass := 0; pass < 2; pass++ {
		res, err := testEngine(src, wh).syncEntity(ctx, desc, SyncOptions{})
		if err != nil {
			t.Fatalf("pass %d: %v", pass, err)
		}
		if res.Synced != 2 || res.Errors != 0 {
			t.Fatalf("pass %d: expected 2 synced 0 errors, got %d/%d", pass, res.Synced, res.Errors)
		}
	}
	if n := len(wh.tables["groups"]); n != 2 {
		t.Fatalf("expected 2 group rows after a re-run, got %d", n)
	}
}

func TestSyncEntity_UpsertUpdatesInPlace(t *testing.T) {
	src := newFakeSource()
	src.rows["mst_ledger"] = []SourceRow{{
		"guid": "l-1", "name": "HDFC Bank",
		"company_name": "Acme Ltd", "division_name": "North",
		"opening_balance": "100.00",
	}}
	wh := newFakeWarehouse()
	ctx := context.Background()
	desc := mustDescriptor(t, "ledger")

	if _, err := testEngine(src, wh).syncEntity(ctx, desc, SyncOptions{}); err != nil {
		t.Fatal(err)
	}
	src.rows["mst_ledger"][0]["opening_balance"] = "250.50"
	if _, err := testEngine(src, wh).syncEntity(ctx, desc, SyncOptions{}); err != nil {
		t.Fatal(err)
	}

	if n := len(wh.tables["ledgers"]); n != 1 {
		t.Fatalf("expected 1 ledger row, got %d", n)
	}
	row := wh.rowByGuid("ledgers", "l-1")
	if got := fmt.Sprint(row.fields["opening_balance"]); got != "250.5" {
		t.Fatalf("expected opening_balance 250.5, got %s", got)
	}
}

func TestSyncEntity_PerRecordErrorIsolation(t *testing.T) {
	src := newFakeSource()
	src.rows["mst_ledger"] = []SourceRow{
		{"guid": "l-1", "name": "Cash", "company_name": "Acme Ltd"},
		{"name": "No Guid Here", "company_name": "Acme Ltd"},
		{"guid": "l-3", "name": "Sales", "company_name": "Acme Ltd"},
	}
	wh := newFakeWarehouse()

	res, err := testEngine(src, wh).syncEntity(context.Background(), mustDescriptor(t, "ledger"), SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Synced != 2 || res.Errors != 1 {
		t.Fatalf("expected 2 synced 1 error, got %d/%d", res.Synced, res.Errors)
	}
	if len(res.ErrorDetails) != 1 || !strings.Contains(res.ErrorDetails[0], "No Guid Here") {
		t.Fatalf("error detail should identify the failed row, got %v", res.ErrorDetails)
	}
	if n := len(wh.tables["ledgers"]); n != 2 {
		t.Fatalf("expected 2 ledger rows, got %d", n)
	}
}

func TestSyncEntity_ParentResolvedWhenSyncedFirst(t *testing.T) {
	src := newFakeSource()
	src.rows["mst_group"] = []SourceRow{groupRow("g-1", "Bank Accounts", "")}
	src.rows["mst_ledger"] = []SourceRow{{
		"guid": "l-1", "name": "HDFC Bank", "parent": "Bank Accounts",
		"company_name": "Acme Ltd", "division_name": "North",
	}}
	wh := newFakeWarehouse()
	eng := testEngine(src, wh)
	ctx := context.Background()

	if _, err := eng.syncEntity(ctx, mustDescriptor(t, "group"), SyncOptions{}); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.syncEntity(ctx, mustDescriptor(t, "ledger"), SyncOptions{}); err != nil {
		t.Fatal(err)
	}

	group := wh.rowByGuid("groups", "g-1")
	ledger := wh.rowByGuid("ledgers", "l-1")
	if ledger.fields["group_id"] != group.id {
		t.Fatalf("ledger group_id = %v, want %v", ledger.fields["group_id"], group.id)
	}
}

func TestSyncEntity_UnknownOptionalParentLeftNull(t *testing.T) {
	src := newFakeSource()
	src.rows["mst_ledger"] = []SourceRow{{
		"guid": "l-1", "name": "HDFC Bank", "parent": "Never Synced",
		"company_name": "Acme Ltd",
	}}
	wh := newFakeWarehouse()

	res, err := testEngine(src, wh).syncEntity(context.Background(), mustDescriptor(t, "ledger"), SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Synced != 1 || res.Errors != 0 {
		t.Fatalf("unresolved optional parent must not fail the row, got %d/%d", res.Synced, res.Errors)
	}
	if got := wh.rowByGuid("ledgers", "l-1").fields["group_id"]; got != nil {
		t.Fatalf("expected NULL group_id, got %v", got)
	}
}

func TestSyncEntity_OrphanEntrySkipped(t *testing.T) {
	src := newFakeSource()
	src.rows["trn_accounting"] = []SourceRow{{
		"guid": "e-1", "ledger": "Cash", "voucher_guid": "no-such-voucher",
		"amount": "10", "company_name": "Acme Ltd",
	}}
	wh := newFakeWarehouse()

	res, err := testEngine(src, wh).syncEntity(context.Background(), mustDescriptor(t, "ledger_entry"), SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Synced != 0 || res.Errors != 1 {
		t.Fatalf("orphan entry should be skipped and counted, got %d/%d", res.Synced, res.Errors)
	}
	if len(wh.tables["ledger_entries"]) != 0 {
		t.Fatal("orphan entry must not be inserted")
	}
	if !strings.Contains(res.ErrorDetails[0], "no-such-voucher") {
		t.Fatalf("error detail should carry the dangling guid, got %v", res.ErrorDetails)
	}
}

func TestSyncEntity_EntryLinksItsVoucher(t *testing.T) {
	src := newFakeSource()
	src.rows["trn_voucher"] = []SourceRow{{
		"guid": "v-1", "voucher_number": "SAL/001", "voucher_type": "Sales",
		"company_name": "Acme Ltd",
	}}
	src.rows["trn_accounting"] = []SourceRow{{
		"guid": "e-1", "ledger": "Cash", "voucher_guid": "v-1",
		"amount": "150.00", "company_name": "Acme Ltd",
	}}
	wh := newFakeWarehouse()
	eng := testEngine(src, wh)
	ctx := context.Background()

	if _, err := eng.syncEntity(ctx, mustDescriptor(t, "voucher"), SyncOptions{}); err != nil {
		t.Fatal(err)
	}
	res, err := eng.syncEntity(ctx, mustDescriptor(t, "ledger_entry"), SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Synced != 1 || res.Errors != 0 {
		t.Fatalf("expected clean sync, got %d/%d %v", res.Synced, res.Errors, res.ErrorDetails)
	}

	voucher := wh.rowByGuid("vouchers", "v-1")
	entry := wh.rowByGuid("ledger_entries", "e-1")
	if entry.fields["voucher_id"] != voucher.id {
		t.Fatalf("entry voucher_id = %v, want %v", entry.fields["voucher_id"], voucher.id)
	}
}

func TestSelfRef_TwoPassResolvesForwardReference(t *testing.T) {
	// Child appears before its parent in raw source order; only the second
	// pass can link it.
	src := newFakeSource()
	src.rows["mst_group"] = []SourceRow{
		groupRow("g-cash", "Cash-in-Hand", "Current Assets"),
		groupRow("g-current", "Current Assets", "Assets"),
		groupRow("g-assets", "Assets", ""),
	}
	wh := newFakeWarehouse()

	res, err := testEngine(src, wh).syncEntity(context.Background(), mustDescriptor(t, "group"), SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Synced != 3 || res.Errors != 0 {
		t.Fatalf("expected 3 synced, got %d/%d %v", res.Synced, res.Errors, res.ErrorDetails)
	}

	assets := wh.rowByGuid("groups", "g-assets")
	current := wh.rowByGuid("groups", "g-current")
	cash := wh.rowByGuid("groups", "g-cash")
	if current.fields["parent_id"] != assets.id {
		t.Fatalf("Current Assets parent_id = %v, want %v", current.fields["parent_id"], assets.id)
	}
	if cash.fields["parent_id"] != current.id {
		t.Fatalf("Cash-in-Hand parent_id = %v, want %v", cash.fields["parent_id"], current.id)
	}
	if got := assets.fields["parent_id"]; got != nil {
		t.Fatalf("top-level group should stay unlinked, got %v", got)
	}
}

func TestSelfRef_UnknownParentStaysUnlinked(t *testing.T) {
	src := newFakeSource()
	src.rows["mst_group"] = []SourceRow{groupRow("g-1", "Deposits", "Not In Source")}
	wh := newFakeWarehouse()

	res, err := testEngine(src, wh).syncEntity(context.Background(), mustDescriptor(t, "group"), SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Synced != 1 || res.Errors != 0 {
		t.Fatalf("unknown self parent must not fail the row, got %d/%d", res.Synced, res.Errors)
	}
	if got := wh.rowByGuid("groups", "g-1").fields["parent_id"]; got != nil {
		t.Fatalf("expected unlinked parent, got %v", got)
	}
}

func TestSyncEntity_SameGuidInTwoScopesStaysSeparate(t *testing.T) {
	src := newFakeSource()
	src.rows["mst_group"] = []SourceRow{
		{"guid": "shared", "name": "Assets", "company_name": "Acme Ltd"},
		{"guid": "shared", "name": "Assets", "company_name": "Globex Inc"},
	}
	wh := newFakeWarehouse()

	res, err := testEngine(src, wh).syncEntity(context.Background(), mustDescriptor(t, "group"), SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Synced != 2 {
		t.Fatalf("expected both scoped rows synced, got %d", res.Synced)
	}
	if n := len(wh.tables["groups"]); n != 2 {
		t.Fatalf("same guid in two tenants must produce two rows, got %d", n)
	}
}

func TestTenantResolver_DefaultsDivisionAndCaches(t *testing.T) {
	src := newFakeSource()
	src.rows["mst_group"] = []SourceRow{
		{"guid": "g-1", "name": "Assets", "company_name": "Acme Ltd"},
		{"guid": "g-2", "name": "Liabilities", "company_name": "Acme Ltd"},
		{"guid": "g-3", "name": "Income", "company_name": "Acme Ltd"},
	}
	wh := newFakeWarehouse()

	if _, err := testEngine(src, wh).syncEntity(context.Background(), mustDescriptor(t, "group"), SyncOptions{}); err != nil {
		t.Fatal(err)
	}

	companyId, ok := wh.companies["Acme Ltd"]
	if !ok {
		t.Fatal("company should have been created on first use")
	}
	if _, ok := wh.divisions[companyId.String()+"|Default"]; !ok {
		t.Fatal("empty division name should resolve to the Default division")
	}
	if wh.ensureCompanyCalls != 1 {
		t.Fatalf("tenant scope should be resolved once per run, got %d calls", wh.ensureCompanyCalls)
	}
}

func TestSyncEntity_RowMissingCompanyFails(t *testing.T) {
	src := newFakeSource()
	src.rows["mst_group"] = []SourceRow{{"guid": "g-1", "name": "Assets"}}
	wh := newFakeWarehouse()

	res, err := testEngine(src, wh).syncEntity(context.Background(), mustDescriptor(t, "group"), SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Synced != 0 || res.Errors != 1 {
		t.Fatalf("row without a company cannot be scoped, got %d/%d", res.Synced, res.Errors)
	}
}

func TestSyncEntity_BatchLimitApplied(t *testing.T) {
	src := newFakeSource()
	for i := 0; i < 5; i++ {
		src.rows["trn_voucher"] = append(src.rows["trn_voucher"], SourceRow{
			"guid": fmt.Sprintf("v-%d", i), "voucher_number": fmt.Sprintf("N-%d", i),
			"company_name": "Acme Ltd",
		})
	}
	wh := newFakeWarehouse()

	res, err := testEngine(src, wh).syncEntity(context.Background(), mustDescriptor(t, "voucher"), SyncOptions{BatchSize: 3})
	if err != nil {
		t.Fatal(err)
	}
	if res.Synced != 3 {
		t.Fatalf("batched table should honor the batch cap, got %d", res.Synced)
	}
}

func TestSyncEntity_UpsertFailureIsIsolated(t *testing.T) {
	src := newFakeSource()
	src.rows["mst_group"] = []SourceRow{
		groupRow("g-1", "Assets", ""),
		groupRow("g-2", "Broken", ""),
		groupRow("g-3", "Income", ""),
	}
	wh := newFakeWarehouse()
	wh.failGuids["g-2"] = errors.New("deadlock detected")

	res, err := testEngine(src, wh).syncEntity(context.Background(), mustDescriptor(t, "group"), SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Synced != 2 || res.Errors != 1 {
		t.Fatalf("expected 2 synced 1 error, got %d/%d", res.Synced, res.Errors)
	}
	if !strings.Contains(res.ErrorDetails[0], "Broken") || !strings.Contains(res.ErrorDetails[0], "deadlock detected") {
		t.Fatalf("detail should name the row and the cause, got %v", res.ErrorDetails)
	}
}

func TestSyncCompanies_UpsertsByName(t *testing.T) {
	src := newFakeSource()
	src.rows["mst_company"] = []SourceRow{
		{"guid": "c-1", "name": "Acme Ltd", "state": "Karnataka"},
		{"name": ""},
	}
	wh := newFakeWarehouse()
	eng := testEngine(src, wh)

	res, err := eng.syncCompanies(context.Background(), mustDescriptor(t, "company"), SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Synced != 1 || res.Errors != 1 {
		t.Fatalf("expected 1 synced 1 error, got %d/%d", res.Synced, res.Errors)
	}
	id, ok := wh.companies["Acme Ltd"]
	if !ok {
		t.Fatal("company not created")
	}
	if got := wh.companyFields[id]["guid"]; got != "c-1" {
		t.Fatalf("company guid = %v, want c-1", got)
	}
}

func TestSyncDivisions_NestUnderCompany(t *testing.T) {
	src := newFakeSource()
	src.rows["mst_division"] = []SourceRow{
		{"guid": "d-1", "name": "North", "company_name": "Acme Ltd"},
	}
	wh := newFakeWarehouse()
	eng := testEngine(src, wh)

	res, err := eng.syncDivisions(context.Background(), mustDescriptor(t, "division"), SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Synced != 1 || res.Errors != 0 {
		t.Fatalf("expected clean division sync, got %d/%d", res.Synced, res.Errors)
	}
	companyId := wh.companies["Acme Ltd"]
	if _, ok := wh.divisions[companyId.String()+"|North"]; !ok {
		t.Fatal("division should be keyed under its company")
	}
}
