package tallysync

import (
	"fmt"
	"sort"
)

// ParentRef declares one named reference to an already-synced table.
// Matching is exact and case-sensitive within the row's tenant scope; first
// match wins if the warehouse ever holds duplicate names. A miss leaves the
// column NULL unless Required, in which case the whole row is skipped.
type ParentRef struct {
	Column      string // warehouse column to fill, e.g. "group_id"
	Table       string // warehouse table looked up
	By          string // warehouse column matched: "name" or "guid"
	SourceField string // source field supplying the match value
	Required    bool
}

// SelfRef marks an entity whose parent is another row of the same table.
// These sync in two passes: insert with the link unset, then update links
// once every row's warehouse id is known.
type SelfRef struct {
	Column      string // e.g. "parent_id"
	SourceField string // e.g. "parent"
}

type EntityDescriptor struct {
	Name           string // table name used in the sync API
	Label          string // human label used in error details
	SourceTable    string
	DestTable      string
	NameField      string // source field identifying a row in error details
	Batched        bool   // high-volume: source pull capped by batchSize
	TenantFiltered bool   // source carries tenant columns usable as filters
	SelfRef        *SelfRef
	ParentRefs     []ParentRef
	Fields         func(r SourceRow) map[string]any
}

// Registry declares every synced entity. The slice order is the preferred
// sequence; the binding order is recomputed topologically from the declared
// parent references at init so a reference to a later table cannot slip in
// unnoticed.
var Registry = []EntityDescriptor{
	{
		Name:        "company",
		Label:       "Company",
		SourceTable: "mst_company",
		DestTable:   "companies",
		NameField:   "name",
	},
	{
		Name:        "division",
		Label:       "Division",
		SourceTable: "mst_division",
		DestTable:   "divisions",
		NameField:   "name",
	},
	{
		Name:           "unit_of_measure",
		Label:          "Unit of Measure",
		SourceTable:    "mst_uom",
		DestTable:      "units_of_measure",
		NameField:      "name",
		TenantFiltered: true,
		Fields: func(r SourceRow) map[string]any {
			return map[string]any{
				"name":             r.Str("name"),
				"formal_name":      r.StrPtr("formal_name"),
				"is_simple_unit":   r.Bool("is_simple_unit"),
				"base_units":       r.StrPtr("base_units"),
				"additional_units": r.StrPtr("additional_units"),
				"conversion":       r.Decimal("conversion"),
			}
		},
	},
	{
		Name:           "group",
		Label:          "Group",
		SourceTable:    "mst_group",
		DestTable:      "groups",
		NameField:      "name",
		TenantFiltered: true,
		SelfRef:        &SelfRef{Column: "parent_id", SourceField: "parent"},
		Fields: func(r SourceRow) map[string]any {
			return map[string]any{
				"name":                 r.Str("name"),
				"parent":               r.StrPtr("parent"),
				"primary_group":        r.StrPtr("primary_group"),
				"is_revenue":           r.Bool("is_revenue"),
				"is_deemedpositive":    r.Bool("is_deemedpositive"),
				"is_reserved":          r.Bool("is_reserved"),
				"affects_gross_profit": r.Bool("affects_gross_profit"),
				"sort_position":        r.Int("sort_position"),
			}
		},
	},
	{
		Name:           "ledger",
		Label:          "Ledger",
		SourceTable:    "mst_ledger",
		DestTable:      "ledgers",
		NameField:      "name",
		TenantFiltered: true,
		ParentRefs: []ParentRef{
			{Column: "group_id", Table: "groups", By: "name", SourceField: "parent"},
		},
		Fields: func(r SourceRow) map[string]any {
			return map[string]any{
				"name":                  r.Str("name"),
				"parent":                r.StrPtr("parent"),
				"alias":                 r.StrPtr("alias"),
				"description":           r.StrPtr("description"),
				"notes":                 r.StrPtr("notes"),
				"is_revenue":            r.Bool("is_revenue"),
				"is_deemedpositive":     r.Bool("is_deemedpositive"),
				"opening_balance":       r.Decimal("opening_balance"),
				"closing_balance":       r.Decimal("closing_balance"),
				"mailing_name":          r.StrPtr("mailing_name"),
				"mailing_address":       r.StrPtr("mailing_address"),
				"mailing_state":         r.StrPtr("mailing_state"),
				"mailing_country":       r.StrPtr("mailing_country"),
				"mailing_pincode":       r.StrPtr("mailing_pincode"),
				"email":                 r.StrPtr("email"),
				"it_pan":                r.StrPtr("it_pan"),
				"gst_number":            r.StrPtr("gstn"),
				"gst_registration_type": r.StrPtr("gst_registration_type"),
				"gst_supply_type":       r.StrPtr("gst_supply_type"),
				"bank_account_holder":   r.StrPtr("bank_account_holder"),
				"bank_account_number":   r.StrPtr("bank_account_number"),
				"bank_ifsc":             r.StrPtr("bank_ifsc"),
				"bank_swift":            r.StrPtr("bank_swift"),
				"bank_name":             r.StrPtr("bank_name"),
				"bank_branch":           r.StrPtr("bank_branch"),
				"bill_credit_period":    r.Int("bill_credit_period"),
			}
		},
	},
	{
		Name:           "stock_group",
		Label:          "Stock Group",
		SourceTable:    "mst_stock_group",
		DestTable:      "stock_groups",
		NameField:      "name",
		TenantFiltered: true,
		SelfRef:        &SelfRef{Column: "parent_id", SourceField: "parent"},
		Fields: func(r SourceRow) map[string]any {
			return map[string]any{
				"name":   r.Str("name"),
				"parent": r.StrPtr("parent"),
			}
		},
	},
	{
		Name:           "stock_item",
		Label:          "Stock Item",
		SourceTable:    "mst_stock_item",
		DestTable:      "stock_items",
		NameField:      "name",
		TenantFiltered: true,
		ParentRefs: []ParentRef{
			{Column: "stock_group_id", Table: "stock_groups", By: "name", SourceField: "parent"},
			{Column: "uom_id", Table: "units_of_measure", By: "name", SourceField: "uom"},
		},
		Fields: func(r SourceRow) map[string]any {
			return map[string]any{
				"name":                r.Str("name"),
				"parent":              r.StrPtr("parent"),
				"alias":               r.StrPtr("alias"),
				"description":         r.StrPtr("description"),
				"uom":                 r.StrPtr("uom"),
				"opening_balance":     r.Decimal("opening_balance"),
				"opening_rate":        r.Decimal("opening_rate"),
				"opening_value":       r.Decimal("opening_value"),
				"closing_balance":     r.Decimal("closing_balance"),
				"closing_rate":        r.Decimal("closing_rate"),
				"closing_value":       r.Decimal("closing_value"),
				"gst_hsn_code":        r.StrPtr("gst_hsn_code"),
				"gst_hsn_description": r.StrPtr("gst_hsn_description"),
				"gst_rate":            r.Decimal("gst_rate"),
				"gst_taxability":      r.StrPtr("gst_taxability"),
			}
		},
	},
	{
		Name:           "godown",
		Label:          "Godown",
		SourceTable:    "mst_godown",
		DestTable:      "godowns",
		NameField:      "name",
		TenantFiltered: true,
		Fields: func(r SourceRow) map[string]any {
			return map[string]any{
				"name":    r.Str("name"),
				"parent":  r.StrPtr("parent"),
				"address": r.StrPtr("address"),
			}
		},
	},
	{
		Name:           "cost_category",
		Label:          "Cost Category",
		SourceTable:    "mst_cost_category",
		DestTable:      "cost_categories",
		NameField:      "name",
		TenantFiltered: true,
		Fields: func(r SourceRow) map[string]any {
			return map[string]any{
				"name":                 r.Str("name"),
				"allocate_revenue":     r.Bool("allocate_revenue"),
				"allocate_non_revenue": r.Bool("allocate_non_revenue"),
			}
		},
	},
	{
		Name:           "cost_centre",
		Label:          "Cost Centre",
		SourceTable:    "mst_cost_centre",
		DestTable:      "cost_centres",
		NameField:      "name",
		TenantFiltered: true,
		ParentRefs: []ParentRef{
			{Column: "category_id", Table: "cost_categories", By: "name", SourceField: "category"},
		},
		Fields: func(r SourceRow) map[string]any {
			return map[string]any{
				"name":     r.Str("name"),
				"parent":   r.StrPtr("parent"),
				"category": r.StrPtr("category"),
			}
		},
	},
	{
		Name:           "voucher_type",
		Label:          "Voucher Type",
		SourceTable:    "mst_vouchertype",
		DestTable:      "voucher_types",
		NameField:      "name",
		TenantFiltered: true,
		SelfRef:        &SelfRef{Column: "parent_id", SourceField: "parent"},
		Fields: func(r SourceRow) map[string]any {
			return map[string]any{
				"name":              r.Str("name"),
				"parent":            r.StrPtr("parent"),
				"numbering_method":  r.StrPtr("numbering_method"),
				"is_deemedpositive": r.Bool("is_deemedpositive"),
				"affects_stock":     r.Bool("affects_stock"),
			}
		},
	},
	{
		Name:           "voucher",
		Label:          "Voucher",
		SourceTable:    "trn_voucher",
		DestTable:      "vouchers",
		NameField:      "voucher_number",
		Batched:        true,
		TenantFiltered: true,
		ParentRefs: []ParentRef{
			{Column: "voucher_type_id", Table: "voucher_types", By: "name", SourceField: "voucher_type"},
			{Column: "party_ledger_id", Table: "ledgers", By: "name", SourceField: "party_name"},
		},
		Fields: func(r SourceRow) map[string]any {
			return map[string]any{
				"voucher_type":          r.StrPtr("voucher_type"),
				"date":                  r.Time("date"),
				"voucher_number":        r.StrPtr("voucher_number"),
				"reference_number":      r.StrPtr("reference_number"),
				"reference_date":        r.Time("reference_date"),
				"narration":             r.StrPtr("narration"),
				"party_name":            r.StrPtr("party_name"),
				"place_of_supply":       r.StrPtr("place_of_supply"),
				"total_amount":          r.Decimal("total_amount"),
				"is_invoice":            r.Bool("is_invoice"),
				"is_accounting_voucher": r.Bool("is_accounting_voucher"),
				"is_inventory_voucher":  r.Bool("is_inventory_voucher"),
				"is_order_voucher":      r.Bool("is_order_voucher"),
				"is_cancelled":          r.Bool("is_cancelled"),
				"is_optional":           r.Bool("is_optional"),
				"altered_by":            r.StrPtr("altered_by"),
				"altered_on":            r.Time("altered_on"),
			}
		},
	},
	{
		Name:           "ledger_entry",
		Label:          "Ledger Entry",
		SourceTable:    "trn_accounting",
		DestTable:      "ledger_entries",
		NameField:      "ledger",
		Batched:        true,
		TenantFiltered: true,
		ParentRefs: []ParentRef{
			{Column: "voucher_id", Table: "vouchers", By: "guid", SourceField: "voucher_guid", Required: true},
			{Column: "ledger_id", Table: "ledgers", By: "name", SourceField: "ledger"},
			{Column: "cost_centre_id", Table: "cost_centres", By: "name", SourceField: "cost_centre"},
		},
		Fields: func(r SourceRow) map[string]any {
			return map[string]any{
				"voucher_guid":      r.Str("voucher_guid"),
				"ledger":            r.StrPtr("ledger"),
				"amount":            r.Decimal("amount"),
				"amount_forex":      r.Decimal("amount_forex"),
				"currency":          r.StrPtr("currency"),
				"is_party_ledger":   r.Bool("is_party_ledger"),
				"is_deemedpositive": r.Bool("is_deemedpositive"),
				"cost_centre":       r.StrPtr("cost_centre"),
			}
		},
	},
	{
		Name:           "inventory_entry",
		Label:          "Inventory Entry",
		SourceTable:    "trn_inventory",
		DestTable:      "inventory_entries",
		NameField:      "item",
		Batched:        true,
		TenantFiltered: true,
		ParentRefs: []ParentRef{
			{Column: "voucher_id", Table: "vouchers", By: "guid", SourceField: "voucher_guid", Required: true},
			{Column: "stock_item_id", Table: "stock_items", By: "name", SourceField: "item"},
			{Column: "godown_id", Table: "godowns", By: "name", SourceField: "godown"},
		},
		Fields: func(r SourceRow) map[string]any {
			return map[string]any{
				"voucher_guid":      r.Str("voucher_guid"),
				"item":              r.StrPtr("item"),
				"quantity":          r.Decimal("quantity"),
				"rate":              r.Decimal("rate"),
				"amount":            r.Decimal("amount"),
				"additional_amount": r.Decimal("additional_amount"),
				"discount_amount":   r.Decimal("discount_amount"),
				"godown":            r.StrPtr("godown"),
				"tracking_number":   r.StrPtr("tracking_number"),
				"order_number":      r.StrPtr("order_number"),
				"order_due_date":    r.Time("order_due_date"),
			}
		},
	},
	{
		Name:           "address_detail",
		Label:          "Address Detail",
		SourceTable:    "mst_address_details",
		DestTable:      "address_details",
		NameField:      "ledger",
		TenantFiltered: true,
		ParentRefs: []ParentRef{
			{Column: "ledger_id", Table: "ledgers", By: "name", SourceField: "ledger"},
		},
		Fields: func(r SourceRow) map[string]any {
			return map[string]any{
				"ledger":         r.StrPtr("ledger"),
				"address":        r.StrPtr("address"),
				"state":          r.StrPtr("state"),
				"country":        r.StrPtr("country"),
				"pincode":        r.StrPtr("pincode"),
				"contact_person": r.StrPtr("contact_person"),
				"phone":          r.StrPtr("phone"),
				"email":          r.StrPtr("email"),
			}
		},
	},
	{
		Name:           "bank_detail",
		Label:          "Bank Detail",
		SourceTable:    "mst_bank_details",
		DestTable:      "bank_details",
		NameField:      "ledger",
		TenantFiltered: true,
		ParentRefs: []ParentRef{
			{Column: "ledger_id", Table: "ledgers", By: "name", SourceField: "ledger"},
		},
		Fields: func(r SourceRow) map[string]any {
			return map[string]any{
				"ledger":         r.StrPtr("ledger"),
				"account_holder": r.StrPtr("account_holder"),
				"account_number": r.StrPtr("account_number"),
				"ifsc":           r.StrPtr("ifsc"),
				"swift":          r.StrPtr("swift"),
				"bank_name":      r.StrPtr("bank_name"),
				"branch":         r.StrPtr("branch"),
			}
		},
	},
}

// syncOrder is the binding full-sync sequence, computed once at init.
var syncOrder []string

// descriptorsByName indexes Registry for sync_table dispatch.
var descriptorsByName = map[string]*EntityDescriptor{}

func init() {
	for i := range Registry {
		d := &Registry[i]
		if _, dup := descriptorsByName[d.Name]; dup {
			panic(fmt.Sprintf("tallysync: duplicate entity %q", d.Name))
		}
		descriptorsByName[d.Name] = d
	}
	order, err := computeOrder(Registry)
	if err != nil {
		panic(err)
	}
	syncOrder = order
}

// SyncOrder returns the dependency-ordered table list used by full_sync.
func SyncOrder() []string {
	out := make([]string, len(syncOrder))
	copy(out, syncOrder)
	return out
}

// Descriptor returns the entity registered under the given sync-table name.
func Descriptor(name string) (*EntityDescriptor, bool) {
	d, ok := descriptorsByName[name]
	return d, ok
}

// DependsOn lists the entities whose warehouse tables this entity looks up.
func (d *EntityDescriptor) DependsOn() []string {
	seen := map[string]bool{}
	var deps []string
	for _, ref := range d.ParentRefs {
		if ref.Table == d.DestTable {
			continue
		}
		owner := entityByDestTable(ref.Table)
		if owner == "" || seen[owner] {
			continue
		}
		seen[owner] = true
		deps = append(deps, owner)
	}
	// Division lookups during tenant resolution require company first.
	if d.Name == "division" {
		deps = append(deps, "company")
	} else if d.Name != "company" {
		deps = append(deps, "company", "division")
	}
	return deps
}

func entityByDestTable(destTable string) string {
	for i := range Registry {
		if Registry[i].DestTable == destTable {
			return Registry[i].Name
		}
	}
	return ""
}

// computeOrder runs Kahn's algorithm over the declared parent references,
// breaking ties by Registry position so the sequence stays stable. An entity
// whose reference cannot be placed earlier makes the graph cyclic and is a
// programming error in the registry.
func computeOrder(entities []EntityDescriptor) ([]string, error) {
	index := map[string]int{}
	for i := range entities {
		index[entities[i].Name] = i
	}

	indegree := map[string]int{}
	edges := map[string][]string{} // dependency -> dependents
	for i := range entities {
		name := entities[i].Name
		if _, ok := indegree[name]; !ok {
			indegree[name] = 0
		}
		for _, dep := range entities[i].DependsOn() {
			if _, ok := index[dep]; !ok {
				return nil, fmt.Errorf("tallysync: entity %q depends on unknown entity %q", name, dep)
			}
			edges[dep] = append(edges[dep], name)
			indegree[name]++
		}
	}

	var ready []string
	for name, deg := range indegree {
		if deg == 0 {
			ready = append(ready, name)
		}
	}

	var order []string
	for len(ready) > 0 {
		sort.Slice(ready, func(a, b int) bool { return index[ready[a]] < index[ready[b]] })
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)
		for _, dependent := range edges[next] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(order) != len(entities) {
		return nil, fmt.Errorf("tallysync: cyclic entity dependencies (ordered %d of %d)", len(order), len(entities))
	}
	return order, nil
}
