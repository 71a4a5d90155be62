package models

import "github.com/restgate/registry-engine/pkg/catalog"

// Storage column names follow the upstream schema; identifiers are kept
// lowercase so they survive unquoted across all four backends.

func auditColumns() []catalog.Column {
	return []catalog.Column{
		{Name: "crt_dt", Type: catalog.TypeTimestamp},
		{Name: "mdfy_dt", Type: catalog.TypeTimestamp},
		{Name: "crt_user_id", Type: catalog.TypeString, Size: 40},
		{Name: "mdfy_user_id", Type: catalog.TypeString, Size: 40},
		{Name: "tid", Type: catalog.TypeString, Size: 100},
		{Name: "use_stat_cd", Type: catalog.TypeString, Size: 40},
		{Name: "rsn_cd", Type: catalog.TypeString, Size: 100},
		{Name: "trns_cm", Type: catalog.TypeString, Size: 100},
	}
}

func init() {
	catalog.Default.Register(catalog.TableDef{
		Entity:     "uri_def",
		Table:      "uri_defs",
		PrimaryKey: "obj_id",
		Columns: append([]catalog.Column{
			{Name: "obj_id", Type: catalog.TypeString, Size: 100, NotNull: true},
			{Name: "api_id", Type: catalog.TypeString, Size: 100, NotNull: true},
			{Name: "site_id", Type: catalog.TypeString, Size: 40, NotNull: true},
			{Name: "srv_nm", Type: catalog.TypeString, Size: 40, NotNull: true},
			{Name: "method_nm", Type: catalog.TypeString, Size: 10},
			{Name: "api_nm", Type: catalog.TypeString, Size: 40},
			{Name: "api_desc", Type: catalog.TypeText},
			{Name: "base_uri", Type: catalog.TypeString, Size: 100},
			{Name: "version_inf", Type: catalog.TypeString, Size: 20},
		}, auditColumns()...),
		Uniques: []catalog.Unique{
			{Name: "uri_defs_api_id_key", Columns: []string{"api_id"}},
		},
		Checks: []catalog.Check{
			{Name: "uri_defs_method_nm_check", Expr: "method_nm IN ('GET', 'POST', 'PUT', 'DELETE', 'PATCH')"},
		},
	})

	// uri_path references uri_def by entity name; the catalog resolves the
	// target table at validation time, so registration order here is free.
	catalog.Default.Register(catalog.TableDef{
		Entity:     "uri_path",
		Table:      "uri_paths",
		PrimaryKey: "obj_id",
		Columns: append([]catalog.Column{
			{Name: "obj_id", Type: catalog.TypeString, Size: 100, NotNull: true},
			{Name: "api_id", Type: catalog.TypeString, Size: 100, NotNull: true},
			{Name: "path_order", Type: catalog.TypeInt, NotNull: true},
			{Name: "path_value", Type: catalog.TypeString, Size: 100, NotNull: true},
			{Name: "is_param_use", Type: catalog.TypeBool},
			{Name: "param_nm", Type: catalog.TypeString, Size: 100},
			{Name: "param_typ", Type: catalog.TypeString, Size: 40},
			{Name: "param_desc", Type: catalog.TypeText},
			{Name: "example_val", Type: catalog.TypeString, Size: 200},
		}, auditColumns()...),
		Uniques: []catalog.Unique{
			{Name: "uk_uri_paths_01", Columns: []string{"api_id", "path_order"}},
		},
		ForeignKeys: []catalog.ForeignKey{
			{Column: "api_id", RefEntity: "uri_def", RefColumn: "api_id"},
		},
	})

	catalog.Default.Register(catalog.TableDef{
		Entity:     "note",
		Table:      "notes",
		PrimaryKey: "obj_id",
		Columns: append([]catalog.Column{
			{Name: "obj_id", Type: catalog.TypeString, Size: 100, NotNull: true},
			{Name: "title", Type: catalog.TypeString, Size: 200, NotNull: true},
			{Name: "content", Type: catalog.TypeText},
		}, auditColumns()...),
	})

	catalog.Default.Register(catalog.TableDef{
		Entity:     "item",
		Table:      "items",
		PrimaryKey: "obj_id",
		Columns: append([]catalog.Column{
			{Name: "obj_id", Type: catalog.TypeString, Size: 100, NotNull: true},
			{Name: "item_nm", Type: catalog.TypeString, Size: 100, NotNull: true},
			{Name: "qty", Type: catalog.TypeInt, NotNull: true, Default: "0"},
			{Name: "price_cents", Type: catalog.TypeInt, NotNull: true, Default: "0"},
			{Name: "item_desc", Type: catalog.TypeText},
		}, auditColumns()...),
	})
}
