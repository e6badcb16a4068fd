package sql

import (
	"embed"
)

// Migrations holds the schema migrations, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/list_doctors.sql
var ListDoctors string

//go:embed queries/list_visits.sql
var ListVisits string

//go:embed queries/list_expenses.sql
var ListExpenses string

//go:embed queries/register_load.sql
var RegisterLoad string

//go:embed queries/lookup_load.sql
var LookupLoad string

//go:embed queries/update_load_status.sql
var UpdateLoadStatus string

//go:embed queries/delete_load_visits.sql
var DeleteLoadVisits string
