package report

import (
	"github.com/hrutik5321/leaguedash/internal/db"
	"github.com/jackc/pgx/v5"
)

const listTablesSQL = `SELECT relname FROM pg_class WHERE relkind = 'r' AND relname !~ '^(pg_|sql_)' ORDER BY relname;`

func homeReports() []*Report {
	return []*Report{
		{
			ID:      "home/tables",
			Section: Home,
			Title:   "Tables",
			Params: []Param{
				{
					Name:  "table",
					Label: "Choose a table",
					Kind:  Choice,
					OptionsQuery: func(Values) db.Statement {
						return db.Statement{SQL: listTablesSQL}
					},
				},
			},
			// The table name is an identifier and cannot be bound; Resolve
			// only lets through names listed by pg_class.
			Build: func(v Values) (db.Statement, error) {
				return db.Statement{SQL: "SELECT * FROM " + pgx.Identifier{v.Get("table")}.Sanitize() + ";"}, nil
			},
		},
	}
}
