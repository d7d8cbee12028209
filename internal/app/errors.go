package app

import (
	"errors"

	"github.com/hrutik5321/leaguedash/internal/config"
	"github.com/hrutik5321/leaguedash/internal/query"
	"github.com/hrutik5321/leaguedash/internal/report"
)

// describeError turns an error into the status line shown to the user.
func describeError(err error) string {
	var (
		cfgErr   *config.Error
		queryErr *query.Error
		paramErr *report.ParamError
	)
	switch {
	case errors.As(err, &paramErr):
		return "Invalid input: " + paramErr.Error()
	case errors.As(err, &cfgErr):
		if errors.Is(err, config.ErrSectionNotFound) {
			return "Section [" + cfgErr.Section + "] not found in the " + cfgErr.Source + " file."
		}
		return "Configuration problem: " + cfgErr.Error()
	case errors.As(err, &queryErr):
		if queryErr.Op == "connect" {
			return "Could not connect to the database: " + queryErr.Err.Error()
		}
		return "Sorry! Something went wrong with your query, please try again. (" + queryErr.Err.Error() + ")"
	default:
		return "Error: " + err.Error()
	}
}
