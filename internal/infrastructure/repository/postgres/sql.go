package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func stringArray(items []string) pq.StringArray {
	return pq.StringArray(items)
}
