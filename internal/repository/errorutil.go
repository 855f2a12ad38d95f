// Package repository provides listing storage behind ctx-first interfaces,
// with a sqlite implementation and an in-memory one for tests and previews.
package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/ericfisherdev/happyplace/internal/domain"
)

// IsNoRows checks if the error is a "no rows" error from SQL
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	return IsNoRows(err) || domain.IsNotFound(err)
}

func storeError(op string, err error) error {
	return domain.NewExternalServiceError("STORE_"+op, "Listing store "+strings.ToLower(op)+" failed", err)
}

