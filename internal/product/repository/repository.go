// Package repository provides data persistence implementations for product entities.
package repository

import (
	"database/sql"
	"strings"

	apperrors "github.com/allisson/vending/internal/errors"
	productDomain "github.com/allisson/vending/internal/product/domain"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching q anywhere, with wildcards in q taken literally.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// requireAffected turns a statement that touched no row into ErrProductNotFound.
func requireAffected(result sql.Result, errMessage string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, errMessage)
	}
	if rows == 0 {
		return productDomain.ErrProductNotFound
	}
	return nil
}
