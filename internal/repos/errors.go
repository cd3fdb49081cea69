package repos

import (
	"errors"
	"strings"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrDuplicate surfaces a unique-constraint violation (wishlist pair,
	// review pair, seller request, order transaction id).
	ErrDuplicate = errors.New("duplicate record")
	// ErrSoldOut is returned when a conditional quantity decrement matches
	// no row, i.e. the book is out of stock.
	ErrSoldOut = errors.New("out of stock")
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	// Driver versions differ in how they wrap constraint errors.
	return strings.Contains(err.Error(), "UNIQUE constraint")
}
