package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"
)

var unavailableMessages = []string{
	"connection refused",
	"connection reset",
	"database is closed",
	"bad connection",
	"no such host",
	"i/o timeout",
	"server has gone away",
	"too many connections",
}

// Unavailable reports whether err means the store could not be reached or
// did not answer in time, as opposed to rejecting the statement.
func Unavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, m := range unavailableMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
