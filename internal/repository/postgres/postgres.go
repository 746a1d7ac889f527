package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"jobbridge/internal/common"
)

const uniqueViolation = "23505"

// storeError separates transient infrastructure faults, which callers may
// retry, from everything else.
func storeError(message string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.Is(err, driver.ErrBadConn) {
		return common.NewError(common.CodeUnavailable, message, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return common.NewError(common.CodeUnavailable, message, err)
	}
	return common.NewError(common.CodeInternal, message, err)
}

func versionConflict() error {
	return common.NewError(common.CodeConflict, "record version changed", nil)
}
