package common

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"syscall"
)

var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrDuplicateRecord    = errors.New("duplicate record")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// StorageError marks connection-level failures (refused connections, pool
// acquisition timeouts, broken connections) as ErrStorageUnavailable so callers can
// treat them as retryable. Any other error is returned unchanged.
func StorageError(err error) error {
	if err == nil || errors.Is(err, ErrStorageUnavailable) {
		return err
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.As(err, &netErr):
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	default:
		return err
	}
}
