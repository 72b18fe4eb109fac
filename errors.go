package qbench

import "github.com/pkg/errors"

// ErrInvalidArgument marks requests the benchmark refuses before doing any work.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidArgument(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
