package taskstore

import (
	"errors"
	"fmt"

	"github.com/pragyakeshap/awesome-docker-experiments/pkg/cerr"
)

// WrapReadError maps a Get or Info failure onto the coded error surface.
// The sentinels keep their meaning: absent records are not_found, an
// unreachable backend is unavailable, anything else is internal.
func WrapReadError(target string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return cerr.NewError(cerr.NotFound, fmt.Sprintf("%s not found", target), err)
	}
	if errors.Is(err, ErrUnavailable) {
		return cerr.NewError(cerr.Unavailable, "task store unavailable", err)
	}
	return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to read %s: %w", target, err))
}

// WrapWriteError maps a Put failure. Only an unreachable backend is
// unavailable; a write that fails for any other reason is internal.
func WrapWriteError(target string, err error) error {
	if errors.Is(err, ErrUnavailable) {
		return cerr.NewError(cerr.Unavailable, fmt.Sprintf("%s could not be persisted", target), err)
	}
	return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to write %s: %w", target, err))
}
