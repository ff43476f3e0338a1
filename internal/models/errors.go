// ABOUTME: Sentinel errors shared by storage backends and the engine.
// ABOUTME: Backends wrap ErrNotFound so callers can match with errors.Is.
package models

import "errors"

// ErrNotFound reports a missing record.
var ErrNotFound = errors.New("not found")
