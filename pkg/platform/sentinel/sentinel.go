package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and the file layer return
// these (optionally wrapped) so services can translate them into domain errors.
//
// - ErrNotFound: file, document or record does not exist
// - ErrMalformed: input could not be decoded as a record
// - ErrUnavailable: the backing file could not be read or written
//
// For validation of reviewer input (unknown fields, bad values), use
// pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrMalformed   = errors.New("malformed record")
	ErrUnavailable = errors.New("unavailable")
)
