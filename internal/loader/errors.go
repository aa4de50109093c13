package loader

import "github.com/cockroachdb/errors"

var (
	// ErrDataNotAvailable means the source responded but has no data for
	// the requested season and week. Callers may try another source.
	ErrDataNotAvailable = errors.New("data not available")

	// ErrLoader covers transport, parsing, and structural failures while
	// fetching from a source.
	ErrLoader = errors.New("loader failure")

	// ErrMapping covers failures translating source rows into domain
	// records.
	ErrMapping = errors.New("mapping failure")
)

func IsDataNotAvailable(err error) bool { return errors.Is(err, ErrDataNotAvailable) }

func IsLoaderError(err error) bool { return errors.Is(err, ErrLoader) }

func IsMappingError(err error) bool { return errors.Is(err, ErrMapping) }
