// Package crawl provides link-crawl orchestration: backend selection, the
// per-source extraction loop, and politeness rate limiting.
package crawl

import "github.com/fwojciec/linkstat"

// Backend identifies the extraction backend selected for a run.
type Backend string

// Extraction backends.
const (
	BackendDynamic Backend = "dynamic"
	BackendStatic  Backend = "static"
)

// ExtractorFactory constructs a link extractor. Factories are passed in so
// the expensive browser launch only happens when the dynamic backend is
// actually selected.
type ExtractorFactory func() (linkstat.LinkExtractor, error)

// Selection is the outcome of backend selection for a run.
type Selection struct {
	Extractor linkstat.LinkExtractor
	Backend   Backend

	// FallbackErr records the dynamic launch failure when selection fell
	// back to the static backend after a successful probe. Callers should
	// log it; it is nil otherwise.
	FallbackErr error
}

// SelectExtractor chooses the extraction backend once per run.
//
// The probe reports whether a rendering engine is installed. When it
// reports false the static backend is used directly and the dynamic
// factory is never invoked. When it reports true but the dynamic factory
// fails at launch time, selection falls back to the static backend exactly
// once; a static factory failure is then fatal for the run.
func SelectExtractor(probe func() bool, newDynamic, newStatic ExtractorFactory) (Selection, error) {
	var fallbackErr error

	if probe() {
		extractor, err := newDynamic()
		if err == nil {
			return Selection{Extractor: extractor, Backend: BackendDynamic}, nil
		}
		fallbackErr = err
	}

	extractor, err := newStatic()
	if err != nil {
		return Selection{}, err
	}
	return Selection{Extractor: extractor, Backend: BackendStatic, FallbackErr: fallbackErr}, nil
}
