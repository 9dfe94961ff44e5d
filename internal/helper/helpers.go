package helper

import (
	"fmt"
	"net/http"
	"sync"
)

// ErrorReporter is the slice of the error handler background tasks
// need. Declared here so helper does not import errHandler back.
type ErrorReporter interface {
	ReportServerError(r *http.Request, err error)
}

type HelperRepository struct {
	baseUrl  *string
	WG       *sync.WaitGroup
	reporter ErrorReporter
}

func New(baseUrl *string, wg *sync.WaitGroup, reporter ErrorReporter) *HelperRepository {
	return &HelperRepository{
		baseUrl:  baseUrl,
		WG:       wg,
		reporter: reporter,
	}
}

// SetReporter wires the error handler in after construction. The two
// depend on each other, so one of them has to be attached late.
func (h *HelperRepository) SetReporter(reporter ErrorReporter) {
	h.reporter = reporter
}

func (h *HelperRepository) NewEmailData() map[string]any {
	data := map[string]any{
		"BaseURL": h.baseUrl,
	}

	return data
}

// BackgroundTask runs fn on its own goroutine, recovering panics and
// reporting failures so they are never silently lost. The request is
// only used for error context and may outlive fn.
func (h *HelperRepository) BackgroundTask(r *http.Request, fn func() error) {
	h.WG.Add(1)

	go func() {
		defer h.WG.Done()

		defer func() {
			err := recover()
			if err != nil && h.reporter != nil {
				h.reporter.ReportServerError(nil, fmt.Errorf("%s", err))
			}
		}()

		err := fn()
		if err != nil && h.reporter != nil {
			h.reporter.ReportServerError(r, err)
		}
	}()
}
