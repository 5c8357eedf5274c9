package pkg

import (
	"io"
	"sync"

	"go.uber.org/multierr"
)

// TeeWriter fans every write out to all of its targets. A failing target
// does not stop the others from receiving the bytes.
type TeeWriter struct {
	mu      sync.Mutex
	targets []io.Writer
}

func NewCombinedWriter(targets ...io.Writer) *TeeWriter {
	tw := &TeeWriter{}
	for _, t := range targets {
		if t != nil {
			tw.targets = append(tw.targets, t)
		}
	}
	return tw
}

func (tw *TeeWriter) Targets() int {
	return len(tw.targets)
}

// Write reports len(p) when at least one target took the whole payload.
func (tw *TeeWriter) Write(p []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	var errs error
	delivered := false
	for _, t := range tw.targets {
		written, err := t.Write(p)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if written == len(p) {
			delivered = true
		}
	}

	if !delivered {
		return 0, errs
	}
	return len(p), errs
}
