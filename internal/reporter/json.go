package reporter

import (
	"encoding/json"
	"io"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/engine"
)

// JSONReporter writes the full evaluation as indented JSON. The
// evaluation is already the persistence format, so it goes out as-is.
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// Report implements Reporter.
func (r *JSONReporter) Report(ev *engine.Evaluation) error {
	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ev)
}
