// Package docpipe holds the five single-shot drafting, review and
// research functions the conversational tools delegate to. Each is a
// pure call: typed input in, text or a structured result out. Failures
// surface as errors and are degraded to tool-result strings at the tool
// boundary, never here.
package docpipe

import (
	"time"

	"github.com/lawverra/lawverra-agent/internal/domain"
)

type Pipeline struct {
	model domain.TextModel
	now   func() time.Time
}

func New(model domain.TextModel) *Pipeline {
	return &Pipeline{
		model: model,
		now:   time.Now,
	}
}
