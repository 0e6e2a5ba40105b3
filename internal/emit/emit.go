// Package emit renders decision event streams as source text.
//
// Writers buffer everything they receive and only write to their
// destination on Close, so a failed walk never leaves partial output.
package emit

import (
	"github.com/gnolang/entitygen/internal/decision"
)

// Writer consumes a decision stream and flushes the rendered text on Close.
type Writer interface {
	decision.Handler
	Close() error
}
