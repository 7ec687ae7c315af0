package diag

import (
	"fmt"

	"github.com/H1ghBre4k3r/y-lang-sub001/internal/span"
)

// Render renders an Error as a caret diagram against its source text.
// colorize is decided by the caller (typically via isatty on stderr), so
// this package stays environment-agnostic and trivially testable.
func Render(e *Error, src string, colorize bool) string {
	return span.Render(fmt.Sprintf("%s: %s", e.Code, e.Message), e.Span, src, colorize)
}
