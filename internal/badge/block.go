// Package badge rewrites the total-views badge embedded in Markdown
// documents and renders the standalone SVG counter.
package badge

import (
	"fmt"
	"strings"
	"time"

	"viewcounter/internal/domain"
)

const (
	StartMarker = "<!-- START BADGE -->"
	EndMarker   = "<!-- END BADGE -->"
)

// RenderBlock returns the HTML placed between the markers.
func RenderBlock(total int, refreshed time.Time) string {
	return fmt.Sprintf(`<div align="center">
  <img src="https://img.shields.io/badge/Total%%20views-%d-yellow" alt="Total views">
  <p>Refresh Date: %s</p>
</div>`, total, refreshed.UTC().Format(domain.DateLayout))
}

// ReplaceBlock swaps the first marker-delimited region of doc for block. It
// reports false, leaving doc untouched, when the marker pair is absent or out
// of order.
func ReplaceBlock(doc, block string) (string, bool) {
	start := strings.Index(doc, StartMarker)
	if start < 0 {
		return doc, false
	}
	rest := start + len(StartMarker)
	end := strings.Index(doc[rest:], EndMarker)
	if end < 0 {
		return doc, false
	}
	end += rest + len(EndMarker)

	var b strings.Builder
	b.Grow(len(doc) + len(block))
	b.WriteString(doc[:start])
	b.WriteString(StartMarker)
	b.WriteByte('\n')
	b.WriteString(block)
	b.WriteByte('\n')
	b.WriteString(EndMarker)
	b.WriteString(doc[end:])
	return b.String(), true
}
