package badge

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RenderSVG draws the 180x40 "Visitors: N" counter with N grouped according
// to locale. Unknown locales fall back to English.
func RenderSVG(total int, locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	count := message.NewPrinter(tag).Sprintf("%d", total)
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="180" height="40">
  <rect width="180" height="40" fill="#555" />
  <text x="90" y="25" fill="#fff" font-size="18" text-anchor="middle" alignment-baseline="middle">Visitors: %s</text>
</svg>
`, count)
}

// WriteSVG stores svg at path, creating parent directories.
func WriteSVG(path, svg string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("badge: ensure directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("badge: write svg: %w", err)
	}
	return nil
}
