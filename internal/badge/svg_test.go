package badge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderSVGGroupsDigits(t *testing.T) {
	svg := RenderSVG(1234567, "en")
	if !strings.Contains(svg, ">Visitors: 1,234,567</text>") {
		t.Fatalf("unexpected svg:\n%s", svg)
	}
	if !strings.HasPrefix(svg, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Fatalf("missing xml header:\n%s", svg)
	}
}

func TestRenderSVGUnknownLocaleFallsBack(t *testing.T) {
	svg := RenderSVG(1500, "!!")
	if !strings.Contains(svg, "Visitors: 1,500") {
		t.Fatalf("unexpected svg:\n%s", svg)
	}
}

func TestWriteSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets", "visitor.svg")
	if err := WriteSVG(path, RenderSVG(7, "en")); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "Visitors: 7") {
		t.Fatalf("unexpected file:\n%s", raw)
	}
}
