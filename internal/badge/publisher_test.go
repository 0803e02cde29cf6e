package badge

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCollectMarkdown(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "README.md"), "x")
	writeFile(t, filepath.Join(root, "docs", "guide.MD"), "x")
	writeFile(t, filepath.Join(root, "docs", "deep", "notes.markdown"), "x")
	writeFile(t, filepath.Join(root, "docs", "image.png"), "x")
	writeFile(t, filepath.Join(root, ".git", "HEAD.md"), "x")
	writeFile(t, filepath.Join(root, "node_modules", "pkg", "README.md"), "x")

	got, err := CollectMarkdown(root)
	if err != nil {
		t.Fatalf("CollectMarkdown: %v", err)
	}
	want := []string{
		filepath.Join(root, "README.md"),
		filepath.Join(root, "docs", "deep", "notes.markdown"),
		filepath.Join(root, "docs", "guide.MD"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CollectMarkdown = %v, want %v", got, want)
	}
}

func TestPublishUpdatesMarkedFilesAndSkipsOthers(t *testing.T) {
	root := t.TempDir()
	marked := filepath.Join(root, "README.md")
	plain := filepath.Join(root, "docs", "plain.md")
	plainContent := "# Plain\r\nno badge here\n\ttrailing  \n"
	writeFile(t, marked, "intro\n"+StartMarker+"\nstale\n"+EndMarker+"\noutro\n")
	writeFile(t, plain, plainContent)

	report, err := NewPublisher(nil).Publish(context.Background(), root, 42, refreshed)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !reflect.DeepEqual(report.Updated, []string{marked}) {
		t.Fatalf("Updated = %v", report.Updated)
	}
	if !reflect.DeepEqual(report.Skipped, []string{plain}) {
		t.Fatalf("Skipped = %v", report.Skipped)
	}

	raw, err := os.ReadFile(plain)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(raw, []byte(plainContent)) {
		t.Fatalf("unmarked file changed: %q", raw)
	}

	updated, err := os.ReadFile(marked)
	if err != nil {
		t.Fatal(err)
	}
	text := string(updated)
	if !strings.Contains(text, "Total%20views-42-yellow") || strings.Contains(text, "stale") {
		t.Fatalf("badge not rewritten:\n%s", text)
	}
	if !strings.HasPrefix(text, "intro\n") || !strings.HasSuffix(text, "\noutro\n") {
		t.Fatalf("content outside markers changed:\n%s", text)
	}

	second, err := NewPublisher(nil).Publish(context.Background(), root, 42, refreshed)
	if err != nil {
		t.Fatalf("second Publish: %v", err)
	}
	if len(second.Updated) != 0 || !reflect.DeepEqual(second.Unchanged, []string{marked}) {
		t.Fatalf("second pass report = %+v", second)
	}
}

func TestPublishMissingRoot(t *testing.T) {
	_, err := NewPublisher(nil).Publish(context.Background(), filepath.Join(t.TempDir(), "absent"), 1, refreshed)
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}
