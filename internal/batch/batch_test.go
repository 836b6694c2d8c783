package batch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/layout"
	"github.com/dgallion1/docoutline/internal/pipeline"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func readOutline(t *testing.T, path string) doctree.Outline {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var out doctree.Outline
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return out
}

func newRunner(workers int) *Runner {
	return NewRunner(pipeline.NewOutliner(layout.DefaultConfig(), nil, nil), workers, nil)
}

func TestRun_ProcessesDirectory(t *testing.T) {
	in, out := t.TempDir(), filepath.Join(t.TempDir(), "nested", "out")

	writeFile(t, in, "guide.md", "# Guide\n\n## Install\n\n### Linux\n")
	writeFile(t, in, "notes.txt", "Lab Notes\n1. Setup\n1.1 Tools\n")
	writeFile(t, in, "broken.pdf", "this is not a pdf")
	writeFile(t, in, "data.csv", "a,b\n1,2\n")
	writeFile(t, in, ".hidden.md", "# Hidden\n")
	if err := os.Mkdir(filepath.Join(in, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(in, "sub"), "inner.md", "# Inner\n")

	report, err := newRunner(3).Run(context.Background(), in, out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Join(report.Processed, ",") != "guide.md,notes.txt" {
		t.Errorf("expected guide.md and notes.txt processed, got %v", report.Processed)
	}
	if len(report.Failed) != 1 || report.Failed[0].File != "broken.pdf" {
		t.Fatalf("expected broken.pdf to fail, got %+v", report.Failed)
	}

	guide := readOutline(t, filepath.Join(out, "guide.json"))
	if guide.Title != "Guide" || len(guide.Outline) != 2 {
		t.Errorf("unexpected guide outline %+v", guide)
	}
	notes := readOutline(t, filepath.Join(out, "notes.json"))
	if notes.Title != "Lab Notes" || len(notes.Outline) != 2 || notes.Outline[1].Level != doctree.H2 {
		t.Errorf("unexpected notes outline %+v", notes)
	}

	for _, name := range []string{"broken.json", "data.json", "inner.json", ".hidden.json"} {
		if _, err := os.Stat(filepath.Join(out, name)); !os.IsNotExist(err) {
			t.Errorf("expected no %s, got err=%v", name, err)
		}
	}
	entries, _ := os.ReadDir(out)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestRun_MissingInputDir(t *testing.T) {
	_, err := newRunner(1).Run(context.Background(), filepath.Join(t.TempDir(), "nope"), t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing input dir")
	}
}

func TestWriteOutline_Format(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "doc.json")
	err := WriteOutline(dest, doctree.Outline{
		Title:   "R&D <Plan>",
		Outline: []doctree.Entry{{Level: doctree.H1, Text: "1. Goals", Page: 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "title": "R&D <Plan>",
  "outline": [
    {
      "level": "H1",
      "text": "1. Goals",
      "page": 2
    }
  ]
}
`
	if string(data) != want {
		t.Errorf("expected\n%s\ngot\n%s", want, data)
	}
}

func TestWriteOutline_EmptyOutline(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "empty.json")
	if err := WriteOutline(dest, doctree.Outline{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := readOutline(t, dest)
	if out.Title != doctree.UntitledTitle {
		t.Errorf("expected %q, got %q", doctree.UntitledTitle, out.Title)
	}
	data, _ := os.ReadFile(dest)
	if !strings.Contains(string(data), `"outline": []`) {
		t.Errorf("expected empty outline array, got %s", data)
	}
}

func TestOutputName(t *testing.T) {
	tests := map[string]string{
		"report.pdf":    "report.json",
		"a.b.docx":      "a.b.json",
		"dir/notes.txt": "notes.json",
		"no-extension":  "no-extension.json",
	}
	for in, want := range tests {
		if got := OutputName(in); got != want {
			t.Errorf("OutputName(%q): expected %q, got %q", in, want, got)
		}
	}
}
