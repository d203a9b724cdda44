package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/witanlabs/gridmap/grid"
)

func TestXlsxRead(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "book.xlsx")
	writeColumnBook(t, path, "a", "b")

	out, err := execute(t, "", "xlsx", "read", path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{"     1\tValue\n", "     2\ta\n", "     3\tb\n", "Data  [3 rows, 1 columns]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestXlsxColumn_JSON(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "book.xlsx")
	writeColumnBook(t, path, "a", " ", "b")

	out, err := execute(t, "", "xlsx", "--json", "column", path, "--column", "A")
	if err != nil {
		t.Fatalf("column: %v", err)
	}
	var got []string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if strings.Join(got, ",") != "a,b" {
		t.Errorf("got %v, want [a b]", got)
	}
}

func TestXlsxColumn_EmptyExitsTwo(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "book.xlsx")
	writeColumnBook(t, path, "a")

	_, err := execute(t, "", "xlsx", "column", path, "--column", "2")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Fatalf("expected exit code 2, got %v", err)
	}
}

func TestXlsxColumn_RequiresColumn(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "book.xlsx")
	writeColumnBook(t, path, "a")

	_, err := execute(t, "", "xlsx", "column", path)
	if err == nil || !strings.Contains(err.Error(), "--column is required") {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestXlsxMark(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "book.xlsx")
	input := filepath.Join(dir, "notes.txt")
	writeColumnBook(t, path, "a", "b")
	if err := os.WriteFile(input, []byte("First. Second\n\nThird\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "xlsx", "mark", path, "--column", "C", "--input", input)
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	if !strings.Contains(out, "Marked 2 cells in C2:C3.") {
		t.Errorf("unexpected output:\n%s", out)
	}

	wb, err := grid.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer wb.Close()
	s, err := wb.Sheet(0)
	if err != nil {
		t.Fatal(err)
	}
	v, err := s.Value(grid.Cell{Row: 2, Col: 3})
	if err != nil {
		t.Fatal(err)
	}
	if v != "First.\n Second" {
		t.Errorf("C2 = %q", v)
	}
	h, err := s.RowHeight(2)
	if err != nil {
		t.Fatal(err)
	}
	if h != 2*grid.DefaultRowHeight {
		t.Errorf("row 2 height = %v, want %v", h, 2*grid.DefaultRowHeight)
	}
}

func TestXlsxMark_EmptyInput(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "book.xlsx")
	input := filepath.Join(dir, "empty.txt")
	writeColumnBook(t, path, "a")
	if err := os.WriteFile(input, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "xlsx", "mark", path, "-c", "2", "-i", input)
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	if !strings.Contains(out, "Nothing to mark.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
