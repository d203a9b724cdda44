package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetectExcelFormat(t *testing.T) {
	type sniffCase struct {
		name   string
		header []byte
		want   excelFormat
	}
	tests := []sniffCase{
		{"bare OLE2 signature", []byte{0xd0, 0xcf, 0x11, 0xe0}, excelFormatOLE2},
		{"zip local file header", []byte("PK\x03\x04\x14\x00\x06\x00[Content_Types].xml"), excelFormatOOXML},
		{"empty zip archive", []byte("PK\x05\x06" + strings.Repeat("\x00", 18)), excelFormatUnknown},
		{"csv export", []byte("Name,Age\nAda,36\n"), excelFormatUnknown},
		{"three bytes of a zip header", []byte("PK\x03"), excelFormatUnknown},
		{"one byte", []byte{0xd0}, excelFormatUnknown},
		{"empty file", nil, excelFormatUnknown},
	}
	for _, sig := range excelSignatures {
		header := append(append([]byte{}, sig.magic...), 0xff, 0xff)
		tests = append(tests, sniffCase{sig.format.String() + " signature with trailing bytes", header, sig.format})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := filepath.Join(t.TempDir(), "book.bin")
			if err := os.WriteFile(f, tt.header, 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := detectExcelFormat(f)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("detectExcelFormat = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := detectExcelFormat(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestExcelFormatNames(t *testing.T) {
	tests := []struct {
		format  excelFormat
		name    string
		wantExt string
	}{
		{excelFormatOLE2, "OLE2", ".xls"},
		{excelFormatOOXML, "OOXML", ".xlsx"},
		{excelFormatUnknown, "unknown", ""},
	}
	for _, tt := range tests {
		if got := tt.format.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.format.ext(); got != tt.wantExt {
			t.Errorf("%s ext() = %q, want %q", tt.name, got, tt.wantExt)
		}
	}
}

func TestFixExcelExtension(t *testing.T) {
	ole2Header := []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}
	ooxmlHeader := []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00}

	t.Run("xls with OOXML content renames to xlsx", func(t *testing.T) {
		dir := t.TempDir()
		f := filepath.Join(dir, "budget.xls")
		if err := os.WriteFile(f, ooxmlHeader, 0o644); err != nil {
			t.Fatal(err)
		}

		got, err := fixExcelExtension(f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := filepath.Join(dir, "budget.xlsx")
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
		if _, err := os.Stat(want); err != nil {
			t.Errorf("renamed file does not exist: %v", err)
		}
		if _, err := os.Stat(f); !os.IsNotExist(err) {
			t.Errorf("original file still exists")
		}
	})

	t.Run("xlsx with OLE2 content renames to xls", func(t *testing.T) {
		dir := t.TempDir()
		f := filepath.Join(dir, "data.xlsx")
		if err := os.WriteFile(f, ole2Header, 0o644); err != nil {
			t.Fatal(err)
		}

		got, err := fixExcelExtension(f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := filepath.Join(dir, "data.xls")
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
		if _, err := os.Stat(want); err != nil {
			t.Errorf("renamed file does not exist: %v", err)
		}
	})

	t.Run("xls with OLE2 content is no-op", func(t *testing.T) {
		dir := t.TempDir()
		f := filepath.Join(dir, "correct.xls")
		if err := os.WriteFile(f, ole2Header, 0o644); err != nil {
			t.Fatal(err)
		}

		got, err := fixExcelExtension(f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != f {
			t.Errorf("got %q, want %q (should be unchanged)", got, f)
		}
	})

	t.Run("xlsx with OOXML content is no-op", func(t *testing.T) {
		dir := t.TempDir()
		f := filepath.Join(dir, "correct.xlsx")
		if err := os.WriteFile(f, ooxmlHeader, 0o644); err != nil {
			t.Fatal(err)
		}

		got, err := fixExcelExtension(f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != f {
			t.Errorf("got %q, want %q (should be unchanged)", got, f)
		}
	})

	t.Run("non-Excel extension is no-op", func(t *testing.T) {
		dir := t.TempDir()
		f := filepath.Join(dir, "data.csv")
		if err := os.WriteFile(f, ooxmlHeader, 0o644); err != nil {
			t.Fatal(err)
		}

		got, err := fixExcelExtension(f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != f {
			t.Errorf("got %q, want %q (should be unchanged)", got, f)
		}
	})

	t.Run("errors if target already exists", func(t *testing.T) {
		dir := t.TempDir()
		f := filepath.Join(dir, "budget.xls")
		if err := os.WriteFile(f, ooxmlHeader, 0o644); err != nil {
			t.Fatal(err)
		}
		// Create the target file so rename would collide
		target := filepath.Join(dir, "budget.xlsx")
		if err := os.WriteFile(target, []byte("existing"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err := fixExcelExtension(f)
		if err == nil {
			t.Fatal("expected error when target exists, got nil")
		}
	})
}

func TestCheckWorkbook(t *testing.T) {
	ole2Header := []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}
	ooxmlHeader := []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00}

	t.Run("legacy xls is rejected", func(t *testing.T) {
		f := filepath.Join(t.TempDir(), "old.xls")
		if err := os.WriteFile(f, ole2Header, 0o644); err != nil {
			t.Fatal(err)
		}
		err := checkWorkbook(f)
		if err == nil || !strings.Contains(err.Error(), "legacy .xls") {
			t.Fatalf("expected legacy format error, got %v", err)
		}
	})

	t.Run("ooxml passes", func(t *testing.T) {
		f := filepath.Join(t.TempDir(), "new.xlsx")
		if err := os.WriteFile(f, ooxmlHeader, 0o644); err != nil {
			t.Fatal(err)
		}
		if err := checkWorkbook(f); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		err := checkWorkbook(filepath.Join(t.TempDir(), "nope.xlsx"))
		if err == nil || !strings.Contains(err.Error(), "cannot access file") {
			t.Fatalf("expected access error, got %v", err)
		}
	})
}
