package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing test CSV: %v", err)
	}
	return path
}

func TestLoadTable(t *testing.T) {
	path := writeCSV(t, "id,article,summary\n1,First article,\n2,Second article,done\n")

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	if table.ID(0) != "1" || table.Article(0) != "First article" || table.Summary(0) != "" {
		t.Errorf("row 0 = %q %q %q", table.ID(0), table.Article(0), table.Summary(0))
	}
	if table.Summary(1) != "done" {
		t.Errorf("row 1 summary = %q, want %q", table.Summary(1), "done")
	}
}

func TestLoadTableColumnOrderIndependent(t *testing.T) {
	path := writeCSV(t, "summary,id,article\n,7,Some article\n")

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}

	if table.ID(0) != "7" {
		t.Errorf("ID(0) = %q, want %q", table.ID(0), "7")
	}
	if table.Article(0) != "Some article" {
		t.Errorf("Article(0) = %q", table.Article(0))
	}
}

func TestLoadTableErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"missing summary column", "id,article\n1,text\n", "summary"},
		{"missing id column", "article,summary\ntext,\n", "id"},
		{"empty file", "", "empty"},
		{"ragged rows", "id,article,summary\n1,text\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, tt.content)
			_, err := LoadTable(path)
			if err == nil {
				t.Fatal("expected error but got none")
			}
			if tt.errPart != "" && !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.errPart)
			}
		})
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestTableSaveRoundTrip(t *testing.T) {
	path := writeCSV(t, "id,article,summary,source\n1,First,,web\n2,Second,old summary,feed\n")

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}

	table.SetSummary(0, "new summary")
	if err := table.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := LoadTable(path)
	if err != nil {
		t.Fatalf("reloading table: %v", err)
	}

	if reloaded.Summary(0) != "new summary" {
		t.Errorf("summary(0) = %q, want %q", reloaded.Summary(0), "new summary")
	}
	if reloaded.Summary(1) != "old summary" {
		t.Errorf("summary(1) = %q, want %q (must be untouched)", reloaded.Summary(1), "old summary")
	}

	// Extra columns and order survive the round trip
	if len(reloaded.Header) != 4 || reloaded.Header[3] != "source" {
		t.Errorf("header = %v, extra column lost", reloaded.Header)
	}
	if reloaded.Rows[0][3] != "web" || reloaded.Rows[1][3] != "feed" {
		t.Errorf("extra column values lost: %v", reloaded.Rows)
	}
	if reloaded.ID(0) != "1" || reloaded.ID(1) != "2" {
		t.Error("row order changed across save")
	}
}

func TestTableSaveLeavesNoTempFiles(t *testing.T) {
	path := writeCSV(t, "id,article,summary\n1,text,\n")

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	if err := table.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "csvtmp-*"))
	if len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}
}

func TestTableNextID(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"sequential", "id,article,summary\n1,a,\n2,b,\n", "3"},
		{"gaps", "id,article,summary\n1,a,\n5,b,\n3,c,\n", "6"},
		{"non-numeric ids", "id,article,summary\nabc,a,\n", "1"},
		{"empty table", "id,article,summary\n", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := LoadTable(writeCSV(t, tt.content))
			if err != nil {
				t.Fatalf("LoadTable() error = %v", err)
			}
			if got := table.NextID(); got != tt.expected {
				t.Errorf("NextID() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTableAppendPadsExtraColumns(t *testing.T) {
	table, err := LoadTable(writeCSV(t, "id,article,summary,source\n1,a,,web\n"))
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}

	table.Append("2", "new article")

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	row := table.Rows[1]
	if len(row) != 4 {
		t.Fatalf("appended row has %d columns, want 4", len(row))
	}
	if table.ID(1) != "2" || table.Article(1) != "new article" || table.Summary(1) != "" {
		t.Errorf("appended row = %v", row)
	}
	if row[3] != "" {
		t.Errorf("extra column not padded: %q", row[3])
	}
}

func TestNewTable(t *testing.T) {
	table := NewTable()
	table.Append("1", "article text")

	path := filepath.Join(t.TempDir(), "new.csv")
	if err := table.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	if reloaded.Len() != 1 || reloaded.Article(0) != "article text" {
		t.Errorf("unexpected table contents: %v", reloaded.Rows)
	}
}
