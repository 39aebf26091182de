package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Table holds the article CSV in memory. Column order, row order and any
// extra columns are preserved across load and save; only the summary
// column is ever mutated.
type Table struct {
	Header []string
	Rows   [][]string

	idCol      int
	articleCol int
	summaryCol int
}

// NewTable creates an empty table with the standard header
func NewTable() *Table {
	return &Table{
		Header:     []string{"id", "article", "summary"},
		idCol:      0,
		articleCol: 1,
		summaryCol: 2,
	}
}

// LoadTable reads the CSV file and locates the required columns
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file %s is empty", path)
	}

	t := &Table{
		Header:     records[0],
		Rows:       records[1:],
		idCol:      -1,
		articleCol: -1,
		summaryCol: -1,
	}

	for i, col := range t.Header {
		switch strings.TrimSpace(col) {
		case "id":
			t.idCol = i
		case "article":
			t.articleCol = i
		case "summary":
			t.summaryCol = i
		}
	}

	if t.idCol < 0 || t.articleCol < 0 || t.summaryCol < 0 {
		return nil, fmt.Errorf("CSV must contain 'id', 'article' and 'summary' columns, got %v", t.Header)
	}

	return t, nil
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) ID(i int) string {
	return t.Rows[i][t.idCol]
}

func (t *Table) Article(i int) string {
	return t.Rows[i][t.articleCol]
}

func (t *Table) Summary(i int) string {
	return t.Rows[i][t.summaryCol]
}

func (t *Table) SetSummary(i int, summary string) {
	t.Rows[i][t.summaryCol] = summary
}

// NextID returns one past the largest numeric id in the table
func (t *Table) NextID() string {
	max := 0
	for i := range t.Rows {
		if n, err := strconv.Atoi(strings.TrimSpace(t.ID(i))); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

// Append adds a new pending row, padding any extra columns with empty values
func (t *Table) Append(id, article string) {
	row := make([]string, len(t.Header))
	row[t.idCol] = id
	row[t.articleCol] = article
	t.Rows = append(t.Rows, row)
}

// Save writes the table to a temporary file in the target directory and
// atomically replaces the original. A crash mid-write leaves the previous
// table intact along with a discardable csvtmp-* file.
func (t *Table) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "csvtmp-*.csv")
	if err != nil {
		return fmt.Errorf("creating temporary table file: %w", err)
	}
	tmpPath := tmp.Name()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(t.Header); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing header: %w", err)
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing rows: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("flushing rows: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temporary table file: %w", err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting table permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing table %s: %w", path, err)
	}

	return nil
}
