// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package source_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	_ "modernc.org/sqlite"

	"github.com/framegrace/texelgrid/grid"
	"github.com/framegrace/texelgrid/source"
	"github.com/framegrace/texelgrid/value"
)

var _ grid.DataSource = (*source.Static)(nil)

func displays(row []value.Value) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = v.Display()
	}
	return out
}

func kinds(row []value.Value) []value.Kind {
	out := make([]value.Kind, len(row))
	for i, v := range row {
		out[i] = v.Kind()
	}
	return out
}

func TestStaticBounds(t *testing.T) {
	s := source.NewStatic([]string{"a"}, [][]value.Value{{value.Int(1)}})
	if _, err := s.HeaderTitle(1); err == nil {
		t.Error("expected out of range title error")
	}
	if _, err := s.RowData(-1); err == nil {
		t.Error("expected out of range row error")
	}
	if row, err := s.RowData(0); err != nil || !row[0].Equal(value.Int(1)) {
		t.Errorf("RowData(0) = %v, %v", row, err)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data string
		want source.Format
	}{
		{"people.csv", "a,b\n1,2\n", source.FormatCSV},
		{"people.tsv", "a\tb\n1\t2\n", source.FormatTSV},
		{"people.json", "[[\"a\"]]", source.FormatJSON},
		{"dump.txt", "  [{\"a\":1}]", source.FormatJSON},
		{"dump.txt", "a\tb,c\td\n", source.FormatTSV},
		{"dump", "a,b\n", source.FormatCSV},
	}
	for _, tc := range tests {
		got, err := source.DetectFormat(tc.name, []byte(tc.data))
		if err != nil {
			t.Errorf("DetectFormat(%s): %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("DetectFormat(%s, %q) = %v, want %v", tc.name, tc.data, got, tc.want)
		}
	}
	if _, err := source.DetectFormat("blob.bin", []byte{0, 1, 2, 0, 0}); !errors.Is(err, source.ErrUnknownFormat) {
		t.Errorf("binary err = %v, want ErrUnknownFormat", err)
	}
	if _, err := source.DetectFormat("empty", []byte("  \n")); !errors.Is(err, source.ErrUnknownFormat) {
		t.Errorf("empty err = %v, want ErrUnknownFormat", err)
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	data := "name,age,joined,site\nalice,30,2024-01-02,https://a.example\nbob,4.5,x\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := source.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "age", "joined", "site"}, s.Titles); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}
	if s.RowCount() != 2 {
		t.Fatalf("rows = %d, want 2", s.RowCount())
	}
	want := []value.Kind{value.KindString, value.KindInt, value.KindDate, value.KindLink}
	if diff := cmp.Diff(want, kinds(s.Data[0])); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	// Short rows are kept here; the grid model drops them.
	if len(s.Data[1]) != 3 {
		t.Errorf("short row len = %d, want 3", len(s.Data[1]))
	}
}

func TestParseJSONObjectsKeepsKeyOrder(t *testing.T) {
	data := `[{"z": "first", "a": 2, "m": null}, {"a": 3.5, "z": true}]`
	s, err := source.Parse(source.FormatJSON, []byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, s.Titles); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"true", "3.5", ""}, displays(s.Data[1])); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
	if s.Data[0][1].Kind() != value.KindInt {
		t.Errorf("kind = %v, want int", s.Data[0][1].Kind())
	}
}

func TestParseJSONArrays(t *testing.T) {
	s, err := source.Parse(source.FormatJSON, []byte(`[["id","tags"],[1,["x","y"]]]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff([]string{"1", `["x","y"]`}, displays(s.Data[0])); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
	if _, err := source.Parse(source.FormatJSON, []byte(`{"a":1}`)); !errors.Is(err, source.ErrUnknownFormat) {
		t.Errorf("object root err = %v, want ErrUnknownFormat", err)
	}
}

func TestQuerySQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	stmts := []string{
		`CREATE TABLE people (name TEXT, age INTEGER, score REAL, joined TEXT, note TEXT)`,
		`INSERT INTO people VALUES ('alice', 30, 1.5, '2024-01-02', NULL)`,
		`INSERT INTO people VALUES ('bob', 25, 2.25, 'soon', 'x')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	db.Close()

	s, err := source.QuerySQLite(context.Background(), path, `SELECT * FROM people WHERE age > ? ORDER BY age`, 20)
	if err != nil {
		t.Fatalf("QuerySQLite: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "age", "score", "joined", "note"}, s.Titles); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"bob", "25", "2.25", "soon", "x"}, displays(s.Data[0])); diff != "" {
		t.Errorf("row 0 mismatch (-want +got):\n%s", diff)
	}
	want := []value.Kind{value.KindString, value.KindInt, value.KindFloat, value.KindDate, value.KindString}
	if diff := cmp.Diff(want, kinds(s.Data[1])); diff != "" {
		t.Errorf("row 1 kinds mismatch (-want +got):\n%s", diff)
	}

	if _, err := source.QuerySQLite(context.Background(), path, `SELECT * FROM missing`); err == nil {
		t.Error("expected query error")
	}
}

func TestSQLiteFeedsGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, stmt := range []string{
		`CREATE TABLE t (k TEXT, v INTEGER)`,
		`INSERT INTO t VALUES ('a', 2), ('b', 1)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	db.Close()

	s, err := source.QuerySQLite(context.Background(), path, `SELECT k, v FROM t`)
	if err != nil {
		t.Fatalf("QuerySQLite: %v", err)
	}
	c := grid.New(grid.TerminalOptions(), grid.Delegate{})
	c.SetDataSource(s)
	if err := c.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	c.OnColumnTap(1)
	if got := c.Data(0, 0).Display(); got != "b" {
		t.Errorf("first row after sort = %q, want b", got)
	}
}
