package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/gitpulse-cli/gitpulse/internal/model"
	"github.com/gitpulse-cli/gitpulse/internal/score"
)

func TestWriteCommentsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.csv")

	err := WriteCommentsCSV(path, []model.CommentRow{
		{Source: "Issue", Title: "Broken login", Created: "January 05, 2024", AuthorUsername: "alice", Comment: "assigned to bob"},
	})
	if err != nil {
		t.Fatalf("writing comments: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want header + 1 row", len(records))
	}
	if records[0][0] != "type" || records[0][3] != "author_username" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][3] != "alice" || records[1][4] != "assigned to bob" {
		t.Errorf("row = %v", records[1])
	}
}

func TestReadRatingsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.csv")
	content := "username,productivity,satisfaction\nalice,4,5\nbob,3,3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	ratings, err := ReadRatingsCSV(path)
	if err != nil {
		t.Fatalf("reading ratings: %v", err)
	}
	if len(ratings) != 2 {
		t.Fatalf("got %d ratings, want 2", len(ratings))
	}
	if ratings["alice"] != (score.Rating{Productivity: 4, Satisfaction: 5}) {
		t.Errorf("alice = %+v", ratings["alice"])
	}
}

func TestReadRatingsCSVWithoutHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.csv")
	if err := os.WriteFile(path, []byte("alice,4,5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ratings, err := ReadRatingsCSV(path)
	if err != nil {
		t.Fatalf("reading ratings: %v", err)
	}
	if _, ok := ratings["alice"]; !ok {
		t.Errorf("headerless file should still parse, got %+v", ratings)
	}
}

func TestReadRatingsCSVRejectsBadInteger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.csv")
	if err := os.WriteFile(path, []byte("alice,high,5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadRatingsCSV(path); err == nil {
		t.Error("non-integer productivity should be an error")
	}
}

func TestGitContributionsRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "git.xlsx")

	err := WriteGitContributions(path, []model.GitStats{
		{Author: "bob", Commits: 2, LinesAdded: 8},
	})
	if err != nil {
		t.Fatalf("writing workbook: %v", err)
	}

	inputs, err := ReadStatsWorkbook(path)
	if err != nil {
		t.Fatalf("reading workbook: %v", err)
	}
	if len(inputs) != 1 {
		t.Fatalf("got %d inputs, want 1", len(inputs))
	}
	if inputs[0].Author != "bob" || inputs[0].Commits != 2 || inputs[0].LinesAdded != 8 {
		t.Errorf("input = %+v", inputs[0])
	}
}

func TestReadStatsWorkbookMergedShape(t *testing.T) {
	// The merged-by-hand shape decorates numeric columns and renames the
	// headers; values fall back to the leading digit run.
	path := filepath.Join(t.TempDir(), "stats.xlsx")

	f := excelize.NewFile()
	cells := map[string]any{
		"A1": "Author", "B1": "Commits (%)", "C1": "+ lines", "D1": "Reviews",
		"A2": "alice", "B2": "42 (17%)", "C2": "1200", "D2": "6",
	}
	for cell, v := range cells {
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	inputs, err := ReadStatsWorkbook(path)
	if err != nil {
		t.Fatalf("reading workbook: %v", err)
	}
	if len(inputs) != 1 {
		t.Fatalf("got %d inputs, want 1", len(inputs))
	}
	in := inputs[0]
	if in.Author != "alice" {
		t.Errorf("author = %q", in.Author)
	}
	if in.Commits != 42 {
		t.Errorf("commits = %v, want 42 from %q", in.Commits, "42 (17%)")
	}
	if in.LinesAdded != 1200 || in.Reviews != 6 {
		t.Errorf("input = %+v", in)
	}
}

func TestParseCellNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"42", 42},
		{"3.5", 3.5},
		{" 7 ", 7},
		{"42 (17%)", 42},
		{"n/a", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := parseCellNumber(tt.in); got != tt.want {
			t.Errorf("parseCellNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
