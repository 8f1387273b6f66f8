package gitlog

import (
	"testing"
)

func TestParseNumstat(t *testing.T) {
	out := "bob\n" +
		"3\t1\tfile.py\n" +
		"\n" +
		"bob\n" +
		"5\t0\tfile2.py\n"

	stats := parseNumstat(out)

	if len(stats) != 1 {
		t.Fatalf("got %d authors, want 1", len(stats))
	}
	if stats[0].Author != "bob" {
		t.Errorf("author = %q, want bob", stats[0].Author)
	}
	if stats[0].Commits != 2 {
		t.Errorf("commits = %d, want 2", stats[0].Commits)
	}
	if stats[0].LinesAdded != 8 {
		t.Errorf("lines_added = %d, want 8 (deletions ignored)", stats[0].LinesAdded)
	}
}

func TestParseNumstatMultipleAuthorsSorted(t *testing.T) {
	out := "carol\n" +
		"10\t2\ta.go\n" +
		"alice\n" +
		"1\t0\tb.go\n" +
		"carol\n" +
		"2\t2\tc.go\n"

	stats := parseNumstat(out)

	if len(stats) != 2 {
		t.Fatalf("got %d authors, want 2", len(stats))
	}
	if stats[0].Author != "alice" || stats[1].Author != "carol" {
		t.Errorf("authors not sorted: %+v", stats)
	}
	if stats[1].Commits != 2 || stats[1].LinesAdded != 12 {
		t.Errorf("carol = %+v, want 2 commits, 12 lines", stats[1])
	}
}

func TestParseNumstatBinaryFiles(t *testing.T) {
	out := "alice\n" +
		"-\t-\tlogo.png\n" +
		"4\t0\tmain.go\n"

	stats := parseNumstat(out)

	if len(stats) != 1 {
		t.Fatalf("got %d authors, want 1", len(stats))
	}
	if stats[0].LinesAdded != 4 {
		t.Errorf("lines_added = %d, want 4 (binary counts skipped)", stats[0].LinesAdded)
	}
}

func TestParseNumstatEmpty(t *testing.T) {
	if stats := parseNumstat(""); len(stats) != 0 {
		t.Errorf("got %d authors for empty log, want 0", len(stats))
	}
}

func TestParseNumstatOrphanNumstatLine(t *testing.T) {
	// A numstat line before any author line is dropped, not panicked on.
	stats := parseNumstat("7\t0\tx.go\n")
	if len(stats) != 0 {
		t.Errorf("got %d authors, want 0", len(stats))
	}
}
