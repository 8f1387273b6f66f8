// Package gitlog derives per-author commit counts and added-line totals
// from version-control history.
package gitlog

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gitpulse-cli/gitpulse/internal/model"
	"github.com/gitpulse-cli/gitpulse/internal/normalize"
)

// ErrNotARepository is returned when dir is not inside a git working copy.
var ErrNotARepository = fmt.Errorf("not inside a git repository")

const gitTimeout = 30 * time.Second

// Collect reads commit history for the window from the working copy at dir
// and tallies commits and added lines per author name. Deleted lines are
// ignored.
func Collect(ctx context.Context, dir string, w normalize.Window) ([]model.GitStats, error) {
	ctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()

	check := exec.CommandContext(ctx, "git", "rev-parse", "--is-inside-work-tree")
	check.Dir = dir
	if err := check.Run(); err != nil {
		return nil, ErrNotARepository
	}

	since := w.Start.Format("2006-01-02")
	// The end bound is exclusive, so the log runs up to the day before it.
	until := w.End.Add(-time.Second).Format("2006-01-02")

	log := exec.CommandContext(ctx, "git", "log",
		"--since="+since,
		"--until="+until,
		"--pretty=format:%an",
		"--numstat",
	)
	log.Dir = dir

	out, err := log.Output()
	if err != nil {
		return nil, fmt.Errorf("running git log: %w", err)
	}

	return parseNumstat(string(out)), nil
}

// parseNumstat walks git log output in "%an" + numstat form: an author line
// per commit followed by "added<TAB>deleted<TAB>path" lines. Binary files
// report "-" for the counts and are skipped.
func parseNumstat(out string) []model.GitStats {
	stats := make(map[string]*model.GitStats)
	var current *model.GitStats

	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.Contains(line, "\t") {
			if current == nil {
				continue
			}
			parts := strings.Split(line, "\t")
			added, err := strconv.Atoi(parts[0])
			if err != nil {
				continue
			}
			current.LinesAdded += added
			continue
		}

		author := strings.TrimSpace(line)
		s, ok := stats[author]
		if !ok {
			s = &model.GitStats{Author: author}
			stats[author] = s
		}
		s.Commits++
		current = s
	}

	out2 := make([]model.GitStats, 0, len(stats))
	for _, s := range stats {
		out2 = append(out2, *s)
	}
	sort.Slice(out2, func(i, j int) bool { return out2[i].Author < out2[j].Author })
	return out2
}
