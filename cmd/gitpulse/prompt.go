package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/gitpulse-cli/gitpulse/internal/score"
)

// parseSurveyDate validates the YYYY-MM-DD control input. Unlike per-row
// data, a malformed survey date is fatal.
func parseSurveyDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid survey date %q: use YYYY-MM-DD", s)
	}
	return t, nil
}

// promptSurveyDate asks for the survey date interactively.
func promptSurveyDate() (time.Time, error) {
	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Survey date").
				Description("15-day window ends the day before this date").
				Placeholder("YYYY-MM-DD").
				Validate(func(s string) error {
					_, err := parseSurveyDate(s)
					return err
				}).
				Value(&value),
		),
	)
	if err := form.Run(); err != nil {
		return time.Time{}, fmt.Errorf("survey date input: %w", err)
	}
	return parseSurveyDate(value)
}

// parseRatingPair parses a "P S" entry of two integers 1-5.
func parseRatingPair(entry string) (score.Rating, error) {
	fields := strings.Fields(entry)
	if len(fields) != 2 {
		return score.Rating{}, fmt.Errorf("enter two numbers, e.g. \"4 3\"")
	}
	p, err := strconv.Atoi(fields[0])
	if err != nil {
		return score.Rating{}, fmt.Errorf("productivity %q is not an integer", fields[0])
	}
	s, err := strconv.Atoi(fields[1])
	if err != nil {
		return score.Rating{}, fmt.Errorf("satisfaction %q is not an integer", fields[1])
	}
	r := score.Rating{Productivity: p, Satisfaction: s}
	return r, r.Validate()
}

// promptRatings collects productivity/satisfaction ratings for every author,
// re-prompting on invalid input via the form's validator.
func promptRatings(authors []string) (map[string]score.Rating, error) {
	sorted := append([]string(nil), authors...)
	sort.Strings(sorted)

	ratings := make(map[string]score.Rating, len(sorted))
	values := make([]string, len(sorted))

	fields := make([]huh.Field, 0, len(sorted))
	for i, author := range sorted {
		fields = append(fields, huh.NewInput().
			Title(author).
			Description("productivity satisfaction, each 1-5 (e.g. \"4 3\")").
			Validate(func(s string) error {
				_, err := parseRatingPair(s)
				return err
			}).
			Value(&values[i]))
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("ratings input: %w", err)
	}

	for i, author := range sorted {
		r, err := parseRatingPair(values[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", author, err)
		}
		ratings[author] = r
	}
	return ratings, nil
}
