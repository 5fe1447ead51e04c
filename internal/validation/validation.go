// Package validation re-checks question answer lists before a grid or game is accepted.
// It reports problems and never repairs them.
package validation

import (
	"fmt"
	"strings"
)

// DefaultMinimum is the smallest number of distinct answers a question may have.
const DefaultMinimum = 3

// Question is the part of a question record the gate inspects.
type Question struct {
	QuestionNumber int      `json:"questionNumber"`
	RowFeature     string   `json:"rowFeature,omitempty"`
	ColFeature     string   `json:"colFeature,omitempty"`
	Answers        []string `json:"correctAnswers"`
}

// Detail is the per-question result.
type Detail struct {
	QuestionNumber int      `json:"questionNumber"`
	RowFeature     string   `json:"rowFeature"`
	ColFeature     string   `json:"colFeature"`
	TotalAnswers   int      `json:"totalAnswers"`
	ValidAnswers   int      `json:"validAnswers"`
	UniqueAnswers  int      `json:"uniqueAnswers"`
	MeetsMinimum   bool     `json:"meetsMinimum"`
	Issues         []string `json:"issues"`
}

// Summary aggregates the details.
type Summary struct {
	TotalQuestions   int `json:"totalQuestions"`
	ValidQuestions   int `json:"validQuestions"`
	InvalidQuestions int `json:"invalidQuestions"`
	MinimumRequired  int `json:"minimumRequired"`
}

// Report is the structured validation outcome.
type Report struct {
	IsValid bool     `json:"isValid"`
	Summary Summary  `json:"summary"`
	Details []Detail `json:"details"`
}

// Validate checks every question against the minimum distinct-answer count. A
// non-positive minimum uses DefaultMinimum. Questions without a number are numbered
// by position. The input is not modified.
func Validate(questions []Question, minimum int) Report {
	if minimum <= 0 {
		minimum = DefaultMinimum
	}
	report := Report{
		Summary: Summary{TotalQuestions: len(questions), MinimumRequired: minimum},
		Details: make([]Detail, 0, len(questions)),
	}
	for i, q := range questions {
		d := check(q, minimum)
		if d.QuestionNumber == 0 {
			d.QuestionNumber = i + 1
		}
		if d.MeetsMinimum {
			report.Summary.ValidQuestions++
		} else {
			report.Summary.InvalidQuestions++
		}
		report.Details = append(report.Details, d)
	}
	report.IsValid = report.Summary.InvalidQuestions == 0
	return report
}

func check(q Question, minimum int) Detail {
	d := Detail{
		QuestionNumber: q.QuestionNumber,
		RowFeature:     q.RowFeature,
		ColFeature:     q.ColFeature,
		TotalAnswers:   len(q.Answers),
		Issues:         []string{},
	}
	unique := make(map[string]struct{}, len(q.Answers))
	for _, a := range q.Answers {
		trimmed := strings.TrimSpace(a)
		if trimmed == "" {
			continue
		}
		d.ValidAnswers++
		unique[strings.ToLower(trimmed)] = struct{}{}
	}
	d.UniqueAnswers = len(unique)
	d.MeetsMinimum = d.UniqueAnswers >= minimum

	if d.TotalAnswers < minimum {
		d.Issues = append(d.Issues, fmt.Sprintf("only %d answers, at least %d required", d.TotalAnswers, minimum))
	}
	if empty := d.TotalAnswers - d.ValidAnswers; empty > 0 {
		d.Issues = append(d.Issues, fmt.Sprintf("%d empty answers", empty))
	}
	if dups := d.ValidAnswers - d.UniqueAnswers; dups > 0 {
		d.Issues = append(d.Issues, fmt.Sprintf("%d duplicate answers", dups))
	}
	return d
}

// Errors flattens the report into one message per issue, prefixed with the question number.
func (r Report) Errors() []string {
	var out []string
	for _, d := range r.Details {
		for _, issue := range d.Issues {
			out = append(out, fmt.Sprintf("question %d: %s", d.QuestionNumber, issue))
		}
		if !d.MeetsMinimum && len(d.Issues) == 0 {
			out = append(out, fmt.Sprintf("question %d: %d distinct answers, at least %d required", d.QuestionNumber, d.UniqueAnswers, r.Summary.MinimumRequired))
		}
	}
	return out
}
