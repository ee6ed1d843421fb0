package domain

import (
	"time"

	"github.com/google/uuid"
)

// Problem represents a practice problem with its two disjoint ordered
// test-case sequences. Visible cases are shown to the user and graded on
// "run"; hidden cases are appended on "submit" and never leave the backend.
type Problem struct {
	ID               uuid.UUID  `db:"id"`
	Slug             string     `db:"slug"`
	Title            string     `db:"title"`
	Difficulty       string     `db:"difficulty"`
	VisibleTestCases []TestCase `db:"visible_test_cases"`
	HiddenTestCases  []TestCase `db:"hidden_test_cases"`
	CreatedAt        time.Time  `db:"created_at"`
}

type ProblemTable struct {
	ID               string
	Slug             string
	Title            string
	Difficulty       string
	VisibleTestCases string
	HiddenTestCases  string
	CreatedAt        string
}

func GetProblemTable() ProblemTable {
	return ProblemTable{
		ID:               "id",
		Slug:             "slug",
		Title:            "title",
		Difficulty:       "difficulty",
		VisibleTestCases: "visible_test_cases",
		HiddenTestCases:  "hidden_test_cases",
		CreatedAt:        "created_at",
	}
}

func (ProblemTable) TableName() string {
	return "problems"
}
