package domain

import (
	"time"

	"github.com/google/uuid"
)

type Users struct {
	ID        uuid.UUID `db:"id"`
	UserName  string    `db:"user_name"`
	Email     *string   `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

type UsersTable struct {
	ID        string
	UserName  string
	Email     string
	CreatedAt string
}

func GetUserTable() UsersTable {
	return UsersTable{
		ID:        "id",
		UserName:  "user_name",
		Email:     "email",
		CreatedAt: "created_at",
	}
}

func (t UsersTable) GetTableName() string {
	return "users"
}

// SolvedProblemTable maps the user solved-set join table. Uniqueness of
// (user_id, problem_id) is enforced by the storage layer so that two racing
// terminal submissions cannot double-append.
type SolvedProblemTable struct {
	UserID    string
	ProblemID string
	SolvedAt  string
}

func GetSolvedProblemTable() SolvedProblemTable {
	return SolvedProblemTable{
		UserID:    "user_id",
		ProblemID: "problem_id",
		SolvedAt:  "solved_at",
	}
}

func (t SolvedProblemTable) GetTableName() string {
	return "user_solved_problems"
}
