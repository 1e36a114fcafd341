package domain

import (
	"context"
	"time"
)

type Candidate struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	JobRole      string    `json:"jobRole"`
	ResumeText   string    `json:"resumeText"`
	Disqualified bool      `json:"disqualified"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CandidateRepository interface {
	Create(ctx context.Context, candidate *Candidate) error
	FindByID(ctx context.Context, id int64) (*Candidate, error)
	FindByEmail(ctx context.Context, email string) (*Candidate, error)
	FindAll(ctx context.Context) ([]Candidate, error)
	Update(ctx context.Context, candidate *Candidate) error
	Disqualify(ctx context.Context, id int64) error
	// Delete removes the candidate and cascades to interviews, answers
	// and evaluations in a single transaction.
	Delete(ctx context.Context, id int64) error
}
