package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyPlanField    = errors.New("model: plan title and description are required")
	ErrInvalidPlanStatus = errors.New("model: invalid plan status")
)

type PlanStatus string

const PlanStatusActive PlanStatus = "active"

func (s PlanStatus) IsValid() bool {
	return s == PlanStatusActive
}

type Plan struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	Status      PlanStatus `json:"status"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func NewPlan(id int64, title, description string, now time.Time) (Plan, error) {
	p := Plan{
		ID:          id,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		CreatedAt:   now.UTC(),
		Status:      PlanStatusActive,
	}
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	return p, nil
}

func (p Plan) Validate() error {
	if p.ID <= 0 {
		return errors.New("model: plan id is required")
	}
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Description) == "" {
		return ErrEmptyPlanField
	}
	if !p.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPlanStatus, p.Status)
	}
	if p.CreatedAt.IsZero() {
		return errors.New("model: plan created_at is required")
	}
	return nil
}

// Edit replaces title and description. p is left untouched when either value
// is blank.
func (p *Plan) Edit(title, description string, now time.Time) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return ErrEmptyPlanField
	}
	updated := now.UTC()
	p.Title = title
	p.Description = description
	p.UpdatedAt = &updated
	return nil
}
