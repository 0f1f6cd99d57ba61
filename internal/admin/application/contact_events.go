package application

import (
	"context"
	"time"

	"github.com/rchitlangi/cv-site/api/internal/contact/domain"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

// ContactEventFilter expresses admin search criteria for the audit log.
type ContactEventFilter struct {
	Status int
	Since  time.Time
	Limit  int
}

// ContactEventRepository exposes read access to the audit log.
type ContactEventRepository interface {
	Find(ctx context.Context, filter ContactEventFilter) ([]domain.ContactEvent, error)
}

// ContactEventService describes admin audit log use-cases.
type ContactEventService interface {
	List(ctx context.Context, filter ContactEventFilter) ([]domain.ContactEvent, error)
}

type contactEventService struct {
	repo ContactEventRepository
}

// NewContactEventService wires the repository.
func NewContactEventService(repo ContactEventRepository) ContactEventService {
	return &contactEventService{repo: repo}
}

func (s *contactEventService) List(ctx context.Context, filter ContactEventFilter) ([]domain.ContactEvent, error) {
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultEventLimit
	case filter.Limit > maxEventLimit:
		filter.Limit = maxEventLimit
	}
	return s.repo.Find(ctx, filter)
}
