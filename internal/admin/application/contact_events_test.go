package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rchitlangi/cv-site/api/internal/contact/domain"
)

type stubEventRepo struct {
	got ContactEventFilter
}

func (r *stubEventRepo) Find(_ context.Context, filter ContactEventFilter) ([]domain.ContactEvent, error) {
	r.got = filter
	return []domain.ContactEvent{{ID: "1"}}, nil
}

func TestContactEventServiceClampsLimit(t *testing.T) {
	cases := map[int]int{0: 50, -3: 50, 10: 10, 500: 500, 10000: 500}
	for in, want := range cases {
		repo := &stubEventRepo{}
		events, err := NewContactEventService(repo).List(context.Background(), ContactEventFilter{Limit: in, Status: 403})
		require.NoError(t, err)
		assert.Len(t, events, 1)
		assert.Equal(t, want, repo.got.Limit, "limit %d", in)
		assert.Equal(t, 403, repo.got.Status)
	}
}
