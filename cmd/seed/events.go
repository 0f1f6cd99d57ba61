package main

import (
	"errors"
	"fmt"
	"math/rand"
	"net/netip"
	"sort"
	"time"

	"github.com/rchitlangi/cv-site/api/internal/contact/domain"
)

var errSeedRelay = errors.New("synthetic relay failure")

// generateEvents builds events through domain.NewContactEvent so seeded data
// carries the same stage and cause labels as live traffic. Oldest first.
func generateEvents(rng *rand.Rand, count int, now time.Time, span time.Duration) []domain.ContactEvent {
	events := make([]domain.ContactEvent, 0, count)
	for i := 0; i < count; i++ {
		at := now.Add(-time.Duration(rng.Int63n(int64(span) + 1)))
		events = append(events, domain.NewContactEvent(randomOutcome(rng), at))
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events
}

func randomOutcome(rng *rand.Rand) domain.Outcome {
	addr := randomAddress(rng)
	duration := time.Duration(50+rng.Intn(3000)) * time.Millisecond

	switch roll := rng.Intn(100); {
	case roll < 70:
		return domain.Outcome{Result: domain.ResultSent(), Stage: domain.StageDelivered, ClientAddr: addr, Duration: duration}
	case roll < 85:
		return domain.Outcome{
			Result:     domain.ResultRejected(),
			Stage:      domain.StageVerification,
			Err:        &domain.VerificationError{Kind: domain.VerificationRejected, Codes: []string{"invalid-input-response"}},
			ClientAddr: addr,
			Duration:   duration,
		}
	case roll < 90:
		return domain.Outcome{
			Result:     domain.ResultRejected(),
			Stage:      domain.StageVerification,
			Err:        &domain.VerificationError{Kind: domain.VerificationUnavailable, Err: errors.New("siteverify returned 503")},
			ClientAddr: addr,
			Duration:   duration,
		}
	case roll < 94:
		return domain.Outcome{
			Result:     domain.ResultFailed(),
			Stage:      domain.StageComposition,
			Err:        &domain.MessageBuildError{Field: domain.FieldReplyTo, Err: errors.New("missing '@' or angle-addr")},
			ClientAddr: addr,
			Duration:   duration,
		}
	default:
		stages := []domain.RelayStage{domain.RelayStageDial, domain.RelayStageAuth, domain.RelayStageSend}
		stage := stages[rng.Intn(len(stages))]
		return domain.Outcome{
			Result:     domain.ResultFailed(),
			Stage:      domain.StageRelay,
			Err:        &domain.RelayError{Stage: stage, Err: fmt.Errorf("%w at %s", errSeedRelay, stage)},
			ClientAddr: addr,
			Duration:   duration,
		}
	}
}

// randomAddress draws from the documentation ranges 203.0.113.0/24 and 2001:db8::/32.
func randomAddress(rng *rand.Rand) domain.ClientAddress {
	var raw string
	if rng.Intn(4) == 0 {
		raw = netip.AddrFrom16([16]byte{0x20, 0x01, 0x0d, 0xb8, 15: byte(1 + rng.Intn(254))}).String()
	} else {
		raw = fmt.Sprintf("203.0.113.%d", 1+rng.Intn(254))
	}
	addr, err := domain.ParseClientAddress(raw)
	if err != nil {
		panic(err)
	}
	return addr
}
