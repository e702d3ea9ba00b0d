package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransition(StatusActive))
	assert.True(t, StatusPending.CanTransition(StatusCancelled))
	assert.True(t, StatusPending.CanTransition(StatusExpired))

	assert.True(t, StatusActive.CanTransition(StatusExpired))
	assert.True(t, StatusActive.CanTransition(StatusCancelled))
	assert.True(t, StatusActive.CanTransition(StatusSuspended))
	assert.False(t, StatusActive.CanTransition(StatusPending))

	assert.True(t, StatusSuspended.CanTransition(StatusActive))

	// terminal states admit nothing
	assert.False(t, StatusExpired.CanTransition(StatusActive))
	assert.False(t, StatusCancelled.CanTransition(StatusActive))
	assert.False(t, StatusExpired.CanTransition(StatusPending))
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusExpired.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusActive.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusSuspended.IsTerminal())
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	sub := &Subscription{EndDate: now.AddDate(0, 0, 10)}

	assert.Equal(t, 10, sub.DaysRemaining(now))

	// partial days round up
	sub.EndDate = now.Add(36 * time.Hour)
	assert.Equal(t, 2, sub.DaysRemaining(now))

	// never negative
	sub.EndDate = now.AddDate(0, 0, -3)
	assert.Equal(t, 0, sub.DaysRemaining(now))
}

func TestCoversAndIsExpired(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	sub := &Subscription{StartDate: start, EndDate: end}

	assert.True(t, sub.Covers(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, sub.Covers(start))
	assert.True(t, sub.Covers(end))
	assert.False(t, sub.Covers(end.Add(time.Second)))
	assert.False(t, sub.Covers(start.Add(-time.Second)))

	assert.False(t, sub.IsExpired(end))
	assert.True(t, sub.IsExpired(end.Add(time.Second)))
}
