package health

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_AllHealthy(t *testing.T) {
	c := NewChecker(zerolog.Nop())
	c.Register("mistral", func(ctx context.Context) error { return nil })

	results := c.Run(context.Background())
	require.Len(t, results, 1)
	assert.NoError(t, results["mistral"])
	assert.True(t, c.Healthy(context.Background()))
}

func TestRun_FailingCheck(t *testing.T) {
	c := NewChecker(zerolog.Nop())
	boom := errors.New("provider unreachable")
	c.Register("mistral", func(ctx context.Context) error { return boom })

	results := c.Run(context.Background())
	assert.ErrorIs(t, results["mistral"], boom)
	assert.False(t, c.Healthy(context.Background()))
}

func TestRun_MultipleChecks(t *testing.T) {
	c := NewChecker(zerolog.Nop())
	c.Register("ok", func(ctx context.Context) error { return nil })
	c.Register("bad", func(ctx context.Context) error { return errors.New("down") })

	results := c.Run(context.Background())
	require.Len(t, results, 2)
	assert.NoError(t, results["ok"])
	assert.Error(t, results["bad"])
}

func TestRun_NoChecks(t *testing.T) {
	c := NewChecker(zerolog.Nop())
	assert.Empty(t, c.Run(context.Background()))
	assert.True(t, c.Healthy(context.Background()))
}
