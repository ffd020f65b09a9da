package shutdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"forest-coverage/internal/logger"
)

func TestShutdownRunsHooksInReverse(t *testing.T) {
	m := NewManager(context.Background(), logger.Nop())

	var order []string
	m.Register("first", func() { order = append(order, "first") })
	m.Register("second", func() { order = append(order, "second") })

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"second", "first"}, order)
	assert.ErrorIs(t, m.Context().Err(), context.Canceled)

	select {
	case <-m.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestParentCancellationPropagates(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	m := NewManager(parent, logger.Nop())
	cancel()
	assert.ErrorIs(t, m.Context().Err(), context.Canceled)
}
