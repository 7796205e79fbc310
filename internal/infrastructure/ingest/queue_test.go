package ingest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflab/reef/internal/domain/entity"
)

func TestQueue_DrainReturnsArrivalOrder(t *testing.T) {
	q := NewQueue(10)
	for i := 0; i < 3; i++ {
		q.Enqueue(entity.Event{Kind: entity.KindToolStart, AgentID: fmt.Sprintf("a%d", i)})
	}

	out := q.Drain()
	require.Len(t, out, 3)
	for i, ev := range out {
		assert.Equal(t, fmt.Sprintf("a%d", i), ev.AgentID)
	}

	assert.Nil(t, q.Drain(), "a drained queue yields nothing")
	assert.Zero(t, q.Len())
}

func TestQueue_EvictsOldestWhenFull(t *testing.T) {
	q := NewQueue(3)
	for i := 0; i < 5; i++ {
		q.Enqueue(entity.Event{Kind: entity.KindToolStart, AgentID: fmt.Sprintf("a%d", i)})
	}

	out := q.Drain()
	require.Len(t, out, 3)
	assert.Equal(t, "a2", out[0].AgentID, "the two oldest were evicted")
	assert.Equal(t, "a4", out[2].AgentID)
}

func TestQueue_DefaultCapacity(t *testing.T) {
	q := NewQueue(0)
	for i := 0; i < DefaultQueueCapacity+10; i++ {
		q.Enqueue(entity.Event{Kind: entity.KindToolStart})
	}
	assert.Equal(t, DefaultQueueCapacity, q.Len())
}
