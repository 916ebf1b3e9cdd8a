package packer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(n int) int { return n }

func TestPackSkipsOversizedItem(t *testing.T) {
	costs := []int{50, 50, 5000, 40, 40, 30, 30, 20, 10, 5}

	packed := Pack(costs, identity, 150, DefaultScanWindow)

	var ranks []int
	for _, s := range packed.Slots {
		ranks = append(ranks, s.Rank)
	}
	assert.Equal(t, []int{1, 2, 4, 9}, ranks)
	assert.Equal(t, 150, packed.TokensUsed)
	assert.NotContains(t, ranks, 3, "the 5000-token item must be skipped")
	assert.Equal(t, 5, packed.Skipped)
}

func TestPackSlotsArePositional(t *testing.T) {
	packed := Pack([]int{10, 1000, 10}, identity, 100, 4)
	require.Len(t, packed.Slots, 2)
	assert.Equal(t, 1, packed.Slots[0].Slot)
	assert.Equal(t, 1, packed.Slots[0].Rank)
	assert.Equal(t, 2, packed.Slots[1].Slot)
	assert.Equal(t, 3, packed.Slots[1].Rank)
}

func TestPackScanWindowStopsScan(t *testing.T) {
	costs := []int{500, 500, 500, 10}
	packed := Pack(costs, identity, 100, 2)
	assert.Empty(t, packed.Slots)
	assert.Equal(t, 2, packed.Skipped)
}

func TestPackEdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		costs  []int
		budget int
		want   int
	}{
		{name: "zero budget", costs: []int{1, 2}, budget: 0, want: 0},
		{name: "negative budget", costs: []int{1}, budget: -5, want: 0},
		{name: "no items", costs: nil, budget: 100, want: 0},
		{name: "exact fit", costs: []int{60, 40}, budget: 100, want: 2},
		{name: "negative estimates count as zero", costs: []int{-10, 100}, budget: 100, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed := Pack(tt.costs, identity, tt.budget, 0)
			assert.Len(t, packed.Slots, tt.want)
		})
	}
}

func TestPackNeverExceedsBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		n := rng.Intn(30)
		costs := make([]int, n)
		for j := range costs {
			costs[j] = rng.Intn(400)
		}
		budget := rng.Intn(1000)
		window := rng.Intn(10)

		packed := Pack(costs, identity, budget, window)

		sum := 0
		for _, s := range packed.Slots {
			sum += s.Tokens
		}
		require.LessOrEqual(t, sum, max(budget, 0))
		require.Equal(t, sum, packed.TokensUsed)
	}
}
