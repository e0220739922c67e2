package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotGridLabels(t *testing.T) {
	t.Run("default grid offers twelve slots", func(t *testing.T) {
		labels := DefaultGrid().Labels()

		assert.Len(t, labels, 12)
		assert.Equal(t, "08:00", labels[0])
		assert.Equal(t, "17:10", labels[len(labels)-1])
	})

	t.Run("is deterministic", func(t *testing.T) {
		grid := DefaultGrid()
		assert.Equal(t, grid.Labels(), grid.Labels())
	})

	t.Run("never offers a slot crossing the end boundary", func(t *testing.T) {
		grid := SlotGrid{StartHour: 9, EndHour: 10, SlotMinutes: 45}
		labels := grid.Labels()

		assert.Equal(t, []string{"09:00"}, labels)
	})

	t.Run("hour-long slots fill the day exactly", func(t *testing.T) {
		grid := SlotGrid{StartHour: 8, EndHour: 12, SlotMinutes: 60}

		assert.Equal(t, []string{"08:00", "09:00", "10:00", "11:00"}, grid.Labels())
	})

	t.Run("degenerate configurations yield no slots", func(t *testing.T) {
		assert.Empty(t, SlotGrid{StartHour: 10, EndHour: 8, SlotMinutes: 50}.Labels())
		assert.Empty(t, SlotGrid{StartHour: 8, EndHour: 18, SlotMinutes: 0}.Labels())
		assert.Empty(t, SlotGrid{StartHour: -1, EndHour: 18, SlotMinutes: 50}.Labels())
	})
}

func TestSlotGridContains(t *testing.T) {
	grid := DefaultGrid()

	assert.True(t, grid.Contains("08:00"))
	assert.True(t, grid.Contains("17:10"))
	assert.False(t, grid.Contains("18:00"))
	assert.False(t, grid.Contains("08:30"))
}

func TestSlotGridAvailable(t *testing.T) {
	grid := DefaultGrid()

	t.Run("all slots free when nothing is taken", func(t *testing.T) {
		assert.Equal(t, grid.Labels(), grid.Available(nil))
	})

	t.Run("taken slots are filtered out", func(t *testing.T) {
		free := grid.Available([]string{"08:00", "08:50"})

		assert.Len(t, free, 10)
		assert.NotContains(t, free, "08:00")
		assert.NotContains(t, free, "08:50")
		assert.Contains(t, free, "09:40")
	})

	t.Run("taken labels outside the grid are ignored", func(t *testing.T) {
		free := grid.Available([]string{"23:00"})
		assert.Equal(t, grid.Labels(), free)
	})

	t.Run("preserves ascending order", func(t *testing.T) {
		free := grid.Available([]string{"09:40"})
		for i := 1; i < len(free); i++ {
			assert.Less(t, free[i-1], free[i])
		}
	})
}
