package tray

import (
	"testing"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/phasetimer"

	"github.com/stretchr/testify/assert"
)

func TestStatusLine(t *testing.T) {
	snapshot := phasetimer.Snapshot{Phase: model.PhaseWork, Remaining: 1499, Running: true}
	assert.Equal(t, "Pomodoro 24:59", StatusLine(snapshot))

	snapshot = phasetimer.Snapshot{Phase: model.PhaseLongBreak, Remaining: 900}
	assert.Equal(t, "Long Break 15:00 (paused)", StatusLine(snapshot))
}

func TestUpdateWithoutTray(t *testing.T) {
	var selected model.Phase
	manager := New(nil, Callbacks{
		OnSelectPhase: func(phase model.Phase) { selected = phase },
	})

	manager.Update(phasetimer.Snapshot{Phase: model.PhaseShortBreak, Remaining: 300, Running: true})

	assert.Equal(t, "Stop", manager.toggleItem.Label)
	assert.True(t, manager.phaseItems[model.PhaseShortBreak].Checked)
	assert.False(t, manager.phaseItems[model.PhaseWork].Checked)
	assert.Equal(t, "Short Break 05:00", manager.statusItem.Label)

	manager.phaseItems[model.PhaseLongBreak].Action()
	assert.Equal(t, model.PhaseLongBreak, selected)
}
