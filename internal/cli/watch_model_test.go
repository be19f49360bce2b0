package cli

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchModel_IdleView(t *testing.T) {
	app := testApp(t)
	model := newWatchModel(app.Tracker, taskNameResolver(app))

	view := model.View()
	assert.Contains(t, view, "Idle")
	assert.Contains(t, view, "q to quit")
}

func TestWatchModel_TrackingViewShowsTaskAndTimer(t *testing.T) {
	app := testApp(t)
	_, taskID := seedTask(t, app)
	require.NoError(t, app.Tracker.Start(context.Background(), taskID))

	model := newWatchModel(app.Tracker, taskNameResolver(app))
	view := model.View()
	assert.Contains(t, view, "Tracking")
	assert.Contains(t, view, "Development")
	assert.Contains(t, view, "00:00:0")
}

func TestWatchModel_QuitKey(t *testing.T) {
	app := testApp(t)
	model := newWatchModel(app.Tracker, taskNameResolver(app))

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWatchModel_TickKeepsTicking(t *testing.T) {
	app := testApp(t)
	model := newWatchModel(app.Tracker, taskNameResolver(app))

	_, cmd := model.Update(watchTickMsg{})
	assert.NotNil(t, cmd, "each tick schedules the next one")
}
