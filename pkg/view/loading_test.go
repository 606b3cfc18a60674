package view

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-console/pkg/status"
)

func loaded(s status.Snapshot) status.Snapshot {
	s.HasLoadedCurrentLocale = true
	s.HasLoadedCurrentTheme = true
	return s
}

func TestLoadingModelRendersState(t *testing.T) {
	tests := []struct {
		name string
		snap status.Snapshot
		kind status.Kind
		want string
	}{
		{
			name: "connecting",
			snap: loaded(status.Snapshot{IsConnecting: true}),
			kind: status.Connecting,
			want: "Connecting to network",
		},
		{
			name: "reconnecting",
			snap: loaded(status.Snapshot{IsConnecting: true, HasBeenConnected: true}),
			kind: status.Reconnecting,
			want: "reconnecting",
		},
		{
			name: "syncing",
			snap: loaded(status.Snapshot{IsSyncing: true, SyncPercentage: 42.5}),
			kind: status.Syncing,
			want: "Syncing blocks 42.50%",
		},
		{
			name: "loading wallets",
			snap: loaded(status.Snapshot{IsLoadingWallets: true}),
			kind: status.LoadingWalletData,
			want: "Loading wallet data " + spinnerFrames[0],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewLoadingModel(false)
			next, cmd := m.Update(SnapshotMsg(tt.snap))
			assert.Nil(t, cmd)

			lm := next.(LoadingModel)
			assert.Equal(t, tt.kind, lm.State().State.Kind)
			assert.Contains(t, lm.View(), tt.want)
		})
	}
}

func TestLoadingModelQuitsWhenReady(t *testing.T) {
	m := NewLoadingModel(true)

	next, cmd := m.Update(SnapshotMsg(loaded(status.Snapshot{IsConnecting: true})))
	assert.Nil(t, cmd)

	next, cmd = next.Update(SnapshotMsg(loaded(status.Snapshot{})))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, next.(LoadingModel).State().Ready)
	assert.Contains(t, next.View(), "Ready")
}

func TestLoadingModelLocaleNotLoadedIsNotReady(t *testing.T) {
	m := NewLoadingModel(true)

	next, cmd := m.Update(SnapshotMsg(status.Snapshot{IsConnecting: true}))
	assert.Nil(t, cmd)

	lm := next.(LoadingModel)
	assert.Equal(t, status.Blank, lm.State().State.Kind)
	assert.False(t, lm.State().Ready)
	assert.True(t, lm.State().Style.ThemePending)
	assert.NotContains(t, lm.View(), "Ready")
}

func TestLoadingModelKeysAndTicks(t *testing.T) {
	m := NewLoadingModel(false)
	require.NotNil(t, m.Init())

	next, cmd := m.Update(tickMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, next.(LoadingModel).frame)

	_, cmd = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
