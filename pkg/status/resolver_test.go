package status

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func loaded(s Snapshot) Snapshot {
	s.HasLoadedCurrentLocale = true
	s.HasLoadedCurrentTheme = true
	return s
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want DisplayState
	}{
		{
			name: "locale not loaded hides everything",
			snap: Snapshot{IsConnecting: true, IsSyncing: true, IsLoadingWallets: true, HasLoadedCurrentTheme: true},
			want: DisplayState{Kind: Blank},
		},
		{
			name: "first connection",
			snap: loaded(Snapshot{IsConnecting: true}),
			want: DisplayState{Kind: Connecting},
		},
		{
			name: "connection lost",
			snap: loaded(Snapshot{IsConnecting: true, HasBeenConnected: true}),
			want: DisplayState{Kind: Reconnecting},
		},
		{
			name: "connecting after block sync started",
			snap: loaded(Snapshot{IsConnecting: true, HasBeenConnected: true, HasBlockSyncingStarted: true}),
			want: DisplayState{Kind: WaitingForSyncStart},
		},
		{
			name: "connecting wins over syncing",
			snap: loaded(Snapshot{IsConnecting: true, IsSyncing: true, SyncPercentage: 10}),
			want: DisplayState{Kind: Connecting},
		},
		{
			name: "syncing",
			snap: loaded(Snapshot{IsSyncing: true, SyncPercentage: 42.5}),
			want: DisplayState{Kind: Syncing, Percentage: 42.5},
		},
		{
			name: "syncing wins over loading wallets",
			snap: loaded(Snapshot{IsSyncing: true, IsLoadingWallets: true, SyncPercentage: 99}),
			want: DisplayState{Kind: Syncing, Percentage: 99},
		},
		{
			name: "loading wallets",
			snap: loaded(Snapshot{HasBeenConnected: true, HasBlockSyncingStarted: true, IsLoadingWallets: true}),
			want: DisplayState{Kind: LoadingWalletData},
		},
		{
			name: "fully loaded",
			snap: loaded(Snapshot{HasBeenConnected: true, HasBlockSyncingStarted: true}),
			want: DisplayState{Kind: Blank},
		},
		{
			name: "has been connected alone has no effect",
			snap: loaded(Snapshot{HasBeenConnected: true}),
			want: DisplayState{Kind: Blank},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.snap))
		})
	}
}

func TestResolveLocaleGate(t *testing.T) {
	// Every flag combination without a locale resolves to Blank.
	for mask := 0; mask < 1<<6; mask++ {
		s := Snapshot{
			IsConnecting:           mask&1 != 0,
			HasBeenConnected:       mask&2 != 0,
			IsSyncing:              mask&4 != 0,
			HasBlockSyncingStarted: mask&8 != 0,
			IsLoadingWallets:       mask&16 != 0,
			HasLoadedCurrentTheme:  mask&32 != 0,
			SyncPercentage:         float64(mask),
		}
		assert.Equal(t, DisplayState{Kind: Blank}, Resolve(s), "mask %06b", mask)
	}
}

func TestResolveConnectingPhrasing(t *testing.T) {
	for _, theme := range []bool{true, false} {
		for _, wallets := range []bool{true, false} {
			s := Snapshot{
				IsConnecting:           true,
				HasLoadedCurrentLocale: true,
				HasLoadedCurrentTheme:  theme,
				IsLoadingWallets:       wallets,
			}
			assert.Equal(t, Connecting, Resolve(s).Kind)

			s.HasBeenConnected = true
			assert.Equal(t, Reconnecting, Resolve(s).Kind)
		}
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	s := loaded(Snapshot{IsSyncing: true, SyncPercentage: 73.456})
	first := Resolve(s)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Resolve(s))
	}
}

func TestSyncPercentageClamping(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: -5, want: "0.00"},
		{in: 150, want: "100.00"},
		{in: 42.5, want: "42.50"},
		{in: 0, want: "0.00"},
		{in: 100, want: "100.00"},
		{in: 33.333, want: "33.33"},
		{in: math.NaN(), want: "0.00"},
		{in: math.Inf(1), want: "100.00"},
	}

	for _, tt := range tests {
		state := Resolve(loaded(Snapshot{IsSyncing: true, SyncPercentage: tt.in}))
		assert.Equal(t, Syncing, state.Kind)
		assert.Equal(t, tt.want, state.FormattedPercentage(), "input %v", tt.in)
	}
}

func TestSyncingScenario(t *testing.T) {
	s := Snapshot{IsConnecting: false, IsSyncing: true, SyncPercentage: 42.5, HasLoadedCurrentLocale: true}
	state := Resolve(s)

	assert.Equal(t, "syncing(42.50)", state.String())
	assert.Equal(t, "Syncing blocks 42.50%", state.Headline())
}

func TestIsThemePending(t *testing.T) {
	s := loaded(Snapshot{IsConnecting: true})
	assert.False(t, IsThemePending(s))

	s.HasLoadedCurrentTheme = false
	assert.True(t, IsThemePending(s))
	assert.Equal(t, Connecting, Resolve(s).Kind)
}
