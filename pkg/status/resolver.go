// Package status maps wallet startup flags to the single message the loading
// view shows.
package status

import (
	"fmt"
	"math"
)

// Snapshot holds the lifecycle flags at one point in time
type Snapshot struct {
	IsConnecting           bool    `json:"is_connecting"`
	HasBeenConnected       bool    `json:"has_been_connected"`
	IsSyncing              bool    `json:"is_syncing"`
	HasBlockSyncingStarted bool    `json:"has_block_syncing_started"`
	IsLoadingWallets       bool    `json:"is_loading_wallets"`
	SyncPercentage         float64 `json:"sync_percentage"`
	HasLoadedCurrentLocale bool    `json:"has_loaded_current_locale"`
	HasLoadedCurrentTheme  bool    `json:"has_loaded_current_theme"`
}

// Kind is the message shown by the loading view
type Kind int

const (
	Blank Kind = iota
	Connecting
	Reconnecting
	WaitingForSyncStart
	Syncing
	LoadingWalletData
)

var kindNames = map[Kind]string{
	Blank:               "blank",
	Connecting:          "connecting",
	Reconnecting:        "reconnecting",
	WaitingForSyncStart: "waiting_for_sync_start",
	Syncing:             "syncing",
	LoadingWalletData:   "loading_wallet_data",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// DisplayState is the resolved loading view state. Percentage is only
// meaningful for Syncing and is already clamped to [0, 100].
type DisplayState struct {
	Kind       Kind
	Percentage float64
}

// FormattedPercentage returns the sync percentage with two decimals
func (d DisplayState) FormattedPercentage() string {
	return fmt.Sprintf("%.2f", d.Percentage)
}

func (d DisplayState) String() string {
	if d.Kind == Syncing {
		return fmt.Sprintf("%s(%s)", d.Kind, d.FormattedPercentage())
	}
	return d.Kind.String()
}

// Resolve returns the display state for a snapshot. The first matching rule
// wins and the result depends on nothing but s.
func Resolve(s Snapshot) DisplayState {
	switch {
	case !s.HasLoadedCurrentLocale:
		return DisplayState{Kind: Blank}
	case s.IsConnecting && !s.HasBlockSyncingStarted:
		if s.HasBeenConnected {
			return DisplayState{Kind: Reconnecting}
		}
		return DisplayState{Kind: Connecting}
	case s.IsConnecting:
		return DisplayState{Kind: WaitingForSyncStart}
	case s.IsSyncing:
		return DisplayState{Kind: Syncing, Percentage: ClampPercentage(s.SyncPercentage)}
	case s.IsLoadingWallets:
		return DisplayState{Kind: LoadingWalletData}
	default:
		return DisplayState{Kind: Blank}
	}
}

// IsThemePending reports whether the transitional theme style applies.
// It never changes which message Resolve picks.
func IsThemePending(s Snapshot) bool {
	return !s.HasLoadedCurrentTheme
}

// ClampPercentage limits p to [0, 100]; NaN becomes 0
func ClampPercentage(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
