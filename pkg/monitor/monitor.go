// Package monitor turns node probes and local loading state into lifecycle
// snapshots for the loading view.
package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"wallet-console/pkg/logger"
	"wallet-console/pkg/status"
)

const (
	DefaultPollInterval = 5 * time.Second
	MinPollInterval     = 1 * time.Second
)

// LoadingReporter reports whether wallet data is still loading
type LoadingReporter interface {
	Loading() bool
}

// Monitor accumulates lifecycle flags across probes
type Monitor struct {
	probe   NodeProbe
	wallets LoadingReporter

	mu   sync.Mutex
	snap status.Snapshot
}

// New creates a monitor. The first snapshot reports connecting.
func New(probe NodeProbe, wallets LoadingReporter) *Monitor {
	return &Monitor{
		probe:   probe,
		wallets: wallets,
		snap:    status.Snapshot{IsConnecting: true},
	}
}

// SetLocaleLoaded marks the message catalog as available
func (m *Monitor) SetLocaleLoaded(loaded bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.HasLoadedCurrentLocale = loaded
}

// SetThemeLoaded marks the terminal theme as applied
func (m *Monitor) SetThemeLoaded(loaded bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.HasLoadedCurrentTheme = loaded
}

// Snapshot returns the current flags without probing
func (m *Monitor) Snapshot() status.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshLoading()
	return m.snap
}

// Poll probes the node once and returns the updated snapshot
func (m *Monitor) Poll(ctx context.Context) status.Snapshot {
	progress, err := m.probe.Probe(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		logger.Debug("node probe failed", zap.Error(err))
		m.snap.IsConnecting = true
		m.snap.IsSyncing = false
	} else {
		m.snap.IsConnecting = false
		m.snap.HasBeenConnected = true
		m.snap.IsSyncing = progress.Syncing
		m.snap.SyncPercentage = progress.Percentage()
		if progress.Syncing || progress.Current > 0 {
			m.snap.HasBlockSyncingStarted = true
		}
	}
	m.refreshLoading()

	return m.snap
}

func (m *Monitor) refreshLoading() {
	m.snap.IsLoadingWallets = m.wallets != nil && m.wallets.Loading()
}

// Watch polls immediately and then on every interval tick, passing each
// snapshot to fn. It returns when ctx is done.
func (m *Monitor) Watch(ctx context.Context, interval time.Duration, fn func(status.Snapshot)) error {
	if interval < MinPollInterval {
		interval = MinPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Check immediately first
	fn(m.Poll(ctx))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fn(m.Poll(ctx))
		}
	}
}
