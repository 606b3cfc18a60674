// Package wallet keeps the wallets known to the console and which one is
// active.
package wallet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"wallet-console/pkg/address"
	"wallet-console/pkg/types"
)

// Manager provides high-level operations over the wallet store
type Manager struct {
	storage *Storage
}

// NewManager creates a manager. Call Load before reading wallets.
func NewManager(storagePath string) (*Manager, error) {
	storage, err := NewStorage(storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}

	return &Manager{
		storage: storage,
	}, nil
}

// Open creates a manager and loads the store
func Open(storagePath string) (*Manager, error) {
	m, err := NewManager(storagePath)
	if err != nil {
		return nil, err
	}
	if err := m.Load(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads the wallet file
func (m *Manager) Load() error {
	return m.storage.Load()
}

// Loading reports whether wallet data is still being read
func (m *Manager) Loading() bool {
	return m.storage.Loading()
}

// Create validates and stores a new wallet. The first wallet becomes active.
func (m *Manager) Create(name string, chain types.Chain, network string, addr types.Address, symbol, route string) (*types.Wallet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("wallet name is required")
	}

	v := address.ForChain(chain)
	if v == nil {
		return nil, fmt.Errorf("unsupported chain: %s", chain)
	}
	if res := v.Validate(string(addr)); !res.Valid {
		return nil, fmt.Errorf("invalid wallet address: %s", res.Reason)
	}

	if route != "" && route != "intents" {
		return nil, fmt.Errorf("unknown fee route: %s", route)
	}

	w := &types.Wallet{
		ID:      types.WalletID(uuid.New().String()),
		Name:    name,
		Chain:   chain,
		Network: network,
		Address: addr,
		Symbol:  strings.ToUpper(symbol),
		Route:   route,
	}

	if err := m.storage.Create(w); err != nil {
		return nil, err
	}

	if m.storage.Count() == 1 {
		if err := m.storage.SetActive(w.ID); err != nil {
			return nil, err
		}
	}

	return w, nil
}

// Get retrieves a wallet by ID
func (m *Manager) Get(id types.WalletID) (*types.Wallet, error) {
	return m.storage.Get(id)
}

// Resolve finds a wallet by ID or name
func (m *Manager) Resolve(ref string) (*types.Wallet, error) {
	if w, err := m.storage.Get(types.WalletID(ref)); err == nil {
		return w, nil
	}
	return m.storage.FindByName(ref)
}

// List returns all wallets sorted by name
func (m *Manager) List() []*types.Wallet {
	wallets := m.storage.List()
	sort.Slice(wallets, func(i, j int) bool {
		return wallets[i].Name < wallets[j].Name
	})
	return wallets
}

// Remove deletes a wallet by ID or name
func (m *Manager) Remove(ref string) error {
	w, err := m.Resolve(ref)
	if err != nil {
		return err
	}
	return m.storage.Delete(w.ID)
}

// Use makes the wallet identified by ID or name active
func (m *Manager) Use(ref string) (*types.Wallet, error) {
	w, err := m.Resolve(ref)
	if err != nil {
		return nil, err
	}
	if err := m.storage.SetActive(w.ID); err != nil {
		return nil, err
	}
	return w, nil
}

// Active returns the active wallet
func (m *Manager) Active() (*types.Wallet, error) {
	id, ok := m.storage.ActiveID()
	if !ok {
		return nil, ErrNoActiveWallet
	}
	return m.storage.Get(id)
}

// ActiveWalletID returns the active wallet ID
func (m *Manager) ActiveWalletID() (types.WalletID, bool) {
	return m.storage.ActiveID()
}

// GetFilePath returns the path of the wallet file
func (m *Manager) GetFilePath() string {
	return m.storage.GetFilePath()
}
