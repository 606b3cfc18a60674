package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"wallet-console/pkg/types"
)

const (
	DefaultStorageFileName = ".wallet-console-wallets.json"
)

// ErrNotFound is returned when no wallet matches the lookup
var ErrNotFound = errors.New("wallet not found")

// ErrNoActiveWallet is returned by Active when no wallet is selected
var ErrNoActiveWallet = errors.New("no active wallet selected")

// Storage handles persistence of wallets and the active selection
type Storage struct {
	filePath string
	mu       sync.RWMutex
	wallets  map[types.WalletID]*types.Wallet
	active   types.WalletID
	loading  atomic.Bool
}

// walletFile represents the JSON structure on disk
type walletFile struct {
	Active  types.WalletID                   `json:"active,omitempty"`
	Wallets map[types.WalletID]*types.Wallet `json:"wallets"`
}

// NewStorage creates a storage instance. Nothing is read until Load.
func NewStorage(filePath string) (*Storage, error) {
	if filePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		filePath = filepath.Join(home, DefaultStorageFileName)
	}

	s := &Storage{
		filePath: filePath,
		wallets:  make(map[types.WalletID]*types.Wallet),
	}
	s.loading.Store(true)
	return s, nil
}

// Load reads wallets from the storage file. A missing file is an empty store.
func (s *Storage) Load() error {
	s.loading.Store(true)
	defer s.loading.Store(false)

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read wallets: %w", err)
	}

	var wf walletFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return fmt.Errorf("failed to unmarshal wallets: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.wallets = wf.Wallets
	if s.wallets == nil {
		s.wallets = make(map[types.WalletID]*types.Wallet)
	}
	s.active = wf.Active
	if _, ok := s.wallets[s.active]; !ok {
		s.active = ""
	}

	return nil
}

// Loading reports whether Load has not completed yet
func (s *Storage) Loading() bool {
	return s.loading.Load()
}

// saveLocked writes the store to disk. The caller holds mu.
func (s *Storage) saveLocked() error {
	data, err := json.MarshalIndent(walletFile{Active: s.active, Wallets: s.wallets}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal wallets: %w", err)
	}

	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Write to temporary file first, then rename for atomic write
	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write wallets: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Create adds a new wallet
func (s *Storage) Create(w *types.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.wallets[w.ID]; exists {
		return fmt.Errorf("wallet '%s' already exists", w.ID)
	}
	for _, existing := range s.wallets {
		if existing.Name == w.Name {
			return fmt.Errorf("wallet named '%s' already exists", w.Name)
		}
	}

	s.wallets[w.ID] = w
	return s.saveLocked()
}

// Get retrieves a wallet by ID
func (s *Storage) Get(id types.WalletID) (*types.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, exists := s.wallets[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return w, nil
}

// FindByName retrieves a wallet by its name
func (s *Storage) FindByName(name string) (*types.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, w := range s.wallets {
		if w.Name == name {
			return w, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Delete removes a wallet, clearing the active selection if it pointed to it
func (s *Storage) Delete(id types.WalletID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.wallets[id]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	delete(s.wallets, id)
	if s.active == id {
		s.active = ""
	}
	return s.saveLocked()
}

// List returns all wallets
func (s *Storage) List() []*types.Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wallets := make([]*types.Wallet, 0, len(s.wallets))
	for _, w := range s.wallets {
		wallets = append(wallets, w)
	}
	return wallets
}

// SetActive selects the wallet used by the send form
func (s *Storage) SetActive(id types.WalletID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.wallets[id]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.active = id
	return s.saveLocked()
}

// ActiveID returns the selected wallet ID
func (s *Storage) ActiveID() (types.WalletID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, s.active != ""
}

// Count returns the total number of wallets
func (s *Storage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.wallets)
}

// GetFilePath returns the storage file path
func (s *Storage) GetFilePath() string {
	return s.filePath
}
