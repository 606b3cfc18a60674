package monitor

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/gagliardetto/solana-go/rpc"
)

// Progress is what a node reports about block sync
type Progress struct {
	Syncing  bool
	Starting uint64
	Current  uint64
	Highest  uint64
}

// Percentage returns how far the sync got, in [0, 100]
func (p Progress) Percentage() float64 {
	if !p.Syncing {
		return 100
	}
	if p.Highest > p.Starting && p.Current >= p.Starting {
		return float64(p.Current-p.Starting) / float64(p.Highest-p.Starting) * 100
	}
	if p.Highest > 0 {
		return float64(p.Current) / float64(p.Highest) * 100
	}
	return 0
}

// NodeProbe checks connectivity and sync state of a node. An error means the
// node could not be reached.
type NodeProbe interface {
	Probe(ctx context.Context) (Progress, error)
}

// EVMBackend is the subset of ethclient.Client used to probe a node
type EVMBackend interface {
	SyncProgress(ctx context.Context) (*ethereum.SyncProgress, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// EVMProbe probes an EVM JSON-RPC node
type EVMProbe struct {
	backend EVMBackend
}

func NewEVMProbe(backend EVMBackend) *EVMProbe {
	return &EVMProbe{backend: backend}
}

func (p *EVMProbe) Probe(ctx context.Context) (Progress, error) {
	sp, err := p.backend.SyncProgress(ctx)
	if err != nil {
		return Progress{}, fmt.Errorf("failed to get sync progress: %w", err)
	}
	if sp != nil {
		return Progress{
			Syncing:  true,
			Starting: sp.StartingBlock,
			Current:  sp.CurrentBlock,
			Highest:  sp.HighestBlock,
		}, nil
	}

	head, err := p.backend.BlockNumber(ctx)
	if err != nil {
		return Progress{}, fmt.Errorf("failed to get block number: %w", err)
	}
	return Progress{Current: head, Highest: head}, nil
}

// SolanaBackend is the subset of rpc.Client used to probe a node
type SolanaBackend interface {
	GetSlot(ctx context.Context, commitment rpc.CommitmentType) (uint64, error)
	GetHealth(ctx context.Context) (string, error)
}

// SolanaProbe probes a Solana RPC node. An unhealthy node that still answers
// is reported as syncing.
type SolanaProbe struct {
	backend    SolanaBackend
	commitment rpc.CommitmentType
}

func NewSolanaProbe(backend SolanaBackend, commitment rpc.CommitmentType) *SolanaProbe {
	return &SolanaProbe{backend: backend, commitment: commitment}
}

func (p *SolanaProbe) Probe(ctx context.Context) (Progress, error) {
	slot, err := p.backend.GetSlot(ctx, p.commitment)
	if err != nil {
		return Progress{}, fmt.Errorf("failed to get slot: %w", err)
	}

	health, err := p.backend.GetHealth(ctx)
	if err != nil || health != rpc.HealthOk {
		return Progress{Syncing: true, Current: slot}, nil
	}
	return Progress{Current: slot, Highest: slot}, nil
}
