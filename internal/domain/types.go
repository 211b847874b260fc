package domain

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet ||
		chain == ChainEthereumSepolia
}

// EntityType identifies a kind of materialized record
type EntityType string

const (
	EntityTypeFactory EntityType = "factory"
	EntityTypeAsset   EntityType = "asset"
	EntityTypeManager EntityType = "manager"
	EntityTypeVault   EntityType = "vault"
)

// PipelineKind identifies a follow-on event pipeline that can be registered per address
type PipelineKind string

const (
	// PipelineKindVaultInstance routes events emitted by a single vault (deposits, redeems, ...)
	PipelineKindVaultInstance PipelineKind = "VaultInstance"
)

// VaultCreatedParams holds the decoded arguments of a VaultCreated log
type VaultCreatedParams struct {
	AssetAddress string   `json:"asset_address"`
	VaultAddress string   `json:"vault_address"`
	VaultName    string   `json:"vault_name"`
	VaultSymbol  string   `json:"vault_symbol"`
	Fee          *big.Int `json:"fee"` // basis points, stored opaquely
}

// VaultCreatedEvent represents a VaultCreated log emitted by a vault factory
type VaultCreatedEvent struct {
	Chain          Chain              `json:"chain"`
	EmitterAddress string             `json:"emitter_address"` // the factory contract
	Params         VaultCreatedParams `json:"params"`
	BlockTimestamp uint64             `json:"block_timestamp"` // unix seconds
	BlockNumber    uint64             `json:"block_number"`
	BlockHash      *string            `json:"block_hash,omitempty"`
	TxHash         string             `json:"tx_hash"`
	LogIndex       uint64             `json:"log_index"`
}

// Validate checks that every address of the event is a well-formed hex address
func (e *VaultCreatedEvent) Validate() error {
	if !IsValidAddress(e.EmitterAddress) {
		return fmt.Errorf("%w: emitter address %q", ErrInvalidEvent, e.EmitterAddress)
	}
	if !IsValidAddress(e.Params.AssetAddress) {
		return fmt.Errorf("%w: asset address %q", ErrInvalidEvent, e.Params.AssetAddress)
	}
	if !IsValidAddress(e.Params.VaultAddress) {
		return fmt.Errorf("%w: vault address %q", ErrInvalidEvent, e.Params.VaultAddress)
	}
	if e.Params.Fee == nil || e.Params.Fee.Sign() < 0 {
		return fmt.Errorf("%w: fee must be a non-negative integer", ErrInvalidEvent)
	}
	return nil
}

// Timestamp returns the block timestamp as a UTC time
func (e *VaultCreatedEvent) Timestamp() time.Time {
	return time.Unix(int64(e.BlockTimestamp), 0).UTC() //nolint:gosec,G115 // block timestamps fit in int64
}

// Position returns the position of the event in the ordered log stream
func (e *VaultCreatedEvent) Position() EventPosition {
	return EventPosition{BlockNumber: e.BlockNumber, LogIndex: e.LogIndex}
}

// EventPosition orders logs by block number, then by log index within the block
type EventPosition struct {
	BlockNumber uint64
	LogIndex    uint64
}

// IsZero reports whether the position is unset
func (p EventPosition) IsZero() bool {
	return p.BlockNumber == 0 && p.LogIndex == 0
}

// After reports whether p comes strictly after o
func (p EventPosition) After(o EventPosition) bool {
	if p.BlockNumber != o.BlockNumber {
		return p.BlockNumber > o.BlockNumber
	}
	return p.LogIndex > o.LogIndex
}

// String encodes the position as "<block>:<logIndex>"
func (p EventPosition) String() string {
	return fmt.Sprintf("%d:%d", p.BlockNumber, p.LogIndex)
}

// ParseEventPosition parses a position previously encoded with String
func ParseEventPosition(s string) (EventPosition, error) {
	blockStr, indexStr, ok := strings.Cut(s, ":")
	if !ok {
		return EventPosition{}, fmt.Errorf("invalid event position: %q", s)
	}

	blockNumber, err := strconv.ParseUint(blockStr, 10, 64)
	if err != nil {
		return EventPosition{}, fmt.Errorf("invalid block number in event position %q: %w", s, err)
	}

	logIndex, err := strconv.ParseUint(indexStr, 10, 64)
	if err != nil {
		return EventPosition{}, fmt.Errorf("invalid log index in event position %q: %w", s, err)
	}

	return EventPosition{BlockNumber: blockNumber, LogIndex: logIndex}, nil
}

// SubscriptionRegistered is announced when a new per-address pipeline is registered
type SubscriptionRegistered struct {
	Chain        Chain        `json:"chain"`
	PipelineKind PipelineKind `json:"pipeline_kind"`
	Address      string       `json:"address"`
	RegisteredAt time.Time    `json:"registered_at"`
}
