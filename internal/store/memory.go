package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/feral-file/vault-indexer/internal/domain"
	"github.com/feral-file/vault-indexer/internal/store/schema"
)

type subscriptionKey struct {
	kind    domain.PipelineKind
	address string
}

// memoryStore is a Store held in process memory. Records are stored and returned
// by value so callers never alias the store's state.
type memoryStore struct {
	mu            sync.RWMutex
	factories     map[string]schema.Factory
	assets        map[string]schema.Asset
	managers      map[string]schema.Manager
	vaults        map[string]schema.Vault
	subscriptions map[subscriptionKey]schema.VaultSubscription
	subSeq        int64
	keyValues     map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() Store {
	return &memoryStore{
		factories:     make(map[string]schema.Factory),
		assets:        make(map[string]schema.Asset),
		managers:      make(map[string]schema.Manager),
		vaults:        make(map[string]schema.Vault),
		subscriptions: make(map[subscriptionKey]schema.VaultSubscription),
		keyValues:     make(map[string]string),
	}
}

func load[T any](mu *sync.RWMutex, m map[string]T, id string) *T {
	mu.RLock()
	defer mu.RUnlock()
	v, ok := m[id]
	if !ok {
		return nil
	}
	return &v
}

func (s *memoryStore) GetFactory(_ context.Context, id string) (*schema.Factory, error) {
	return load(&s.mu, s.factories, id), nil
}

func (s *memoryStore) SaveFactory(_ context.Context, factory *schema.Factory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.factories[factory.ID] = *factory
	return nil
}

func (s *memoryStore) GetAsset(_ context.Context, id string) (*schema.Asset, error) {
	return load(&s.mu, s.assets, id), nil
}

func (s *memoryStore) SaveAsset(_ context.Context, asset *schema.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[asset.ID] = *asset
	return nil
}

func (s *memoryStore) GetManager(_ context.Context, id string) (*schema.Manager, error) {
	return load(&s.mu, s.managers, id), nil
}

func (s *memoryStore) SaveManager(_ context.Context, manager *schema.Manager) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.managers[manager.ID] = *manager
	return nil
}

func (s *memoryStore) GetVault(_ context.Context, id string) (*schema.Vault, error) {
	v := load(&s.mu, s.vaults, id)
	if v != nil && v.Raw != nil {
		v.Raw = slices.Clone(v.Raw)
	}
	return v, nil
}

func (s *memoryStore) SaveVault(_ context.Context, vault *schema.Vault) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := *vault
	if v.Raw != nil {
		v.Raw = slices.Clone(v.Raw)
	}
	s.vaults[v.ID] = v
	return nil
}

func (s *memoryStore) CountVaults(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.vaults)), nil
}

func (s *memoryStore) CreateVaultSubscription(_ context.Context, sub *schema.VaultSubscription) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := subscriptionKey{kind: sub.PipelineKind, address: sub.Address}
	if _, ok := s.subscriptions[key]; ok {
		return false, nil
	}
	s.subSeq++
	stored := *sub
	stored.Seq = s.subSeq
	s.subscriptions[key] = stored
	return true, nil
}

func (s *memoryStore) GetVaultSubscription(_ context.Context, kind domain.PipelineKind, address string) (*schema.VaultSubscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subscriptions[subscriptionKey{kind: kind, address: address}]
	if !ok {
		return nil, nil
	}
	return &sub, nil
}

func (s *memoryStore) ListVaultSubscriptions(_ context.Context, kind domain.PipelineKind) ([]schema.VaultSubscription, error) {
	s.mu.RLock()
	var subs []schema.VaultSubscription
	for key, sub := range s.subscriptions {
		if key.kind == kind {
			subs = append(subs, sub)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(subs, func(a, b schema.VaultSubscription) int {
		return cmp.Compare(a.Seq, b.Seq)
	})
	return subs, nil
}

func (s *memoryStore) GetEventCursor(_ context.Context, chain domain.Chain) (*domain.EventPosition, error) {
	s.mu.RLock()
	value, ok := s.keyValues[eventCursorKey(chain)]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	position, err := domain.ParseEventPosition(value)
	if err != nil {
		return nil, err
	}
	return &position, nil
}

func (s *memoryStore) SetEventCursor(_ context.Context, chain domain.Chain, position domain.EventPosition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyValues[eventCursorKey(chain)] = position.String()
	return nil
}

func (s *memoryStore) Ping(_ context.Context) error {
	return nil
}
