package materializer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/vault-indexer/internal/adapter"
	"github.com/feral-file/vault-indexer/internal/domain"
	"github.com/feral-file/vault-indexer/internal/logger"
	"github.com/feral-file/vault-indexer/internal/providers/ethereum"
	"github.com/feral-file/vault-indexer/internal/store"
	"github.com/feral-file/vault-indexer/internal/store/schema"
	"github.com/feral-file/vault-indexer/internal/subscription"
)

// Engine materializes the entities derived from a VaultCreated event
//
//go:generate mockgen -source=engine.go -destination=../mocks/engine.go -package=mocks -mock_names=Engine=MockEngine
type Engine interface {
	// HandleVaultCreated resolves the factory, asset and manager of the event, creates its vault
	// and registers the vault with the VaultInstance pipeline.
	// Events must be handled one at a time, in chain order.
	HandleVaultCreated(ctx context.Context, event *domain.VaultCreatedEvent) error
}

type engine struct {
	store     store.Store
	reader    ethereum.ContractReader
	registrar subscription.Registrar
	json      adapter.JSON
}

// NewEngine creates a new materialization engine
func NewEngine(st store.Store, reader ethereum.ContractReader, registrar subscription.Registrar, jsonAdapter adapter.JSON) Engine {
	return &engine{
		store:     st,
		reader:    reader,
		registrar: registrar,
		json:      jsonAdapter,
	}
}

// HandleVaultCreated materializes one VaultCreated event.
// Factory, asset and manager commit as each resolves; the vault is written last.
func (e *engine) HandleVaultCreated(ctx context.Context, event *domain.VaultCreatedEvent) error {
	if event == nil {
		return fmt.Errorf("%w: nil event", domain.ErrInvalidEvent)
	}
	if err := event.Validate(); err != nil {
		return err
	}

	factoryID, _ := domain.NormalizeAddress(event.EmitterAddress)
	assetID, _ := domain.NormalizeAddress(event.Params.AssetAddress)
	vaultID, _ := domain.NormalizeAddress(event.Params.VaultAddress)

	factory, created, err := resolve(ctx, factoryID, e.store.GetFactory,
		func(ctx context.Context) (*schema.Factory, error) { return e.createFactory(ctx, factoryID, event) },
		e.store.SaveFactory)
	if err != nil {
		return fmt.Errorf("failed to resolve factory %s: %w", factoryID, err)
	}
	logger.DebugCtx(ctx, "Resolved factory", zap.String("factory", factory.ID), zap.Bool("created", created))

	asset, created, err := resolve(ctx, assetID, e.store.GetAsset,
		func(ctx context.Context) (*schema.Asset, error) { return e.createAsset(ctx, assetID, event) },
		e.store.SaveAsset)
	if err != nil {
		return fmt.Errorf("failed to resolve asset %s: %w", assetID, err)
	}
	logger.DebugCtx(ctx, "Resolved asset", zap.String("asset", asset.ID), zap.Bool("created", created))

	// The manager is only known once the factory is resolved
	managerID := factory.ManagerAddress
	manager, created, err := resolve(ctx, managerID, e.store.GetManager,
		func(ctx context.Context) (*schema.Manager, error) { return e.createManager(ctx, managerID, event) },
		e.store.SaveManager)
	if err != nil {
		return fmt.Errorf("failed to resolve manager %s: %w", managerID, err)
	}
	logger.DebugCtx(ctx, "Resolved manager", zap.String("manager", manager.ID), zap.Bool("created", created))

	vault, err := e.createVault(ctx, vaultID, event, factory, asset, manager)
	if err != nil {
		return fmt.Errorf("failed to create vault %s: %w", vaultID, err)
	}
	logger.DebugCtx(ctx, "Created vault", zap.String("vault", vault.ID))

	registered, err := e.registrar.Register(ctx, domain.PipelineKindVaultInstance, vault.ID)
	if err != nil {
		return fmt.Errorf("failed to register vault %s: %w", vault.ID, err)
	}

	logger.InfoCtx(ctx, "Materialized vault",
		zap.String("vault", vault.ID),
		zap.String("factory", factory.ID),
		zap.String("asset", asset.ID),
		zap.String("manager", manager.ID),
		zap.Bool("subscription_created", registered),
		zap.Uint64("block_number", event.BlockNumber),
		zap.String("tx_hash", event.TxHash))

	return nil
}

func (e *engine) createFactory(ctx context.Context, id string, event *domain.VaultCreatedEvent) (*schema.Factory, error) {
	implementation, err := e.readAddress(ctx, id, "vaultImplementation", e.reader.VaultImplementation)
	if err != nil {
		return nil, err
	}
	manager, err := e.readAddress(ctx, id, "vaultManager", e.reader.VaultManager)
	if err != nil {
		return nil, err
	}

	ts := event.Timestamp()
	return &schema.Factory{
		ID:                         id,
		Address:                    id,
		VaultImplementationAddress: implementation,
		ManagerAddress:             manager,
		CreatedAt:                  ts,
		UpdatedAt:                  ts,
	}, nil
}

func (e *engine) createAsset(ctx context.Context, id string, event *domain.VaultCreatedEvent) (*schema.Asset, error) {
	symbol, err := e.reader.ERC20Symbol(ctx, id)
	if err != nil {
		return nil, err
	}
	name, err := e.reader.ERC20Name(ctx, id)
	if err != nil {
		return nil, err
	}
	decimals, err := e.reader.ERC20Decimals(ctx, id)
	if err != nil {
		return nil, err
	}

	return &schema.Asset{
		ID:        id,
		Address:   id,
		Symbol:    symbol,
		Name:      name,
		Decimals:  decimals,
		CreatedAt: event.Timestamp(),
	}, nil
}

func (e *engine) createManager(ctx context.Context, id string, event *domain.VaultCreatedEvent) (*schema.Manager, error) {
	owner, err := e.readAddress(ctx, id, "owner", e.reader.Owner)
	if err != nil {
		return nil, err
	}

	ts := event.Timestamp()
	return &schema.Manager{
		ID:        id,
		Address:   id,
		Owner:     owner,
		CreatedAt: ts,
		UpdatedAt: ts,
	}, nil
}

// createVault persists a new vault; an existing vault at id is a DuplicateEntityError
func (e *engine) createVault(
	ctx context.Context,
	id string,
	event *domain.VaultCreatedEvent,
	factory *schema.Factory,
	asset *schema.Asset,
	manager *schema.Manager,
) (*schema.Vault, error) {
	existing, err := e.store.GetVault(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.DuplicateEntityError{Type: domain.EntityTypeVault, ID: id}
	}

	raw, err := e.json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	ts := event.Timestamp()
	vault := &schema.Vault{
		ID:          id,
		Address:     id,
		Name:        event.Params.VaultName,
		Symbol:      event.Params.VaultSymbol,
		Fee:         event.Params.Fee.String(),
		IsActive:    true,
		TotalAssets: "0",
		TotalSupply: "0",
		FactoryID:   factory.ID,
		ManagerID:   manager.ID,
		AssetID:     asset.ID,
		Chain:       event.Chain,
		TxHash:      event.TxHash,
		BlockNumber: event.BlockNumber,
		LogIndex:    event.LogIndex,
		Raw:         datatypes.JSON(raw),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	if err := e.store.SaveVault(ctx, vault); err != nil {
		return nil, err
	}
	return vault, nil
}

// readAddress performs an address-returning read and normalizes its result
func (e *engine) readAddress(
	ctx context.Context,
	contract, method string,
	read func(context.Context, string) (string, error),
) (string, error) {
	value, err := read(ctx, contract)
	if err != nil {
		return "", err
	}

	addr, err := domain.NormalizeAddress(value)
	if err != nil {
		return "", &domain.ContractReadError{Address: contract, Method: method, Err: err}
	}
	return addr, nil
}
