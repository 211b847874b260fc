package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/vault-indexer/internal/domain"
	"github.com/feral-file/vault-indexer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero settings fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// MaxIdleConns must not exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// first loads a single record by primary key, returning nil if it does not exist
func first[T any](ctx context.Context, db *gorm.DB, id string) (*T, error) {
	var record T
	err := db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// upsert inserts a record or overwrites every column of the existing row
func upsert(ctx context.Context, db *gorm.DB, record any) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(record).Error
}

// GetFactory retrieves a factory by its canonical address
func (s *pgStore) GetFactory(ctx context.Context, id string) (*schema.Factory, error) {
	factory, err := first[schema.Factory](ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get factory: %w", err)
	}
	return factory, nil
}

// SaveFactory upserts a factory
func (s *pgStore) SaveFactory(ctx context.Context, factory *schema.Factory) error {
	if err := upsert(ctx, s.db, factory); err != nil {
		return fmt.Errorf("failed to save factory: %w", err)
	}
	return nil
}

// GetAsset retrieves an asset by its canonical address
func (s *pgStore) GetAsset(ctx context.Context, id string) (*schema.Asset, error) {
	asset, err := first[schema.Asset](ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return asset, nil
}

// SaveAsset upserts an asset
func (s *pgStore) SaveAsset(ctx context.Context, asset *schema.Asset) error {
	if err := upsert(ctx, s.db, asset); err != nil {
		return fmt.Errorf("failed to save asset: %w", err)
	}
	return nil
}

// GetManager retrieves a manager by its canonical address
func (s *pgStore) GetManager(ctx context.Context, id string) (*schema.Manager, error) {
	manager, err := first[schema.Manager](ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get manager: %w", err)
	}
	return manager, nil
}

// SaveManager upserts a manager
func (s *pgStore) SaveManager(ctx context.Context, manager *schema.Manager) error {
	if err := upsert(ctx, s.db, manager); err != nil {
		return fmt.Errorf("failed to save manager: %w", err)
	}
	return nil
}

// GetVault retrieves a vault by its canonical address
func (s *pgStore) GetVault(ctx context.Context, id string) (*schema.Vault, error) {
	vault, err := first[schema.Vault](ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get vault: %w", err)
	}
	return vault, nil
}

// SaveVault upserts a vault
func (s *pgStore) SaveVault(ctx context.Context, vault *schema.Vault) error {
	if err := upsert(ctx, s.db, vault); err != nil {
		return fmt.Errorf("failed to save vault: %w", err)
	}
	return nil
}

// CountVaults returns the number of persisted vaults
func (s *pgStore) CountVaults(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&schema.Vault{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count vaults: %w", err)
	}
	return count, nil
}

// CreateVaultSubscription inserts a subscription unless (pipeline kind, address) already exists
func (s *pgStore) CreateVaultSubscription(ctx context.Context, sub *schema.VaultSubscription) (bool, error) {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pipeline_kind"}, {Name: "address"}},
			DoNothing: true,
		}).
		Create(sub)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create vault subscription: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// GetVaultSubscription retrieves the subscription of an address for a pipeline kind
func (s *pgStore) GetVaultSubscription(ctx context.Context, kind domain.PipelineKind, address string) (*schema.VaultSubscription, error) {
	var sub schema.VaultSubscription
	err := s.db.WithContext(ctx).
		Where("pipeline_kind = ? AND address = ?", kind, address).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vault subscription: %w", err)
	}
	return &sub, nil
}

// ListVaultSubscriptions lists the subscriptions of a pipeline kind in insertion order
func (s *pgStore) ListVaultSubscriptions(ctx context.Context, kind domain.PipelineKind) ([]schema.VaultSubscription, error) {
	var subs []schema.VaultSubscription
	err := s.db.WithContext(ctx).
		Where("pipeline_kind = ?", kind).
		Order("seq ASC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vault subscriptions: %w", err)
	}
	return subs, nil
}

// GetEventCursor retrieves the position of the last processed event for a chain
func (s *pgStore) GetEventCursor(ctx context.Context, chain domain.Chain) (*domain.EventPosition, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", eventCursorKey(chain)).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event cursor: %w", err)
	}

	position, err := domain.ParseEventPosition(kv.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse event cursor: %w", err)
	}

	return &position, nil
}

// SetEventCursor stores the position of the last processed event for a chain
func (s *pgStore) SetEventCursor(ctx context.Context, chain domain.Chain, position domain.EventPosition) error {
	kv := schema.KeyValueStore{
		Key:   eventCursorKey(chain),
		Value: position.String(),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set event cursor: %w", err)
	}

	return nil
}

// Ping checks that the database is reachable
func (s *pgStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
