package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/feral-file/vault-indexer/internal/domain"
)

// VaultSubscription represents the vault_subscriptions table - the append-only set of
// addresses registered with a follow-on pipeline
type VaultSubscription struct {
	ID           uuid.UUID           `gorm:"column:id;primaryKey;type:uuid"`
	PipelineKind domain.PipelineKind `gorm:"column:pipeline_kind;not null;type:text;uniqueIndex:idx_vault_subscriptions_kind_address"`
	Address      string              `gorm:"column:address;not null;type:text;uniqueIndex:idx_vault_subscriptions_kind_address"`
	CreatedAt    time.Time           `gorm:"column:created_at;not null;type:timestamptz;autoCreateTime:false"`
	// Seq is assigned by the database on insert and orders subscriptions by registration
	Seq int64 `gorm:"column:seq;->"`
}

// TableName specifies the table name for the VaultSubscription model
func (VaultSubscription) TableName() string {
	return "vault_subscriptions"
}
