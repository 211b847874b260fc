package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/vault-indexer/internal/domain"
)

// Vault represents the vaults table - a vault instance created by a factory
type Vault struct {
	// ID is the canonical lowercase vault address
	ID      string `gorm:"column:id;primaryKey;type:text"`
	Address string `gorm:"column:address;not null;type:text"`
	Name    string `gorm:"column:name;not null;type:text"`
	Symbol  string `gorm:"column:symbol;not null;type:text"`
	// Fee is the raw uint256 from the event, as a decimal string
	Fee      string `gorm:"column:fee;not null;type:numeric(78,0)"`
	IsActive bool   `gorm:"column:is_active;not null"`
	// TotalAssets and TotalSupply start at zero and are maintained by the per-vault pipeline
	TotalAssets string `gorm:"column:total_assets;not null;type:numeric(78,0)"`
	TotalSupply string `gorm:"column:total_supply;not null;type:numeric(78,0)"`
	FactoryID   string `gorm:"column:factory_id;not null;type:text;index"`
	ManagerID   string `gorm:"column:manager_id;not null;type:text;index"`
	AssetID     string `gorm:"column:asset_id;not null;type:text;index"`

	// Provenance of the creating event
	Chain       domain.Chain   `gorm:"column:chain;not null;type:text"`
	TxHash      string         `gorm:"column:tx_hash;not null;type:text"`
	BlockNumber uint64         `gorm:"column:block_number;not null"`
	LogIndex    uint64         `gorm:"column:log_index;not null"`
	Raw         datatypes.JSON `gorm:"column:raw;type:jsonb"`

	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;type:timestamptz;autoUpdateTime:false"`
}

// TableName specifies the table name for the Vault model
func (Vault) TableName() string {
	return "vaults"
}
