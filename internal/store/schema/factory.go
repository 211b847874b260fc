package schema

import "time"

// Factory represents the factories table - a vault factory contract
type Factory struct {
	// ID is the canonical lowercase factory address
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Address is the factory contract address
	Address string `gorm:"column:address;not null;type:text"`
	// VaultImplementationAddress is read from vaultImplementation() on first sight
	VaultImplementationAddress string `gorm:"column:vault_implementation_address;not null;type:text"`
	// ManagerAddress is read from vaultManager() on first sight
	ManagerAddress string `gorm:"column:manager_address;not null;type:text"`
	// CreatedAt is the timestamp of the block that first referenced the factory
	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz;autoCreateTime:false"`
	// UpdatedAt equals CreatedAt; factories are never updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;type:timestamptz;autoUpdateTime:false"`
}

// TableName specifies the table name for the Factory model
func (Factory) TableName() string {
	return "factories"
}
