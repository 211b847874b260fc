package schema

import "time"

// Asset represents the assets table - the ERC-20 token a vault accepts
type Asset struct {
	ID       string `gorm:"column:id;primaryKey;type:text"`
	Address  string `gorm:"column:address;not null;type:text"`
	Symbol   string `gorm:"column:symbol;not null;type:text"`
	Name     string `gorm:"column:name;not null;type:text"`
	Decimals uint8  `gorm:"column:decimals;not null;type:smallint"`
	// CreatedAt is the timestamp of the block that first referenced the asset
	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz;autoCreateTime:false"`
}

// TableName specifies the table name for the Asset model
func (Asset) TableName() string {
	return "assets"
}
