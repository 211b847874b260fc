package schema

import "time"

// Manager represents the managers table - the manager contract referenced by a factory
type Manager struct {
	ID      string `gorm:"column:id;primaryKey;type:text"`
	Address string `gorm:"column:address;not null;type:text"`
	// Owner is read from owner() on first sight and never refreshed
	Owner     string    `gorm:"column:owner;not null;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;type:timestamptz;autoUpdateTime:false"`
}

// TableName specifies the table name for the Manager model
func (Manager) TableName() string {
	return "managers"
}
