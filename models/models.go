package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// User represents an authenticated app user.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Username     string    `bun:"username,unique,notnull"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Role         string    `bun:"role,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Session is used by middleware and auth handlers.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID                string         `bun:"id,pk"`
	UserID            int64          `bun:"user_id,notnull"`
	User              User           `bun:"rel:belongs-to,join:user_id=id"`
	UserRoles         []string       `bun:"-"`
	ScreenPermissions map[string]int `bun:"-"`
	ExpiresAt         time.Time      `bun:"expires_at,notnull"`
	CreatedAt         time.Time      `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt         time.Time      `bun:"updated_at,notnull,default:current_timestamp"`
}

// Expired returns true when the session expiry time has passed.
func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// HasRole reports whether the session user carries role.
func (s Session) HasRole(role string) bool {
	for _, r := range s.UserRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Product is the item master. Lot-and-expiry controlled products must be
// received with both a lot number and an expiry date.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:pd"`

	ID                  int64     `bun:"id,pk,autoincrement"`
	Code                string    `bun:"code,notnull,unique"`
	Name                string    `bun:"name,notnull"`
	LotAndExpiryControl bool      `bun:"lot_and_expiry_control,notnull,default:false"`
	CreatedAt           time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt           time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// InventoryItem is the system-wide lot record shared by every depot.
type InventoryItem struct {
	bun.BaseModel `bun:"table:inventory_items,alias:ii"`

	ID             int64           `bun:"id,pk,autoincrement"`
	ProductID      int64           `bun:"product_id,notnull"`
	LotNumber      string          `bun:"lot_number,notnull,default:''"`
	ExpirationDate *time.Time      `bun:"expiration_date"`
	QuantityOnHand decimal.Decimal `bun:"quantity_on_hand,notnull,default:0"`
	CreatedAt      time.Time       `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt      time.Time       `bun:"updated_at,notnull,default:current_timestamp"`
}

// StockMovement is the shipment/receiving transaction header.
type StockMovement struct {
	bun.BaseModel `bun:"table:stock_movements,alias:sm"`

	ID          int64      `bun:"id,pk,autoincrement"`
	Identifier  string     `bun:"identifier,notnull,unique"`
	Name        string     `bun:"name,notnull"`
	Origin      string     `bun:"origin,notnull"`
	Destination string     `bun:"destination,notnull"`
	Status      string     `bun:"status,notnull"`
	DateShipped *time.Time `bun:"date_shipped"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
}

// ShipmentItem is one shipped line of a stock movement, edited during receiving.
type ShipmentItem struct {
	bun.BaseModel `bun:"table:shipment_items,alias:shi"`

	ID                int64               `bun:"id,pk,autoincrement"`
	StockMovementID   int64               `bun:"stock_movement_id,notnull"`
	ProductID         int64               `bun:"product_id,notnull"`
	BinLocation       string              `bun:"bin_location,notnull,default:''"`
	LotNumber         string              `bun:"lot_number,notnull,default:''"`
	ExpirationDate    *time.Time          `bun:"expiration_date"`
	QuantityShipped   decimal.NullDecimal `bun:"quantity_shipped"`
	QuantityReceiving decimal.NullDecimal `bun:"quantity_receiving"`
	CreatedAt         time.Time           `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt         time.Time           `bun:"updated_at,notnull,default:current_timestamp"`
}

// AppSetting is a key/value pair of session-wide configuration.
type AppSetting struct {
	bun.BaseModel `bun:"table:app_settings,alias:aps"`

	Key       string    `bun:"key,pk"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// AuditLog captures immutable change history for key operations.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UserID     int64     `bun:"user_id,notnull"`
	Action     string    `bun:"action,notnull"`
	EntityType string    `bun:"entity_type,notnull"`
	EntityID   string    `bun:"entity_id,notnull"`
	BeforeJSON string    `bun:"before_json"`
	AfterJSON  string    `bun:"after_json"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
