package domain

import "time"

// User is an account provisioned on first sign-in through the OAuth
// provider. The ID is the provider-issued subject and is treated as an
// opaque string. The core never mutates or deletes users.
type User struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:200"`
	AvatarURL string `gorm:"size:500"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Todos     []Todo `gorm:"constraint:OnDelete:CASCADE"`
}

// Todo is a single todo item with exactly one owner. There is no
// DeletedAt column: deletes are permanent, no tombstones.
type Todo struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:64;index;not null" json:"user_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"size:2000" json:"description"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SortOrder selects the creation-time ordering for list queries.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortOrder maps a request value to a SortOrder. The empty string
// defaults to newest-first.
func ParseSortOrder(s string) (SortOrder, error) {
	switch s {
	case "", string(OrderDesc):
		return OrderDesc, nil
	case string(OrderAsc):
		return OrderAsc, nil
	}
	return "", NewValidationError("order must be \"asc\" or \"desc\"")
}
