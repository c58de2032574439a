package bolao

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type Profile struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Nome       string    `db:"nome" json:"nome"`
	Nickname   string    `db:"nickname" json:"nickname"`
	Email      *string   `db:"email" json:"email,omitempty"`
	AvatarURL  *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	Provider   *string   `db:"provider" json:"-"`
	ProviderID *string   `db:"provider_id" json:"-"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type UserRole struct {
	ID     uuid.UUID `db:"id"`
	UserID uuid.UUID `db:"user_id"`
	Role   Role      `db:"role"`
}
