package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/bolao"
)

type UserStore struct {
	db *sqlx.DB
}

const (
	getProfileQuery           = "SELECT * FROM profiles WHERE id = ?"
	getProfileByProviderQuery = `
        SELECT * FROM profiles
        WHERE provider = ?
        AND provider_id = ?
    `
	getProfileByNicknameQuery = "SELECT * FROM profiles WHERE nickname = ?"
	listProfilesQuery         = "SELECT * FROM profiles ORDER BY created_at ASC"
	createProfileQuery        = `
		INSERT INTO profiles (id, nome, nickname, email, avatar_url, provider, provider_id) VALUES
		(:id, :nome, :nickname, :email, :avatar_url, :provider, :provider_id)
	`
	updateNomeAvatarQuery = `
		UPDATE profiles SET
		nome = :nome,
		avatar_url = :avatar_url,
		updated_at = CURRENT_TIMESTAMP
		WHERE id = :id
	`
	updateNicknameQuery = `
		UPDATE profiles SET
		nickname = :nickname,
		updated_at = CURRENT_TIMESTAMP
		WHERE id = :id
	`
	getRoleQuery = "SELECT role FROM user_roles WHERE user_id = ?"
	setRoleQuery = `
		INSERT INTO user_roles (id, user_id, role) VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET role = excluded.role
	`
)

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetProfile(ctx context.Context, id uuid.UUID) (*bolao.Profile, error) {
	var profile bolao.Profile
	err := s.db.GetContext(ctx, &profile, getProfileQuery, id)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *UserStore) GetProfileByProvider(ctx context.Context, provider string, providerID string) (*bolao.Profile, error) {
	var profile bolao.Profile
	err := s.db.GetContext(ctx, &profile, getProfileByProviderQuery, provider, providerID)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *UserStore) GetProfileByNickname(ctx context.Context, nickname string) (*bolao.Profile, error) {
	var profile bolao.Profile
	err := s.db.GetContext(ctx, &profile, getProfileByNicknameQuery, nickname)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *UserStore) ListProfiles(ctx context.Context) ([]bolao.Profile, error) {
	var profiles []bolao.Profile
	err := s.db.SelectContext(ctx, &profiles, listProfilesQuery)
	return profiles, err
}

func (s *UserStore) CreateProfile(ctx context.Context, profile *bolao.Profile) error {
	_, err := s.db.NamedExecContext(ctx, createProfileQuery, profile)
	return err
}

func (s *UserStore) UpdateNomeEAvatar(ctx context.Context, profile *bolao.Profile) error {
	_, err := s.db.NamedExecContext(ctx, updateNomeAvatarQuery, profile)
	return err
}

func (s *UserStore) UpdateNickname(ctx context.Context, profile *bolao.Profile) error {
	_, err := s.db.NamedExecContext(ctx, updateNicknameQuery, profile)
	return err
}

// GetRole returns the stored role for a user, defaulting to the plain user
// role when no row exists.
func (s *UserStore) GetRole(ctx context.Context, userID uuid.UUID) (bolao.Role, error) {
	var role bolao.Role
	err := s.db.GetContext(ctx, &role, getRoleQuery, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return bolao.RoleUser, nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

func (s *UserStore) SetRole(ctx context.Context, userID uuid.UUID, role bolao.Role) error {
	_, err := s.db.ExecContext(ctx, setRoleQuery, uuid.New(), userID, role)
	return err
}
