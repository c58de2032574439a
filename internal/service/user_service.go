package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/markbates/goth"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/bolao"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/store"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/utils"
)

var (
	ErrNicknameEmUso    = errors.New("nickname já está em uso")
	ErrNicknameInvalido = errors.New("nickname deve ter entre 3 e 30 caracteres")
)

type UserService struct {
	db    *sqlx.DB
	store *store.UserStore
}

func NewUserService(db *sqlx.DB, store *store.UserStore) *UserService {
	return &UserService{db: db, store: store}
}

func (s *UserService) FindOrCreateByProvider(ctx context.Context, gothUser goth.User) (*bolao.Profile, error) {
	profile, err := s.store.GetProfileByProvider(ctx, gothUser.Provider, gothUser.UserID)

	if err == nil {
		if utils.OrZero(profile.AvatarURL) != gothUser.AvatarURL || profile.Nome != gothUser.Name {
			profile.Nome = gothUser.Name
			profile.AvatarURL = utils.StringOrNil(gothUser.AvatarURL)
			s.store.UpdateNomeEAvatar(ctx, profile)
		}
		return profile, nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		nickname, err := s.nicknameDisponivel(ctx, gothUser)
		if err != nil {
			return nil, err
		}

		newProfile := &bolao.Profile{
			ID:         uuid.New(),
			Nome:       gothUser.Name,
			Nickname:   nickname,
			Email:      utils.StringOrNil(gothUser.Email),
			AvatarURL:  utils.StringOrNil(gothUser.AvatarURL),
			Provider:   &gothUser.Provider,
			ProviderID: &gothUser.UserID,
		}
		if err := s.store.CreateProfile(ctx, newProfile); err != nil {
			return nil, err
		}
		return newProfile, nil
	}

	return nil, err
}

// nicknameDisponivel derives a unique handle from the provider identity,
// suffixing a counter when the obvious candidate is taken.
func (s *UserService) nicknameDisponivel(ctx context.Context, gothUser goth.User) (string, error) {
	base := strings.TrimSpace(gothUser.NickName)
	if base == "" {
		base, _, _ = strings.Cut(gothUser.Email, "@")
	}
	if base == "" {
		base = "palpiteiro"
	}

	candidato := base
	for i := 2; ; i++ {
		_, err := s.store.GetProfileByNickname(ctx, candidato)
		if errors.Is(err, sql.ErrNoRows) {
			return candidato, nil
		}
		if err != nil {
			return "", err
		}
		candidato = fmt.Sprintf("%s%d", base, i)
	}
}

func (s *UserService) AtualizarNickname(ctx context.Context, userID uuid.UUID, nickname string) (*bolao.Profile, error) {
	nickname = strings.TrimSpace(nickname)
	if len(nickname) < 3 || len(nickname) > 30 {
		return nil, ErrNicknameInvalido
	}

	existente, err := s.store.GetProfileByNickname(ctx, nickname)
	if err == nil && existente.ID != userID {
		return nil, ErrNicknameEmUso
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Nickname = nickname
	if err := s.store.UpdateNickname(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *UserService) EnsureGuestUser(ctx context.Context) (*bolao.Profile, error) {
	guestID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	profile, err := s.store.GetProfile(ctx, guestID)
	if err == nil {
		return profile, nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		guest := &bolao.Profile{
			ID:       guestID,
			Nome:     "Visitante",
			Nickname: "visitante",
		}
		if err := s.store.CreateProfile(ctx, guest); err != nil {
			return nil, err
		}
		return guest, nil
	}
	return nil, err
}
