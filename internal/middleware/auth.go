package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/markbates/goth"
	"github.com/markbates/goth/providers/discord"
	"github.com/markbates/goth/providers/google"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/bolao"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/config"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/httputil"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/store"
)

type ContextKey string

const (
	UserIDKey  ContextKey = "userID"
	ProfileKey ContextKey = "profile"
	RoleKey    ContextKey = "role"
)

func InitAuth(cfg *config.Config) {
	goth.UseProviders(
		discord.New(cfg.DiscordKey, cfg.DiscordSecret, cfg.DiscordCallbackURL, discord.ScopeIdentify, discord.ScopeEmail),
		google.New(cfg.GoogleKey, cfg.GoogleSecret, cfg.GoogleCallbackURL, "email", "profile"),
	)
}

// RequireAuth resolves the session user and loads their profile and role into
// the request context. The core never reads session state itself; everything
// downstream works off these explicit context values.
func RequireAuth(sessionManager *scs.SessionManager, userStore *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr := sessionManager.GetString(r.Context(), "userID")
			if userIDStr == "" {
				http.Error(w, "não autenticado", http.StatusUnauthorized)
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				sessionManager.Remove(r.Context(), "userID")
				http.Error(w, "não autenticado", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)

			if profile, err := userStore.GetProfile(ctx, userID); err == nil {
				ctx = context.WithValue(ctx, ProfileKey, profile)
			}
			if role, err := userStore.GetRole(ctx, userID); err == nil {
				ctx = context.WithValue(ctx, RoleKey, role)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates admin-only routes on the role loaded by RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetRoleFromContext(r.Context()) != bolao.RoleAdmin {
			httputil.Forbidden(w, "acesso restrito a administradores")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	val := ctx.Value(UserIDKey)
	if val == nil {
		return uuid.Nil, false
	}

	id, ok := val.(uuid.UUID)
	return id, ok
}

func GetAuthenticatedProfile(ctx context.Context) *bolao.Profile {
	val := ctx.Value(ProfileKey)
	if val == nil {
		return nil
	}
	profile, ok := val.(*bolao.Profile)
	if !ok {
		return nil
	}
	return profile
}

func GetRoleFromContext(ctx context.Context) bolao.Role {
	val := ctx.Value(RoleKey)
	if val == nil {
		return bolao.RoleUser
	}
	role, ok := val.(bolao.Role)
	if !ok {
		return bolao.RoleUser
	}
	return role
}
