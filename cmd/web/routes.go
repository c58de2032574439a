package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/markbates/goth/gothic"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/bolao"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/config"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/httputil"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/middleware"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/presenter"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/service"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/store"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/utils"
)

func newRouter(cfg *config.Config, dbConn *sqlx.DB, sessionManager *scs.SessionManager) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(sessionManager.LoadAndSave)

	userStore := store.NewUserStore(dbConn)
	jogoStore := store.NewJogoStore(dbConn)
	palpiteStore := store.NewPalpiteStore(dbConn)

	r.Get("/auth/{provider}", func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		r = r.WithContext(context.WithValue(r.Context(), "provider", provider))

		gothic.BeginAuthHandler(w, r)
	})

	r.Get("/auth/{provider}/callback", func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		r = r.WithContext(context.WithValue(r.Context(), "provider", provider))

		gothUser, err := gothic.CompleteUserAuth(w, r)
		if err != nil {
			httputil.BadRequest(w, "Authentication failure", err)
			return
		}

		userService := service.NewUserService(dbConn, userStore)
		profile, err := userService.FindOrCreateByProvider(r.Context(), gothUser)
		if err != nil {
			httputil.InternalServerError(w, "Failed to find or create user", err)
			return
		}

		sessionManager.Put(r.Context(), "userID", profile.ID.String())

		http.Redirect(w, r, "/", http.StatusFound)
	})

	r.Get("/login", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"providers": []string{"google", "discord"},
			"guest":     "/auth/guest",
		})
	})

	r.Post("/auth/guest", func(w http.ResponseWriter, r *http.Request) {
		userService := service.NewUserService(dbConn, userStore)

		profile, err := userService.EnsureGuestUser(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to login as guest", err)
			return
		}

		sessionManager.Put(r.Context(), "userID", profile.ID.String())
		http.Redirect(w, r, "/", http.StatusFound)
	})

	r.Post("/logout", func(w http.ResponseWriter, r *http.Request) {
		sessionManager.Destroy(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(sessionManager, userStore))

		r.Get("/api/me", func(w http.ResponseWriter, r *http.Request) {
			profile := middleware.GetAuthenticatedProfile(r.Context())
			if profile == nil {
				httputil.NotFound(w, "Perfil não encontrado", nil)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, map[string]any{
				"perfil": profile,
				"role":   middleware.GetRoleFromContext(r.Context()),
			})
		})

		r.Put("/api/me", func(w http.ResponseWriter, r *http.Request) {
			userID, _ := middleware.GetUserIDFromContext(r.Context())

			var body struct {
				Nickname string `json:"nickname"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				httputil.BadRequest(w, "Corpo inválido", err)
				return
			}

			userService := service.NewUserService(dbConn, userStore)
			profile, err := userService.AtualizarNickname(r.Context(), userID, body.Nickname)
			if err != nil {
				if errors.Is(err, service.ErrNicknameEmUso) || errors.Is(err, service.ErrNicknameInvalido) {
					httputil.UnprocessableEntity(w, err.Error(), err)
					return
				}
				httputil.InternalServerError(w, "Failed to update nickname", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, profile)
		})

		r.Get("/api/rodadas", func(w http.ResponseWriter, r *http.Request) {
			rodadaService := service.NewRodadaService(dbConn, jogoStore, palpiteStore)
			rodadas, err := rodadaService.ListRodadas(r.Context())
			if err != nil {
				httputil.InternalServerError(w, "Failed to list rodadas", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, rodadas)
		})

		r.Get("/api/rodadas/atual", func(w http.ResponseWriter, r *http.Request) {
			rodadaService := service.NewRodadaService(dbConn, jogoStore, palpiteStore)
			rodada, err := rodadaService.RodadaAtual(r.Context())
			if err != nil {
				httputil.InternalServerError(w, "Failed to get rodada atual", err)
				return
			}
			if rodada == nil {
				httputil.NotFound(w, "Nenhuma rodada aberta", nil)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, rodada)
		})

		r.Get("/api/rodadas/{id}/jogos", func(w http.ResponseWriter, r *http.Request) {
			rodadaID, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "ID de rodada inválido", err)
				return
			}
			rodadaService := service.NewRodadaService(dbConn, jogoStore, palpiteStore)
			jogos, err := rodadaService.JogosDaRodada(r.Context(), rodadaID)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list jogos", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, jogos)
		})

		r.Get("/api/jogos/proximos", func(w http.ResponseWriter, r *http.Request) {
			limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
			rodadaService := service.NewRodadaService(dbConn, jogoStore, palpiteStore)
			jogos, err := rodadaService.ProximosJogos(r.Context(), limit)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list próximos jogos", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, jogos)
		})

		r.Get("/api/jogos/{id}/palpites", func(w http.ResponseWriter, r *http.Request) {
			jogoID, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "ID de jogo inválido", err)
				return
			}
			palpiteService := service.NewPalpiteService(dbConn, palpiteStore, jogoStore, userStore, cfg.PalpiteCutoff)
			palpites, err := palpiteService.PalpitesDoJogo(r.Context(), jogoID)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list palpites do jogo", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, palpites)
		})

		r.Get("/api/palpites/meus", func(w http.ResponseWriter, r *http.Request) {
			userID, _ := middleware.GetUserIDFromContext(r.Context())

			var rodadaID *uuid.UUID
			if raw := r.URL.Query().Get("rodada_id"); raw != "" {
				id, err := uuid.Parse(raw)
				if err != nil {
					httputil.BadRequest(w, "rodada_id inválido", err)
					return
				}
				rodadaID = &id
			}

			palpiteService := service.NewPalpiteService(dbConn, palpiteStore, jogoStore, userStore, cfg.PalpiteCutoff)
			palpites, err := palpiteService.MeusPalpites(r.Context(), userID, rodadaID)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list meus palpites", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, palpites)
		})

		r.Post("/api/palpites", func(w http.ResponseWriter, r *http.Request) {
			userID, _ := middleware.GetUserIDFromContext(r.Context())

			var body struct {
				JogoID           uuid.UUID `json:"jogo_id"`
				PalpiteCasa      int       `json:"palpite_casa"`
				PalpiteVisitante int       `json:"palpite_visitante"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				httputil.BadRequest(w, "Corpo inválido", err)
				return
			}

			palpiteService := service.NewPalpiteService(dbConn, palpiteStore, jogoStore, userStore, cfg.PalpiteCutoff)
			palpite, err := palpiteService.SubmeterPalpite(r.Context(), bolao.PalpiteSubmission{
				UsuarioID:        userID,
				JogoID:           body.JogoID,
				PalpiteCasa:      body.PalpiteCasa,
				PalpiteVisitante: body.PalpiteVisitante,
			})
			if err != nil {
				status, msg := presenter.ErroParaResposta(err)
				if status == http.StatusInternalServerError {
					httputil.InternalServerError(w, "Failed to save palpite", err)
					return
				}
				httputil.WriteJSON(w, status, map[string]string{"erro": msg})
				return
			}
			httputil.WriteJSON(w, http.StatusOK, palpite)
		})

		r.Post("/api/palpites/lote", func(w http.ResponseWriter, r *http.Request) {
			userID, _ := middleware.GetUserIDFromContext(r.Context())

			var body struct {
				Palpites []struct {
					JogoID           uuid.UUID `json:"jogo_id"`
					PalpiteCasa      int       `json:"palpite_casa"`
					PalpiteVisitante int       `json:"palpite_visitante"`
				} `json:"palpites"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				httputil.BadRequest(w, "Corpo inválido", err)
				return
			}

			itens := make([]service.LoteItem, 0, len(body.Palpites))
			for _, p := range body.Palpites {
				itens = append(itens, service.LoteItem{
					JogoID:           p.JogoID,
					PalpiteCasa:      p.PalpiteCasa,
					PalpiteVisitante: p.PalpiteVisitante,
				})
			}

			palpiteService := service.NewPalpiteService(dbConn, palpiteStore, jogoStore, userStore, cfg.PalpiteCutoff)
			salvos, err := palpiteService.SubmeterLote(r.Context(), userID, itens)

			var parcial *bolao.PartialBatchWriteError
			if errors.As(err, &parcial) {
				httputil.WriteJSON(w, http.StatusMultiStatus, map[string]any{
					"salvos": salvos,
					"falhas": presenter.FormatFalhasLote(parcial),
				})
				return
			}
			if err != nil {
				httputil.InternalServerError(w, "Failed to save palpites", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, map[string]any{"salvos": salvos})
		})

		r.Get("/api/ranking", func(w http.ResponseWriter, r *http.Request) {
			var rodadaID *uuid.UUID
			if raw := r.URL.Query().Get("rodada_id"); raw != "" {
				id, err := uuid.Parse(raw)
				if err != nil {
					httputil.BadRequest(w, "rodada_id inválido", err)
					return
				}
				rodadaID = &id
			}

			rankingService := service.NewRankingService(dbConn, userStore, palpiteStore, jogoStore)

			var entries []bolao.RankingEntry
			var err error
			if limit, _ := strconv.Atoi(r.URL.Query().Get("limit")); limit > 0 && rodadaID == nil {
				entries, err = rankingService.Top(r.Context(), limit)
			} else {
				entries, err = rankingService.Ranking(r.Context(), rodadaID)
			}
			if err != nil {
				httputil.InternalServerError(w, "Failed to compute ranking", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, presenter.FormatRanking(entries))
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(sessionManager, userStore))
		r.Use(middleware.RequireAdmin)

		r.Post("/api/admin/rodadas", func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				Numero     int        `json:"numero"`
				DataInicio *time.Time `json:"data_inicio"`
				DataFim    *time.Time `json:"data_fim"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				httputil.BadRequest(w, "Corpo inválido", err)
				return
			}
			if body.Numero <= 0 {
				httputil.BadRequest(w, "Número da rodada deve ser positivo", nil)
				return
			}

			rodadaService := service.NewRodadaService(dbConn, jogoStore, palpiteStore)
			rodada, err := rodadaService.CriarRodada(r.Context(), body.Numero, body.DataInicio, body.DataFim)
			if err != nil {
				httputil.InternalServerError(w, "Failed to create rodada", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, rodada)
		})

		r.Post("/api/admin/jogos", func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				RodadaID      uuid.UUID `json:"rodada_id"`
				TimeCasa      string    `json:"time_casa"`
				TimeVisitante string    `json:"time_visitante"`
				DataJogo      time.Time `json:"data_jogo"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				httputil.BadRequest(w, "Corpo inválido", err)
				return
			}

			rodadaService := service.NewRodadaService(dbConn, jogoStore, palpiteStore)
			jogo, err := rodadaService.CriarJogo(r.Context(), service.JogoInput{
				RodadaID:      body.RodadaID,
				TimeCasa:      body.TimeCasa,
				TimeVisitante: body.TimeVisitante,
				DataJogo:      body.DataJogo,
			})
			if err != nil {
				if errors.Is(err, service.ErrJogoSemTimes) {
					httputil.BadRequest(w, err.Error(), err)
					return
				}
				httputil.InternalServerError(w, "Failed to create jogo", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, jogo)
		})

		r.Put("/api/admin/jogos/{id}", func(w http.ResponseWriter, r *http.Request) {
			jogoID, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "ID de jogo inválido", err)
				return
			}

			var body struct {
				RodadaID      uuid.UUID `json:"rodada_id"`
				TimeCasa      string    `json:"time_casa"`
				TimeVisitante string    `json:"time_visitante"`
				DataJogo      time.Time `json:"data_jogo"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				httputil.BadRequest(w, "Corpo inválido", err)
				return
			}

			rodadaService := service.NewRodadaService(dbConn, jogoStore, palpiteStore)
			jogo, err := rodadaService.AtualizarJogo(r.Context(), jogoID, service.JogoInput{
				RodadaID:      body.RodadaID,
				TimeCasa:      body.TimeCasa,
				TimeVisitante: body.TimeVisitante,
				DataJogo:      body.DataJogo,
			})
			if err != nil {
				status, msg := presenter.ErroParaResposta(err)
				if status == http.StatusInternalServerError {
					httputil.InternalServerError(w, "Failed to update jogo", err)
					return
				}
				httputil.WriteJSON(w, status, map[string]string{"erro": msg})
				return
			}
			httputil.WriteJSON(w, http.StatusOK, jogo)
		})

		r.Put("/api/admin/jogos/{id}/resultado", func(w http.ResponseWriter, r *http.Request) {
			jogoID, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "ID de jogo inválido", err)
				return
			}

			var body struct {
				PlacarCasa      *int `json:"placar_casa"`
				PlacarVisitante *int `json:"placar_visitante"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				httputil.BadRequest(w, "Corpo inválido", err)
				return
			}
			if body.PlacarCasa == nil || body.PlacarVisitante == nil {
				httputil.BadRequest(w, "Placar incompleto", nil)
				return
			}

			rodadaService := service.NewRodadaService(dbConn, jogoStore, palpiteStore)
			jogo, err := rodadaService.InserirResultado(r.Context(), jogoID, utils.OrZero(body.PlacarCasa), utils.OrZero(body.PlacarVisitante))
			if err != nil {
				status, msg := presenter.ErroParaResposta(err)
				if status == http.StatusInternalServerError {
					httputil.InternalServerError(w, "Failed to save resultado", err)
					return
				}
				httputil.WriteJSON(w, status, map[string]string{"erro": msg})
				return
			}
			httputil.WriteJSON(w, http.StatusOK, jogo)
		})
	})

	return r
}
