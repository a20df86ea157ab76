package wire

import (
	"restaurant-booking/internal/adaptor"
	"restaurant-booking/internal/data/repository"
	"restaurant-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)

	// ==================== SESSION ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(requireAuth(repo, config, log))

		r.Get("/api/me", authHandler.Me)
		r.Post("/api/logout", authHandler.Logout)
	})
}
