package wire

import (
	"restaurant-booking/internal/adaptor"
	"restaurant-booking/internal/data/repository"
	"restaurant-booking/pkg/middleware"
	"restaurant-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRestaurant(
	r chi.Router,
	restaurantHandler *adaptor.RestaurantHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/home", restaurantHandler.GetHome)
	r.Get("/api/time-slots", restaurantHandler.GetTimeSlots)
	r.Get("/api/restaurants", restaurantHandler.GetRestaurants)
	r.Get("/api/restaurants/{slug}", restaurantHandler.GetRestaurant)
	r.Get("/api/restaurants/{slug}/availability", restaurantHandler.GetAvailability)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/restaurants", func(r chi.Router) {
		r.Use(requireAuth(repo, config, log))
		r.Use(middleware.Admin(log))

		r.Get("/", restaurantHandler.GetAllRestaurants)
		r.Post("/", restaurantHandler.CreateRestaurant)
		r.Put("/{slug}", restaurantHandler.UpdateRestaurant)
	})
}
