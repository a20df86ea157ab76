package wire

import (
	"restaurant-booking/internal/adaptor"
	"restaurant-booking/internal/data/repository"
	"restaurant-booking/pkg/middleware"
	"restaurant-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(requireAuth(repo, config, log))

		r.Post("/api/restaurants/{slug}/bookings", bookingHandler.CreateBooking)

		// the list completes past bookings before reading
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
		r.Get("/api/user/bookings/{id}", bookingHandler.GetUserBooking)
		r.Patch("/api/user/bookings/{id}", bookingHandler.EditBooking)
		r.Post("/api/user/bookings/{id}/cancel", bookingHandler.CancelBooking)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(requireAuth(repo, config, log))
		r.Use(middleware.Admin(log))

		r.Get("/", bookingHandler.GetAllBookings)
	})
}
