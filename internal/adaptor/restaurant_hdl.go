package adaptor

import (
	"net/http"

	"restaurant-booking/internal/dto/request"
	"restaurant-booking/internal/usecase"
	"restaurant-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RestaurantHandler struct {
	service  usecase.RestaurantService
	bookings usecase.BookingService
	log      *zap.Logger
}

func NewRestaurantHandler(service usecase.RestaurantService, bookings usecase.BookingService, log *zap.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		service:  service,
		bookings: bookings,
		log:      log.With(zap.String("handler", "restaurant")),
	}
}

// GetRestaurants handles GET /api/restaurants (public)
func (h *RestaurantHandler) GetRestaurants(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.RestaurantFilterRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		City: query.Get("city"),
	}

	restaurants, err := h.service.GetRestaurants(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get restaurants")
		return
	}

	utils.ResponseSuccess(w, "success", restaurants)
}

// GetRestaurant handles GET /api/restaurants/{slug} (public)
func (h *RestaurantHandler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	restaurant, err := h.service.GetRestaurantBySlug(r.Context(), slug)
	if err != nil {
		handleServiceError(w, h.log, err, "get restaurant")
		return
	}

	utils.ResponseSuccess(w, "success", restaurant)
}

// GetHome handles GET /api/home (public)
func (h *RestaurantHandler) GetHome(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.service.GetHomeRestaurant(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get home restaurant")
		return
	}

	utils.ResponseSuccess(w, "success", restaurant)
}

// GetAvailability handles GET /api/restaurants/{slug}/availability?date= (public)
func (h *RestaurantHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"date": "This field is required"})
		return
	}

	availability, err := h.bookings.GetAvailability(r.Context(), slug, date)
	if err != nil {
		handleServiceError(w, h.log, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// GetTimeSlots handles GET /api/time-slots (public)
func (h *RestaurantHandler) GetTimeSlots(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.GetTimeSlots(r.Context()))
}

// ==================== ADMIN METHODS ====================

// CreateRestaurant handles POST /api/admin/restaurants (admin only)
func (h *RestaurantHandler) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req request.RestaurantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	restaurant, err := h.service.CreateRestaurant(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create restaurant")
		return
	}

	utils.ResponseCreated(w, "Restaurant created", restaurant)
}

// UpdateRestaurant handles PUT /api/admin/restaurants/{slug} (admin only)
func (h *RestaurantHandler) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var req request.RestaurantUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	restaurant, err := h.service.UpdateRestaurant(r.Context(), slug, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update restaurant")
		return
	}

	utils.ResponseSuccess(w, "Restaurant updated", restaurant)
}

// GetAllRestaurants handles GET /api/admin/restaurants (admin only), inactive included
func (h *RestaurantHandler) GetAllRestaurants(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.RestaurantFilterRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		City:            query.Get("city"),
		IncludeInactive: true,
	}

	restaurants, err := h.service.GetRestaurants(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get all restaurants")
		return
	}

	utils.ResponseSuccess(w, "success", restaurants)
}
