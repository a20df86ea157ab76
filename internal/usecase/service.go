package usecase

import (
	"restaurant-booking/internal/data/repository"
	"restaurant-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	Restaurant RestaurantService
	Booking    BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:       NewAuthService(repo, config, log),
		Restaurant: NewRestaurantService(repo, log),
		Booking:    NewBookingService(repo, config, log),
	}
}
