package repository

import (
	"restaurant-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Session    SessionRepository
	Restaurant RestaurantRepository
	Booking    BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Session:    NewSessionRepository(db, log),
		Restaurant: NewRestaurantRepository(db, log),
		Booking:    NewBookingRepository(db, log),
	}
}
