package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/internal/data/repository"
	"restaurant-booking/internal/dto/request"
	"restaurant-booking/internal/dto/response"
	"restaurant-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Guest endpoints (require auth)
	CreateBooking(ctx context.Context, userID uuid.UUID, slug string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetUserBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error)
	EditBooking(ctx context.Context, userID uuid.UUID, bookingID string, req *request.EditBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error)

	// CompletePastBookings moves the user's confirmed bookings dated before
	// today to completed. GetUserBookings runs it before reading.
	CompletePastBookings(ctx context.Context, userID uuid.UUID) (int64, error)
	CompleteAllPastBookings(ctx context.Context) (int64, error)

	// Public
	GetAvailability(ctx context.Context, slug, date string) (*response.AvailabilityResponse, error)

	// Admin
	GetAllBookings(ctx context.Context, req *request.BookingFilterRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo *repository.Repository
	loc  *time.Location
	now  func() time.Time
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BookingService {
	return newBookingService(repo, config.App.Location(), time.Now, log)
}

func newBookingService(repo *repository.Repository, loc *time.Location, now func() time.Time, log *zap.Logger) *bookingService {
	return &bookingService{
		repo: repo,
		loc:  loc,
		now:  now,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) today() time.Time {
	return todayIn(s.now(), s.loc)
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, slug string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	restaurant, err := s.findActiveRestaurant(ctx, slug)
	if err != nil {
		return nil, err
	}

	// Format errors first, then every admission rule that can still be
	// evaluated, so the caller sees all problems at once.
	errs := utils.ValidateStruct(req)
	if errs == nil {
		errs = make(map[string]string)
	}

	var (
		date      time.Time
		dateValid bool
	)
	if _, bad := errs[fieldBookingDate]; !bad {
		date, err = utils.ParseDate(req.BookingDate)
		if err != nil {
			errs[fieldBookingDate] = "Enter a valid date."
		} else {
			dateValid = true
			if msg := checkBookingDate(date, s.today()); msg != "" {
				errs[fieldBookingDate] = msg
			}
		}
	}

	partyValid := true
	if msg := checkPartySize(req.NumberOfPeople); msg != "" {
		errs[fieldNumberOfPeople] = msg
		partyValid = false
	}

	var slot entity.TimeSlot
	_, slotBad := errs[fieldTimeSlot]
	if !slotBad {
		slot, err = entity.ParseTimeSlot(req.TimeSlot)
		slotBad = err != nil
	}

	// Without a bucket the duplicate and capacity rules cannot run.
	if !dateValid || slotBad {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	now := s.now()
	booking := &entity.Booking{
		Base:            entity.NewBase(now),
		UserID:          userID,
		RestaurantID:    restaurant.ID,
		BookingDate:     date,
		TimeSlot:        slot,
		NumberOfPeople:  req.NumberOfPeople,
		SpecialRequests: req.SpecialRequests,
		Status:          entity.BookingStatusConfirmed,
	}
	bucket := booking.Bucket()

	err = s.repo.Booking.WithinBucket(ctx, bucket, func(tx repository.BookingRepository) error {
		exists, err := tx.HasActiveBooking(ctx, userID, bucket)
		if err != nil {
			return fmt.Errorf("check duplicate booking: %w", err)
		}
		if exists {
			errs[fieldTimeSlot] = msgDuplicateBucket
		}

		if partyValid {
			occupancy, err := tx.SumConfirmedPeople(ctx, bucket, uuid.Nil)
			if err != nil {
				return fmt.Errorf("sum bucket occupancy: %w", err)
			}
			if occupancy+req.NumberOfPeople > restaurant.OnlineCapacity {
				errs[fieldNumberOfPeople] = capacityMessage(req.NumberOfPeople,
					remainingCapacity(restaurant.OnlineCapacity, occupancy))
			}
		}

		if len(errs) > 0 {
			return newValidationError(errs)
		}

		if err := tx.Create(ctx, booking); err != nil {
			if errors.Is(err, repository.ErrDuplicateActiveBooking) {
				return fieldError(fieldTimeSlot, msgDuplicateBucket)
			}
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.log.Warn("Create booking rejected",
				zap.String("user_id", userID.String()),
				zap.String("bucket", bucket.Key()),
				zap.Any("errors", verr.Fields))
			return nil, verr
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("bucket", bucket.Key()))
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("bucket", bucket.Key()),
		zap.Int("number_of_people", booking.NumberOfPeople))

	resp := response.BookingToResponse(booking, restaurant)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	// reconcile, then read
	if _, err := s.CompletePastBookings(ctx, userID); err != nil {
		return nil, err
	}

	filter := repository.BookingFilter{UserID: &userID}
	return s.listBookings(ctx, req, filter)
}

func (s *bookingService) GetUserBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findOwnedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, booking)
}

func (s *bookingService) EditBooking(ctx context.Context, userID uuid.UUID, bookingID string, req *request.EditBookingRequest) (*response.BookingResponse, error) {
	booking, err := s.findOwnedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != entity.BookingStatusConfirmed {
		return nil, fieldError(fieldStatus, msgNotEditable)
	}
	if msg := checkPartySize(req.NumberOfPeople); msg != "" {
		return nil, fieldError(fieldNumberOfPeople, msg)
	}

	restaurant, err := s.repo.Restaurant.FindByID(ctx, booking.RestaurantID)
	if err != nil {
		s.log.Error("Failed to get restaurant for booking",
			zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	if restaurant == nil {
		return nil, fmt.Errorf("restaurant for booking %s: %w", bookingID, ErrNotFound)
	}

	bucket := booking.Bucket()
	err = s.repo.Booking.WithinBucket(ctx, bucket, func(tx repository.BookingRepository) error {
		// the row may have been cancelled since it was read
		current, err := tx.FindByID(ctx, booking.ID)
		if err != nil {
			return fmt.Errorf("reload booking: %w", err)
		}
		if current == nil {
			return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
		}
		if current.Status != entity.BookingStatusConfirmed {
			return fieldError(fieldStatus, msgNotEditable)
		}

		occupancy, err := tx.SumConfirmedPeople(ctx, bucket, booking.ID)
		if err != nil {
			return fmt.Errorf("sum bucket occupancy: %w", err)
		}
		if occupancy+req.NumberOfPeople > restaurant.OnlineCapacity {
			return fieldError(fieldNumberOfPeople,
				editCapacityMessage(remainingCapacity(restaurant.OnlineCapacity, occupancy)))
		}

		if err := tx.UpdatePartySize(ctx, booking.ID, req.NumberOfPeople); err != nil {
			return fmt.Errorf("update party size: %w", err)
		}
		return nil
	})
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) || errors.Is(err, ErrNotFound) {
			s.log.Warn("Edit booking rejected",
				zap.Error(err), zap.String("booking_id", bookingID))
			return nil, err
		}
		s.log.Error("Failed to edit booking",
			zap.Error(err), zap.String("booking_id", bookingID))
		return nil, err
	}

	booking.NumberOfPeople = req.NumberOfPeople
	booking.Touch(s.now())

	s.log.Info("Booking updated",
		zap.String("booking_id", bookingID),
		zap.Int("number_of_people", req.NumberOfPeople))

	resp := response.BookingToResponse(booking, restaurant)
	return &resp, nil
}

// CancelBooking always ends in cancelled; cancelling twice is a no-op.
func (s *bookingService) CancelBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findOwnedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != entity.BookingStatusCancelled {
		if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled); err != nil {
			s.log.Error("Failed to cancel booking",
				zap.Error(err), zap.String("booking_id", bookingID))
			return nil, fmt.Errorf("cancel booking: %w", err)
		}
		booking.Status = entity.BookingStatusCancelled
		booking.Touch(s.now())

		s.log.Info("Booking cancelled",
			zap.String("booking_id", bookingID),
			zap.String("user_id", userID.String()))
	}

	return s.toResponse(ctx, booking)
}

func (s *bookingService) CompletePastBookings(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.completePast(ctx, &userID)
}

func (s *bookingService) CompleteAllPastBookings(ctx context.Context) (int64, error) {
	return s.completePast(ctx, nil)
}

func (s *bookingService) completePast(ctx context.Context, userID *uuid.UUID) (int64, error) {
	today := s.today()

	n, err := s.repo.Booking.CompletePast(ctx, userID, today)
	if err != nil {
		s.log.Error("Failed to complete past bookings", zap.Error(err))
		return 0, fmt.Errorf("complete past bookings: %w", err)
	}

	if n > 0 {
		fields := []zap.Field{zap.Int64("completed", n), zap.String("today", utils.FormatDate(today))}
		if userID != nil {
			fields = append(fields, zap.String("user_id", userID.String()))
		}
		s.log.Info("Past bookings completed", fields...)
	}

	return n, nil
}

func (s *bookingService) GetAvailability(ctx context.Context, slug, date string) (*response.AvailabilityResponse, error) {
	restaurant, err := s.findActiveRestaurant(ctx, slug)
	if err != nil {
		return nil, err
	}

	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, fieldError("date", "Must be a date in 2006-01-02 format")
	}

	booked, err := s.repo.Booking.SumConfirmedPeopleByDate(ctx, restaurant.ID, day)
	if err != nil {
		s.log.Error("Failed to get availability",
			zap.Error(err), zap.String("slug", slug), zap.String("date", date))
		return nil, fmt.Errorf("get availability: %w", err)
	}

	slots := make([]response.SlotAvailability, 0, len(entity.TimeSlots))
	for _, slot := range entity.TimeSlots {
		slots = append(slots, response.SlotAvailability{
			TimeSlot:  slot,
			Label:     slot.Label(),
			Booked:    booked[slot],
			Remaining: remainingCapacity(restaurant.OnlineCapacity, booked[slot]),
		})
	}

	return &response.AvailabilityResponse{
		Restaurant: restaurant.Slug,
		Date:       utils.FormatDate(day),
		Capacity:   restaurant.OnlineCapacity,
		Slots:      slots,
	}, nil
}

// ==================== ADMIN METHODS ====================

func (s *bookingService) GetAllBookings(ctx context.Context, req *request.BookingFilterRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Booking filter validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	var filter repository.BookingFilter

	if req.Restaurant != "" {
		restaurant, err := s.repo.Restaurant.FindBySlug(ctx, req.Restaurant)
		if err != nil {
			return nil, fmt.Errorf("get restaurant: %w", err)
		}
		if restaurant == nil {
			return nil, fmt.Errorf("restaurant %s: %w", req.Restaurant, ErrNotFound)
		}
		filter.RestaurantID = &restaurant.ID
	}

	if req.Date != "" {
		date, err := utils.ParseDate(req.Date)
		if err != nil {
			return nil, fieldError("date", "Must be a date in 2006-01-02 format")
		}
		filter.Date = &date
	}

	if req.Status != "" {
		status, err := entity.ParseBookingStatus(req.Status)
		if err != nil {
			return nil, fieldError(fieldStatus, err.Error())
		}
		filter.Status = &status
	}

	return s.listBookings(ctx, &req.PaginatedRequest, filter)
}

// ==================== HELPER METHODS ====================

func (s *bookingService) listBookings(ctx context.Context, req *request.PaginatedRequest, filter repository.BookingFilter) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindAll(ctx, limit, offset, filter)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	restaurants := make(map[uuid.UUID]*entity.Restaurant)
	items := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		restaurant, ok := restaurants[booking.RestaurantID]
		if !ok {
			restaurant, err = s.repo.Restaurant.FindByID(ctx, booking.RestaurantID)
			if err != nil {
				return nil, fmt.Errorf("get restaurant: %w", err)
			}
			restaurants[booking.RestaurantID] = restaurant
		}
		items = append(items, response.BookingToResponse(booking, restaurant))
	}

	return response.NewPaginatedResponse(items, req.CurrentPage(), limit, total), nil
}

func (s *bookingService) findActiveRestaurant(ctx context.Context, slug string) (*entity.Restaurant, error) {
	restaurant, err := s.repo.Restaurant.FindBySlug(ctx, slug)
	if err != nil {
		s.log.Error("Failed to get restaurant", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	if restaurant == nil || !restaurant.IsActive {
		return nil, fmt.Errorf("restaurant %s: %w", slug, ErrNotFound)
	}
	return restaurant, nil
}

// findOwnedBooking hides other users' bookings behind ErrNotFound.
func (s *bookingService) findOwnedBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil || booking.UserID != userID {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	return booking, nil
}

func (s *bookingService) toResponse(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	restaurant, err := s.repo.Restaurant.FindByID(ctx, booking.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("get restaurant: %w", err)
	}

	resp := response.BookingToResponse(booking, restaurant)
	return &resp, nil
}
