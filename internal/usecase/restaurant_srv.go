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

	"go.uber.org/zap"
)

type RestaurantService interface {
	// Public endpoints
	GetRestaurants(ctx context.Context, req *request.RestaurantFilterRequest) (*response.PaginatedResponse[response.RestaurantResponse], error)
	GetRestaurantBySlug(ctx context.Context, slug string) (*response.RestaurantResponse, error)
	GetHomeRestaurant(ctx context.Context) (*response.RestaurantResponse, error)
	GetTimeSlots(ctx context.Context) []response.TimeSlotResponse

	// Admin endpoints
	CreateRestaurant(ctx context.Context, req *request.RestaurantRequest) (*response.RestaurantResponse, error)
	UpdateRestaurant(ctx context.Context, slug string, req *request.RestaurantUpdateRequest) (*response.RestaurantResponse, error)
}

type restaurantService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRestaurantService(repo *repository.Repository, log *zap.Logger) RestaurantService {
	return &restaurantService{
		repo: repo,
		log:  log.With(zap.String("service", "restaurant")),
	}
}

func (s *restaurantService) GetRestaurants(ctx context.Context, req *request.RestaurantFilterRequest) (*response.PaginatedResponse[response.RestaurantResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Restaurant filter validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	filter := repository.RestaurantFilter{ActiveOnly: !req.IncludeInactive}
	if req.City != "" {
		filter.City = &req.City
	}

	limit := req.Limit()
	offset := req.Offset()

	restaurants, err := s.repo.Restaurant.FindAll(ctx, limit, offset, filter)
	if err != nil {
		s.log.Error("Failed to get restaurants", zap.Error(err))
		return nil, fmt.Errorf("get restaurants: %w", err)
	}

	total, err := s.repo.Restaurant.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count restaurants", zap.Error(err))
		return nil, fmt.Errorf("count restaurants: %w", err)
	}

	items := make([]response.RestaurantResponse, 0, len(restaurants))
	for _, restaurant := range restaurants {
		items = append(items, response.RestaurantToResponse(restaurant))
	}

	return response.NewPaginatedResponse(items, req.CurrentPage(), limit, total), nil
}

func (s *restaurantService) GetRestaurantBySlug(ctx context.Context, slug string) (*response.RestaurantResponse, error) {
	restaurant, err := s.repo.Restaurant.FindBySlug(ctx, slug)
	if err != nil {
		s.log.Error("Failed to get restaurant", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	if restaurant == nil || !restaurant.IsActive {
		return nil, fmt.Errorf("restaurant %s: %w", slug, ErrNotFound)
	}

	resp := response.RestaurantToResponse(restaurant)
	return &resp, nil
}

// GetHomeRestaurant returns the first restaurant by creation time.
func (s *restaurantService) GetHomeRestaurant(ctx context.Context) (*response.RestaurantResponse, error) {
	restaurant, err := s.repo.Restaurant.FindFirst(ctx)
	if err != nil {
		s.log.Error("Failed to get home restaurant", zap.Error(err))
		return nil, fmt.Errorf("get home restaurant: %w", err)
	}
	if restaurant == nil {
		return nil, fmt.Errorf("restaurant: %w", ErrNotFound)
	}

	resp := response.RestaurantToResponse(restaurant)
	return &resp, nil
}

func (s *restaurantService) GetTimeSlots(ctx context.Context) []response.TimeSlotResponse {
	return response.TimeSlotsToResponse()
}

// ==================== ADMIN METHODS ====================

func (s *restaurantService) CreateRestaurant(ctx context.Context, req *request.RestaurantRequest) (*response.RestaurantResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create restaurant validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	if slug == "" {
		return nil, fieldError("slug", "Cannot derive a slug from the name, provide one")
	}

	now := time.Now()
	restaurant := &entity.Restaurant{
		Base:           entity.NewBase(now),
		Name:           req.Name,
		Slug:           slug,
		Address:        req.Address,
		City:           req.City,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
		Description:    req.Description,
		IsActive:       true,
		TableCapacity:  entity.DefaultTableCapacity,
		OnlineCapacity: entity.DefaultOnlineCapacity,
	}
	if req.IsActive != nil {
		restaurant.IsActive = *req.IsActive
	}
	if req.TableCapacity != nil {
		restaurant.TableCapacity = *req.TableCapacity
	}
	if req.OnlineCapacity != nil {
		restaurant.OnlineCapacity = *req.OnlineCapacity
	}

	if err := s.repo.Restaurant.Create(ctx, restaurant); err != nil {
		if errors.Is(err, repository.ErrRestaurantExists) {
			return nil, fmt.Errorf("restaurant %q already exists", restaurant.Name)
		}
		s.log.Error("Failed to create restaurant", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	s.log.Info("Restaurant created",
		zap.String("restaurant_id", restaurant.ID.String()),
		zap.String("slug", restaurant.Slug),
		zap.Int("online_capacity", restaurant.OnlineCapacity))

	resp := response.RestaurantToResponse(restaurant)
	return &resp, nil
}

func (s *restaurantService) UpdateRestaurant(ctx context.Context, slug string, req *request.RestaurantUpdateRequest) (*response.RestaurantResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update restaurant validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	restaurant, err := s.repo.Restaurant.FindBySlug(ctx, slug)
	if err != nil {
		s.log.Error("Failed to get restaurant", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	if restaurant == nil {
		return nil, fmt.Errorf("restaurant %s: %w", slug, ErrNotFound)
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.Address != nil {
		restaurant.Address = *req.Address
	}
	if req.City != nil {
		restaurant.City = *req.City
	}
	if req.PhoneNumber != nil {
		restaurant.PhoneNumber = *req.PhoneNumber
	}
	if req.Email != nil {
		restaurant.Email = req.Email
	}
	if req.Description != nil {
		restaurant.Description = *req.Description
	}
	if req.IsActive != nil {
		restaurant.IsActive = *req.IsActive
	}
	if req.TableCapacity != nil {
		restaurant.TableCapacity = *req.TableCapacity
	}
	if req.OnlineCapacity != nil {
		restaurant.OnlineCapacity = *req.OnlineCapacity
	}
	restaurant.Touch(time.Now())

	if err := s.repo.Restaurant.Update(ctx, restaurant); err != nil {
		if errors.Is(err, repository.ErrRestaurantExists) {
			return nil, fmt.Errorf("restaurant %q already exists", restaurant.Name)
		}
		s.log.Error("Failed to update restaurant", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("update restaurant: %w", err)
	}

	s.log.Info("Restaurant updated",
		zap.String("restaurant_id", restaurant.ID.String()),
		zap.String("slug", restaurant.Slug))

	resp := response.RestaurantToResponse(restaurant)
	return &resp, nil
}
