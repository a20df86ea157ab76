package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RestaurantFilter struct {
	City       *string
	ActiveOnly bool
}

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *entity.Restaurant) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Restaurant, error)
	FindFirst(ctx context.Context) (*entity.Restaurant, error)
	FindAll(ctx context.Context, limit, offset int, filter RestaurantFilter) ([]*entity.Restaurant, error)
	CountAll(ctx context.Context, filter RestaurantFilter) (int64, error)
	Update(ctx context.Context, restaurant *entity.Restaurant) error
}

type restaurantRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRestaurantRepository(db database.PgxIface, log *zap.Logger) RestaurantRepository {
	return &restaurantRepository{
		db:  db,
		log: log.With(zap.String("repository", "restaurant")),
	}
}

const restaurantColumns = `id, name, slug, address, city, phone_number, email, description,
		       is_active, table_capacity, online_capacity, created_at, updated_at`

func scanRestaurant(row scanner, restaurant *entity.Restaurant) error {
	return row.Scan(
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.Slug,
		&restaurant.Address,
		&restaurant.City,
		&restaurant.PhoneNumber,
		&restaurant.Email,
		&restaurant.Description,
		&restaurant.IsActive,
		&restaurant.TableCapacity,
		&restaurant.OnlineCapacity,
		&restaurant.CreatedAt,
		&restaurant.UpdatedAt,
	)
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *entity.Restaurant) error {
	query := `
		INSERT INTO restaurants (` + restaurantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		restaurant.ID,
		restaurant.Name,
		restaurant.Slug,
		restaurant.Address,
		restaurant.City,
		restaurant.PhoneNumber,
		restaurant.Email,
		restaurant.Description,
		restaurant.IsActive,
		restaurant.TableCapacity,
		restaurant.OnlineCapacity,
		restaurant.CreatedAt,
		restaurant.UpdatedAt,
	)

	if isUniqueViolation(err, "") {
		return fmt.Errorf("create restaurant %s: %w", restaurant.Slug, ErrRestaurantExists)
	}
	if err != nil {
		r.log.Error("Failed to create restaurant",
			zap.Error(err),
			zap.String("name", restaurant.Name),
			zap.String("slug", restaurant.Slug),
		)
		return fmt.Errorf("create restaurant %s: %w", restaurant.Slug, err)
	}

	return nil
}

func (r *restaurantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`

	var restaurant entity.Restaurant
	err := scanRestaurant(r.db.QueryRow(ctx, query, id), &restaurant)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find restaurant by ID",
			zap.Error(err),
			zap.String("restaurant_id", id.String()),
		)
		return nil, fmt.Errorf("find restaurant by ID %s: %w", id.String(), err)
	}

	return &restaurant, nil
}

func (r *restaurantRepository) FindBySlug(ctx context.Context, slug string) (*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE slug = $1`

	var restaurant entity.Restaurant
	err := scanRestaurant(r.db.QueryRow(ctx, query, slug), &restaurant)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find restaurant by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find restaurant by slug %s: %w", slug, err)
	}

	return &restaurant, nil
}

// FindFirst returns the earliest created active restaurant, used for the home page.
func (r *restaurantRepository) FindFirst(ctx context.Context) (*entity.Restaurant, error) {
	query := `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		WHERE is_active
		ORDER BY created_at, name
		LIMIT 1
	`

	var restaurant entity.Restaurant
	err := scanRestaurant(r.db.QueryRow(ctx, query), &restaurant)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find first restaurant", zap.Error(err))
		return nil, fmt.Errorf("find first restaurant: %w", err)
	}

	return &restaurant, nil
}

// buildWhere renders the filter starting at placeholder $1.
func (f RestaurantFilter) buildWhere() (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if f.ActiveOnly {
		clauses = append(clauses, "is_active")
	}
	if f.City != nil && *f.City != "" {
		args = append(args, "%"+*f.City+"%")
		clauses = append(clauses, fmt.Sprintf("city ILIKE $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *restaurantRepository) FindAll(ctx context.Context, limit, offset int, filter RestaurantFilter) ([]*entity.Restaurant, error) {
	where, args := filter.buildWhere()

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + restaurantColumns + ` FROM restaurants`)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY city, name LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all restaurants",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.Stringp("city_filter", filter.City),
		)
		return nil, fmt.Errorf("find all restaurants limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var restaurants []*entity.Restaurant
	for rows.Next() {
		var restaurant entity.Restaurant
		if err := scanRestaurant(rows, &restaurant); err != nil {
			r.log.Error("Failed to scan restaurant row", zap.Error(err))
			return nil, fmt.Errorf("scan restaurant row: %w", err)
		}
		restaurants = append(restaurants, &restaurant)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate restaurant rows: %w", err)
	}

	return restaurants, nil
}

func (r *restaurantRepository) CountAll(ctx context.Context, filter RestaurantFilter) (int64, error) {
	where, args := filter.buildWhere()

	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM restaurants`+where, args...).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count restaurants",
			zap.Error(err),
			zap.Stringp("city_filter", filter.City),
		)
		return 0, fmt.Errorf("count all restaurants: %w", err)
	}

	return total, nil
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *entity.Restaurant) error {
	query := `
		UPDATE restaurants
		SET name = $2, slug = $3, address = $4, city = $5, phone_number = $6, email = $7,
		    description = $8, is_active = $9, table_capacity = $10, online_capacity = $11,
		    updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		restaurant.ID,
		restaurant.Name,
		restaurant.Slug,
		restaurant.Address,
		restaurant.City,
		restaurant.PhoneNumber,
		restaurant.Email,
		restaurant.Description,
		restaurant.IsActive,
		restaurant.TableCapacity,
		restaurant.OnlineCapacity,
		restaurant.UpdatedAt,
	)

	if isUniqueViolation(err, "") {
		return fmt.Errorf("update restaurant %s: %w", restaurant.Slug, ErrRestaurantExists)
	}
	if err != nil {
		r.log.Error("Failed to update restaurant",
			zap.Error(err),
			zap.String("restaurant_id", restaurant.ID.String()),
		)
		return fmt.Errorf("update restaurant %s: %w", restaurant.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("restaurant %s not found", restaurant.ID.String())
	}

	return nil
}
