package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repositories. They follow the pgx repositories' contracts:
// nil, nil on a miss and the same sentinel errors.

func sameBucket(a, b entity.Bucket) bool {
	return a.RestaurantID == b.RestaurantID && a.Date.Equal(b.Date) && a.Slot == b.Slot
}

type memBookingRepo struct {
	mu       sync.Mutex
	bucketMu sync.Mutex
	rows     map[uuid.UUID]*entity.Booking

	// WithinBucket invocations
	lockCalls int
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{rows: make(map[uuid.UUID]*entity.Booking)}
}

func (m *memBookingRepo) put(b *entity.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.rows[b.ID] = &cp
}

func (m *memBookingRepo) get(id uuid.UUID) *entity.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return nil
	}
	cp := *b
	return &cp
}

func (m *memBookingRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *memBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.rows {
		if b.Status.Active() && b.UserID == booking.UserID && sameBucket(b.Bucket(), booking.Bucket()) {
			return repository.ErrDuplicateActiveBooking
		}
	}
	cp := *booking
	m.rows[booking.ID] = &cp
	return nil
}

func (m *memBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return m.get(id), nil
}

func (m *memBookingRepo) matching(filter repository.BookingFilter) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range m.rows {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if filter.RestaurantID != nil && b.RestaurantID != *filter.RestaurantID {
			continue
		}
		if filter.Date != nil && !b.BookingDate.Equal(*filter.Date) {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].BookingDate.Equal(out[j].BookingDate) {
			return out[i].BookingDate.After(out[j].BookingDate)
		}
		return out[i].TimeSlot.Order() < out[j].TimeSlot.Order()
	})
	return out
}

func (m *memBookingRepo) FindAll(ctx context.Context, limit, offset int, filter repository.BookingFilter) ([]*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.matching(filter)
	if offset >= len(rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], nil
}

func (m *memBookingRepo) CountAll(ctx context.Context, filter repository.BookingFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.matching(filter))), nil
}

func (m *memBookingRepo) UpdatePartySize(ctx context.Context, id uuid.UUID, numberOfPeople int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.rows[id]; ok {
		b.NumberOfPeople = numberOfPeople
	}
	return nil
}

func (m *memBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.rows[id]; ok {
		b.Status = status
	}
	return nil
}

func (m *memBookingRepo) HasActiveBooking(ctx context.Context, userID uuid.UUID, bucket entity.Bucket) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.rows {
		if b.UserID == userID && sameBucket(b.Bucket(), bucket) && b.Status.Active() {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBookingRepo) SumConfirmedPeople(ctx context.Context, bucket entity.Bucket, excludeID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, b := range m.rows {
		if b.ID != excludeID && sameBucket(b.Bucket(), bucket) && b.Status == entity.BookingStatusConfirmed {
			total += b.NumberOfPeople
		}
	}
	return total, nil
}

func (m *memBookingRepo) SumConfirmedPeopleByDate(ctx context.Context, restaurantID uuid.UUID, date time.Time) (map[entity.TimeSlot]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[entity.TimeSlot]int)
	for _, b := range m.rows {
		if b.RestaurantID == restaurantID && b.BookingDate.Equal(date) && b.Status == entity.BookingStatusConfirmed {
			out[b.TimeSlot] += b.NumberOfPeople
		}
	}
	return out, nil
}

func (m *memBookingRepo) CompletePast(ctx context.Context, userID *uuid.UUID, today time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, b := range m.rows {
		if userID != nil && b.UserID != *userID {
			continue
		}
		if b.Status == entity.BookingStatusConfirmed && b.BookingDate.Before(today) {
			b.Status = entity.BookingStatusCompleted
			n++
		}
	}
	return n, nil
}

func (m *memBookingRepo) WithinBucket(ctx context.Context, bucket entity.Bucket, fn func(tx repository.BookingRepository) error) error {
	m.bucketMu.Lock()
	defer m.bucketMu.Unlock()
	m.mu.Lock()
	m.lockCalls++
	m.mu.Unlock()
	return fn(m)
}

type memRestaurantRepo struct {
	mu   sync.Mutex
	rows []*entity.Restaurant
}

func (m *memRestaurantRepo) add(r *entity.Restaurant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, r)
}

func (m *memRestaurantRepo) Create(ctx context.Context, restaurant *entity.Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Slug == restaurant.Slug || r.Name == restaurant.Name || r.PhoneNumber == restaurant.PhoneNumber {
			return repository.ErrRestaurantExists
		}
	}
	cp := *restaurant
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memRestaurantRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memRestaurantRepo) FindBySlug(ctx context.Context, slug string) (*entity.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Slug == slug {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memRestaurantRepo) FindFirst(ctx context.Context) (*entity.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rows) == 0 {
		return nil, nil
	}
	cp := *m.rows[0]
	return &cp, nil
}

func (m *memRestaurantRepo) filtered(filter repository.RestaurantFilter) []*entity.Restaurant {
	var out []*entity.Restaurant
	for _, r := range m.rows {
		if filter.ActiveOnly && !r.IsActive {
			continue
		}
		if filter.City != nil && r.City != *filter.City {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out
}

func (m *memRestaurantRepo) FindAll(ctx context.Context, limit, offset int, filter repository.RestaurantFilter) ([]*entity.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.filtered(filter)
	if offset >= len(rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], nil
}

func (m *memRestaurantRepo) CountAll(ctx context.Context, filter repository.RestaurantFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.filtered(filter))), nil
}

func (m *memRestaurantRepo) Update(ctx context.Context, restaurant *entity.Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows {
		if r.ID == restaurant.ID {
			cp := *restaurant
			m.rows[i] = &cp
			return nil
		}
	}
	return nil
}

type memUserRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{rows: make(map[uuid.UUID]*entity.User)}
}

func (m *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Email == user.Email || u.Username == user.Username {
			return repository.ErrUserExists
		}
	}
	cp := *user
	m.rows[user.ID] = &cp
	return nil
}

func (m *memUserRepo) find(match func(*entity.User) bool) *entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (m *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Email == email }), nil
}

func (m *memUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Username == username }), nil
}

func (m *memUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Role = role
	return nil
}

type memSessionRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entity.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{rows: make(map[uuid.UUID]*entity.Session)}
}

func (m *memSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *session
	m.rows[session.Token] = &cp
	return nil
}

func (m *memSessionRepo) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[token]
	if !ok || !s.Active(time.Now()) {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSessionRepo) Revoke(ctx context.Context, token uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[token]
	if !ok || s.RevokedAt != nil {
		return repository.ErrSessionNotFound
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (m *memSessionRepo) CleanExpiredSessions(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for token, s := range m.rows {
		if !s.Active(time.Now()) {
			delete(m.rows, token)
			n++
		}
	}
	return n, nil
}

type memStore struct {
	repo        *repository.Repository
	bookings    *memBookingRepo
	restaurants *memRestaurantRepo
	users       *memUserRepo
	sessions    *memSessionRepo
}

func newMemStore() *memStore {
	s := &memStore{
		bookings:    newMemBookingRepo(),
		restaurants: &memRestaurantRepo{},
		users:       newMemUserRepo(),
		sessions:    newMemSessionRepo(),
	}
	s.repo = &repository.Repository{
		User:       s.users,
		Session:    s.sessions,
		Restaurant: s.restaurants,
		Booking:    s.bookings,
	}
	return s
}
