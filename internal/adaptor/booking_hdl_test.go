package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/internal/dto/request"
	"restaurant-booking/internal/dto/response"
	"restaurant-booking/internal/usecase"
	"restaurant-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubBookingService implements the calls the tests exercise; the embedded
// interface panics on anything else.
type stubBookingService struct {
	usecase.BookingService

	createFunc func(ctx context.Context, userID uuid.UUID, slug string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	listFunc   func(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	cancelFunc func(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error)
	editFunc   func(ctx context.Context, userID uuid.UUID, bookingID string, req *request.EditBookingRequest) (*response.BookingResponse, error)
}

func (s *stubBookingService) CreateBooking(ctx context.Context, userID uuid.UUID, slug string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	return s.createFunc(ctx, userID, slug, req)
}

func (s *stubBookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	return s.listFunc(ctx, userID, req)
}

func (s *stubBookingService) CancelBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	return s.cancelFunc(ctx, userID, bookingID)
}

func (s *stubBookingService) EditBooking(ctx context.Context, userID uuid.UUID, bookingID string, req *request.EditBookingRequest) (*response.BookingResponse, error) {
	return s.editFunc(ctx, userID, bookingID, req)
}

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// withUser stands in for AuthSession.
func withUser(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := utils.SetUserContext(r.Context(), userID, entity.RoleCustomer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newBookingRouter(svc usecase.BookingService, userID uuid.UUID) http.Handler {
	h := NewBookingHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		if userID != uuid.Nil {
			r.Use(withUser(userID))
		}
		r.Post("/api/restaurants/{slug}/bookings", h.CreateBooking)
		r.Get("/api/user/bookings", h.GetUserBookings)
		r.Patch("/api/user/bookings/{id}", h.EditBooking)
		r.Post("/api/user/bookings/{id}/cancel", h.CancelBooking)
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestCreateBookingHandler(t *testing.T) {
	userID := uuid.New()
	body := `{"booking_date":"2025-07-01","time_slot":"18:00-19:30","number_of_people":2}`

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantErrors map[string]string
	}{
		{
			name:       "created",
			wantStatus: http.StatusCreated,
		},
		{
			name: "validation errors are returned per field",
			serviceErr: &usecase.ValidationError{Fields: map[string]string{
				"booking_date":     "Booking date must be after today.",
				"number_of_people": "Number of people must be between 1 and 6.",
			}},
			wantStatus: http.StatusBadRequest,
			wantErrors: map[string]string{
				"booking_date":     "Booking date must be after today.",
				"number_of_people": "Number of people must be between 1 and 6.",
			},
		},
		{
			name:       "unknown restaurant",
			serviceErr: fmt.Errorf("restaurant nope: %w", usecase.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "store failure",
			serviceErr: fmt.Errorf("create booking: connection reset"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSlug string
			var gotUser uuid.UUID
			svc := &stubBookingService{
				createFunc: func(ctx context.Context, uid uuid.UUID, slug string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
					gotSlug, gotUser = slug, uid
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &response.BookingResponse{ID: uuid.NewString(), Status: entity.BookingStatusConfirmed}, nil
				},
			}

			rec, env := doRequest(t, newBookingRouter(svc, userID), http.MethodPost, "/api/restaurants/trattoria-roma/bookings", body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "trattoria-roma", gotSlug)
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, tt.wantStatus < 300, env.Status)
			if tt.wantErrors != nil {
				assert.Equal(t, tt.wantErrors, env.Errors)
			}
		})
	}
}

func TestCreateBookingHandler_BadBody(t *testing.T) {
	svc := &stubBookingService{}

	rec, env := doRequest(t, newBookingRouter(svc, uuid.New()), http.MethodPost, "/api/restaurants/x/bookings", `{"number_of_people":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", env.Message)
}

func TestBookingHandlers_RequireUser(t *testing.T) {
	svc := &stubBookingService{}
	router := newBookingRouter(svc, uuid.Nil)

	rec, _ := doRequest(t, router, http.MethodGet, "/api/user/bookings", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doRequest(t, router, http.MethodPost, "/api/user/bookings/"+uuid.NewString()+"/cancel", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUserBookingsHandler_Pagination(t *testing.T) {
	var got *request.PaginatedRequest
	svc := &stubBookingService{
		listFunc: func(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
			got = req
			return response.NewPaginatedResponse([]response.BookingResponse{}, req.Page, req.Limit(), 0), nil
		},
	}
	router := newBookingRouter(svc, uuid.New())

	rec, _ := doRequest(t, router, http.MethodGet, "/api/user/bookings?page=3&per_page=5", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, got.Page)
	assert.Equal(t, 5, got.PerPage)

	rec, _ = doRequest(t, router, http.MethodGet, "/api/user/bookings?page=abc&per_page=-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 10, got.PerPage)
}

func TestCancelBookingHandler_NotOwnedIsNotFound(t *testing.T) {
	bookingID := uuid.NewString()
	svc := &stubBookingService{
		cancelFunc: func(ctx context.Context, userID uuid.UUID, id string) (*response.BookingResponse, error) {
			assert.Equal(t, bookingID, id)
			return nil, fmt.Errorf("booking %s: %w", id, usecase.ErrNotFound)
		},
	}

	rec, env := doRequest(t, newBookingRouter(svc, uuid.New()), http.MethodPost, "/api/user/bookings/"+bookingID+"/cancel", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Resource not found", env.Message)
}

func TestEditBookingHandler(t *testing.T) {
	svc := &stubBookingService{
		editFunc: func(ctx context.Context, userID uuid.UUID, id string, req *request.EditBookingRequest) (*response.BookingResponse, error) {
			if req.NumberOfPeople > 4 {
				return nil, &usecase.ValidationError{Fields: map[string]string{
					"number_of_people": "Cannot update booking due to capacity limits. Only 4 more people can be accommodated.",
				}}
			}
			return &response.BookingResponse{ID: id, NumberOfPeople: req.NumberOfPeople}, nil
		},
	}
	router := newBookingRouter(svc, uuid.New())
	path := "/api/user/bookings/" + uuid.NewString()

	rec, env := doRequest(t, router, http.MethodPatch, path, `{"number_of_people":4}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	var booking response.BookingResponse
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	assert.Equal(t, 4, booking.NumberOfPeople)

	rec, env = doRequest(t, router, http.MethodPatch, path, `{"number_of_people":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors["number_of_people"], "Cannot update booking due to capacity")
}
