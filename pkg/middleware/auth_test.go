package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/internal/data/repository"
	"restaurant-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubSessions struct {
	repository.SessionRepository
	sessions map[uuid.UUID]*entity.Session
}

func (s *stubSessions) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	return s.sessions[token], nil
}

type stubUsers struct {
	repository.UserRepository
	users map[uuid.UUID]*entity.User
}

func (s *stubUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.users[id], nil
}

type authFixture struct {
	handler     http.Handler
	customerTok uuid.UUID
	adminTok    uuid.UUID
	inactiveTok uuid.UUID
}

func newAuthFixture(adminOnly bool) authFixture {
	sessions := &stubSessions{sessions: map[uuid.UUID]*entity.Session{}}
	users := &stubUsers{users: map[uuid.UUID]*entity.User{}}

	addUser := func(role entity.UserRole, active bool) uuid.UUID {
		user := &entity.User{Base: entity.Base{ID: uuid.New()}, Role: role, IsActive: active}
		users.users[user.ID] = user
		token := uuid.New()
		sessions.sessions[token] = &entity.Session{UserID: user.ID, Token: token, ExpiresAt: time.Now().Add(time.Hour)}
		return token
	}

	fx := authFixture{
		customerTok: addUser(entity.RoleCustomer, true),
		adminTok:    addUser(entity.RoleAdmin, true),
		inactiveTok: addUser(entity.RoleCustomer, false),
	}

	var next http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := utils.GetUserIDFromContext(r.Context())
		token, _ := utils.GetTokenFromContext(r.Context())
		w.Header().Set("X-User", userID.String())
		w.Header().Set("X-Token", token)
		w.WriteHeader(http.StatusNoContent)
	})
	if adminOnly {
		next = Admin(zap.NewNop())(next)
	}
	fx.handler = AuthSession(sessions, users, "/login", zap.NewNop())(next)
	return fx
}

func serve(h http.Handler, authorization, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/user/bookings?page=2", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthSession(t *testing.T) {
	fx := newAuthFixture(false)

	tests := []struct {
		name          string
		authorization string
		accept        string
		wantStatus    int
	}{
		{"valid session", "Bearer " + fx.customerTok.String(), "", http.StatusNoContent},
		{"scheme is case insensitive", "bearer " + fx.customerTok.String(), "", http.StatusNoContent},
		{"missing header", "", "application/json", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + fx.customerTok.String(), "", http.StatusUnauthorized},
		{"malformed token", "Bearer not-a-uuid", "", http.StatusUnauthorized},
		{"unknown session", "Bearer " + uuid.NewString(), "", http.StatusUnauthorized},
		{"inactive user", "Bearer " + fx.inactiveTok.String(), "", http.StatusUnauthorized},
		{"browser without session", "", "text/html,application/xhtml+xml", http.StatusFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(fx.handler, tt.authorization, tt.accept)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthSession_SetsContext(t *testing.T) {
	fx := newAuthFixture(false)

	rec := serve(fx.handler, "Bearer "+fx.customerTok.String(), "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-User"))
	assert.Equal(t, fx.customerTok.String(), rec.Header().Get("X-Token"))
}

func TestAuthSession_RedirectKeepsTarget(t *testing.T) {
	fx := newAuthFixture(false)

	rec := serve(fx.handler, "", "text/html")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?next=%2Fapi%2Fuser%2Fbookings%3Fpage%3D2", rec.Header().Get("Location"))
}

func TestAdmin(t *testing.T) {
	fx := newAuthFixture(true)

	assert.Equal(t, http.StatusForbidden, serve(fx.handler, "Bearer "+fx.customerTok.String(), "").Code)
	assert.Equal(t, http.StatusNoContent, serve(fx.handler, "Bearer "+fx.adminTok.String(), "").Code)
}

func TestAdmin_WithoutAuthSession(t *testing.T) {
	h := Admin(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.Equal(t, http.StatusUnauthorized, serve(h, "", "").Code)
}
