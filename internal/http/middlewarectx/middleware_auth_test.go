package middlewarectx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/face-collection/internal/models"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Authenticate(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSessionMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(m *AuthServiceMock)
		wantStatusCode int
		wantUsername   string
		wantNextCalled bool
	}{
		{
			name:       "valid session",
			authHeader: "Bearer good-token",
			setupMock: func(m *AuthServiceMock) {
				m.On("Authenticate", mock.Anything, "good-token").Return("alice", nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantUsername:   "alice",
			wantNextCalled: true,
		},
		{
			name:           "missing header",
			authHeader:     "",
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantNextCalled: false,
		},
		{
			name:           "not a bearer token",
			authHeader:     "Basic abcdef",
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantNextCalled: false,
		},
		{
			name:       "revoked session",
			authHeader: "Bearer revoked-token",
			setupMock: func(m *AuthServiceMock) {
				m.On("Authenticate", mock.Anything, "revoked-token").
					Return("", models.ErrUnauthenticated).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantNextCalled: false,
		},
		{
			name:       "session store down",
			authHeader: "Bearer token",
			setupMock: func(m *AuthServiceMock) {
				m.On("Authenticate", mock.Anything, "token").
					Return("", fmt.Errorf("sessions.Resolve: %w", models.ErrStoreUnavailable)).Once()
			},
			wantStatusCode: http.StatusServiceUnavailable,
			wantNextCalled: false,
		},
		{
			name:       "opaque auth failure",
			authHeader: "Bearer token",
			setupMock: func(m *AuthServiceMock) {
				m.On("Authenticate", mock.Anything, "token").
					Return("", errors.New("malformed claims")).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantNextCalled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			tt.setupMock(authMock)

			nextCalled := false
			var gotUsername string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUsername, _ = r.Context().Value(User).(string)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/faces", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			SessionMiddleware(authMock, newNoopLogger())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
			if tt.wantNextCalled {
				assert.Equal(t, tt.wantUsername, gotUsername)
			}
			authMock.AssertExpectations(t)
		})
	}
}
