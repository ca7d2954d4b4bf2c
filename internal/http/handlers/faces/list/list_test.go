package list

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/face-collection/internal/http/middlewarectx"
	"github.com/magabrotheeeer/face-collection/internal/models"
)

type FacesServiceMock struct {
	mock.Mock
}

func (m *FacesServiceMock) List(ctx context.Context, username string) (models.Preferences, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Preferences), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestListHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		username       any
		setupMock      func(m *FacesServiceMock)
		wantStatusCode int
		wantStatus     string
		wantPrefs      map[string]any
	}{
		{
			name:     "existing collection",
			username: "alice",
			setupMock: func(m *FacesServiceMock) {
				m.On("List", mock.Anything, "alice").
					Return(models.Preferences{"happy": {"^_^", "n_n"}}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
			wantPrefs: map[string]any{
				"happy": []any{"^_^", "n_n"},
			},
		},
		{
			name:     "fresh user gets empty mapping",
			username: "bob",
			setupMock: func(m *FacesServiceMock) {
				m.On("List", mock.Anything, "bob").Return(models.Preferences{}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
			wantPrefs:      map[string]any{},
		},
		{
			name:           "no username in context",
			username:       nil,
			setupMock:      func(_ *FacesServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facesMock := new(FacesServiceMock)
			tt.setupMock(facesMock)

			handler := New(newNoopLogger(), facesMock)

			req := httptest.NewRequest(http.MethodGet, "/faces", nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.username != nil {
				ctx = context.WithValue(ctx, middlewarectx.User, tt.username)
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantPrefs != nil {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, tt.wantPrefs, data["preferences"])
			}

			facesMock.AssertExpectations(t)
		})
	}
}
