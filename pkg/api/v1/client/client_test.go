package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/taskboard/internal/session"
	"github.com/celestiaorg/taskboard/pkg/api/v1/handlers"
	"github.com/celestiaorg/taskboard/pkg/api/v1/routes"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		opts    *Options
		wantErr bool
		wantURL string
		timeout time.Duration
	}{
		{
			name:    "nil options",
			wantURL: routes.DefaultBaseURL,
			timeout: DefaultTimeout,
		},
		{
			name:    "valid options",
			opts:    &Options{BaseURL: "http://example.com", Timeout: 10 * time.Second},
			wantURL: "http://example.com",
			timeout: 10 * time.Second,
		},
		{
			name:    "zero timeout falls back to default",
			opts:    &Options{BaseURL: "http://example.com"},
			wantURL: "http://example.com",
			timeout: DefaultTimeout,
		},
		{
			name:    "invalid base URL",
			opts:    &Options{BaseURL: "not a url"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, c.baseURL)
			assert.Equal(t, tt.timeout, c.timeout)
		})
	}
}

// newStubServer answers login with a session cookie and a redirect, and
// rejects the project list unless that cookie is presented
func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(routes.BuildURL(handlers.RouteLogin, nil, nil), func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: session.CookieName, Value: "abc123", Path: "/"})
		w.Header().Set("Location", "/")
		w.WriteHeader(http.StatusFound)
	})
	mux.HandleFunc(routes.BuildURL(handlers.RouteLogout, nil, nil), func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: session.CookieName, Value: "", Path: "/", MaxAge: -1, Expires: time.Unix(1, 0)})
		w.Header().Set("Location", "/")
		w.WriteHeader(http.StatusFound)
	})
	mux.HandleFunc(routes.BuildURL(handlers.RouteCurrentUserProjects, nil, nil), func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		ck, err := r.Cookie(session.CookieName)
		if err != nil || ck.Value != "abc123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Login required"}`))
			return
		}
		_, _ = w.Write([]byte(`{"rows":[{"id":7,"title":"Launch"}],"pagination":{"total":1,"limit":100,"offset":0}}`))
	})
	mux.HandleFunc(routes.BuildURL(handlers.RouteNewProject, nil, nil), func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Invalid parameters","details":{"title":"this field is required","description":"too long"}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAPIClient_SessionCookie(t *testing.T) {
	srv := newStubServer(t)
	c, err := NewClient(&Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.ListProjects(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
	assert.Contains(t, err.Error(), "Login required")

	location, err := c.Login(ctx, handlers.LoginParams{Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "/", location)

	projects, err := c.ListProjects(ctx, 1)
	require.NoError(t, err)
	require.Len(t, projects.Rows, 1)
	assert.Equal(t, uint(7), projects.Rows[0].ID)
	assert.Equal(t, "Launch", projects.Rows[0].Title)

	_, err = c.Logout(ctx)
	require.NoError(t, err)
	_, err = c.ListProjects(ctx, 1)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
}

func TestAPIClient_ValidationDetails(t *testing.T) {
	srv := newStubServer(t)
	c, err := NewClient(&Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	_, err = c.CreateProject(context.Background(), handlers.ProjectParams{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid parameters", apiErr.Message)
	assert.Equal(t, map[string]string{"title": "this field is required", "description": "too long"}, apiErr.Details)
	assert.Equal(t, "Invalid parameters: description too long; title this field is required", err.Error())
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, 0, StatusCode(nil))
	assert.Equal(t, 0, StatusCode(assert.AnError))
}

func TestPageQuery(t *testing.T) {
	assert.Nil(t, pageQuery(0))
	assert.Nil(t, pageQuery(1))
	assert.Equal(t, "2", pageQuery(2).Get("page"))
}
