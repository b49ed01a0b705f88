package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/lijie8778708/DevConnector/internal/config"
	"github.com/lijie8778708/DevConnector/internal/database"
	"github.com/lijie8778708/DevConnector/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/google/go-github/github"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type noRepos struct{}

func (noRepos) ListRepos(ctx context.Context, username string) ([]*github.Repository, error) {
	return []*github.Repository{{Name: github.String("devconnector")}}, nil
}

func newTestAPI(t *testing.T) *API {
	t.Helper()

	db, err := database.Init(config.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "client.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode},
		JWT:      config.JWTConfig{Secret: "client-secret", Issuer: "test", ExpireHours: 1},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
	}
	srv := httptest.NewServer(router.SetupRouter(cfg, db, noRepos{}))
	t.Cleanup(func() {
		srv.Close()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewAPI(srv.URL, srv.Client())
}

func newTestApp(t *testing.T) (*App, *MemoryTokenStore) {
	t.Helper()
	store := &MemoryTokenStore{}
	return NewApp(newTestAPI(t), NewState(), store), store
}

func alertMsgs(s *State) []string {
	var out []string
	for _, a := range s.Alerts() {
		out = append(out, a.Msg)
	}
	return out
}

func TestBootstrapWithoutToken(t *testing.T) {
	app, _ := newTestApp(t)
	require.True(t, app.State.Loading())

	require.NoError(t, app.Bootstrap(context.Background()))
	require.False(t, app.State.Loading())
	require.False(t, app.State.IsAuthenticated())

	m := app.Navigate(PathDashboard)
	require.True(t, m.Redirected)
	require.Equal(t, "login", m.Route.Name)
}

func TestRegisterLoginLogout(t *testing.T) {
	ctx := context.Background()
	app, store := newTestApp(t)
	require.NoError(t, app.Bootstrap(ctx))

	require.NoError(t, app.Register(ctx, "Alice", "alice@example.com", "secret123"))
	u, ok := app.State.User()
	require.True(t, ok)
	require.Equal(t, "Alice", u.Name)
	tok, _ := store.Load()
	require.NotEmpty(t, tok)
	require.Equal(t, tok, app.API.Token())

	m := app.Navigate(PathDashboard)
	require.False(t, m.Redirected)
	require.Equal(t, "dashboard", m.Route.Name)

	m = app.Navigate(PathLogin)
	require.True(t, m.Redirected)
	require.Equal(t, "dashboard", m.Route.Name)

	require.NoError(t, app.Logout())
	require.False(t, app.State.IsAuthenticated())
	tok, _ = store.Load()
	require.Empty(t, tok)
	require.Empty(t, app.API.Token())

	require.NoError(t, app.Login(ctx, "alice@example.com", "secret123"))
	require.True(t, app.State.IsAuthenticated())
	require.Empty(t, app.State.Alerts())
}

func TestBootstrapRestoresStoredSession(t *testing.T) {
	ctx := context.Background()
	api := newTestAPI(t)

	tok, err := api.Register(ctx, "Bob", "bob@example.com", "secret123")
	require.NoError(t, err)

	store := &MemoryTokenStore{}
	require.NoError(t, store.Save(tok))
	app := NewApp(api, NewState(), store)

	require.NoError(t, app.Bootstrap(ctx))
	u, ok := app.State.User()
	require.True(t, ok)
	require.Equal(t, "bob@example.com", u.Email)
}

func TestBootstrapDropsRejectedToken(t *testing.T) {
	app, store := newTestApp(t)
	require.NoError(t, store.Save("not-a-token"))

	require.NoError(t, app.Bootstrap(context.Background()))
	require.False(t, app.State.IsAuthenticated())
	require.False(t, app.State.Loading())
	tok, _ := store.Load()
	require.Empty(t, tok)
	require.Empty(t, app.API.Token())
}

func TestLoginFailureRaisesAlert(t *testing.T) {
	ctx := context.Background()
	app, store := newTestApp(t)
	require.NoError(t, app.Register(ctx, "Carol", "carol@example.com", "secret123"))
	require.NoError(t, app.Logout())

	err := app.Login(ctx, "carol@example.com", "wrong-password")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, []string{"Invalid credentials"}, alertMsgs(app.State))
	require.False(t, app.State.IsAuthenticated())
	tok, _ := store.Load()
	require.Empty(t, tok)
}

func TestRegisterValidationAlerts(t *testing.T) {
	app, _ := newTestApp(t)

	err := app.Register(context.Background(), "", "nope", "123")
	require.Error(t, err)
	require.ElementsMatch(t, []string{
		"Name is required",
		"Please include a valid email",
		"Please enter a password with 6 or more characters",
	}, alertMsgs(app.State))
}

func TestRegisterDuplicateAlert(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t)
	require.NoError(t, app.Register(ctx, "Dan", "dan@example.com", "secret123"))
	require.NoError(t, app.Logout())

	require.Error(t, app.Register(ctx, "Dan", "dan@example.com", "secret123"))
	require.Equal(t, []string{"User already exists"}, alertMsgs(app.State))
}

func TestUnreachableServerAlert(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	app := NewApp(NewAPI(srv.URL, nil), NewState(), &MemoryTokenStore{})
	require.Error(t, app.Login(context.Background(), "x@example.com", "secret123"))
	require.Equal(t, []string{ServerErrorMsg}, alertMsgs(app.State))
}
