package views

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvoronov/storefront/internal/api"
	"github.com/mvoronov/storefront/internal/fakeshop"
	"github.com/mvoronov/storefront/internal/localstore"
	"github.com/mvoronov/storefront/internal/session"
)

type testEnv struct {
	Shop    *fakeshop.Server
	Client  *api.Client
	Session *session.Store
}

func newTestEnv(t *testing.T) *testEnv {
	shop := fakeshop.New()
	t.Cleanup(shop.Close)

	persist, err := localstore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { persist.Close() })

	client := api.NewClient(shop.URL())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testEnv{
		Shop:    shop,
		Client:  client,
		Session: session.NewStore(client, persist, logger),
	}
}

func (env *testEnv) loginAsAdmin(t *testing.T) api.User {
	user := env.Shop.AddUser("Root", "root@example.com", "secret", "Admin")
	resp, err := env.Client.Login(context.Background(), "root@example.com", "secret")
	require.NoError(t, err)
	env.Session.Login(resp.Token.AccessToken, &resp.User)
	return user
}
