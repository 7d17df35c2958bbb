package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/chapool/go-hdpay/internal/api"
	"github.com/chapool/go-hdpay/internal/test"
	"github.com/chapool/go-hdpay/internal/util/command"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithServer(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		ctx := t.Context()

		var testError = errors.New("test error")

		s.Config.Logger.PrettyPrintConsole = false
		resultErr := command.WithServer(ctx, s.Config, func(ctx context.Context, s *api.Server) error {
			d, err := s.Wallet.Service.NewAddress(ctx, "BTC")
			require.NoError(t, err)

			assert.NotEmpty(t, d.Address)

			return testError
		})

		assert.Equal(t, testError, resultErr)
	})
}

func TestWithServerInitFailure(t *testing.T) {
	cfg := test.NewTestConfig(t)
	cfg.Wallet.Seed.Format = "pgp"

	called := false
	err := command.WithServer(t.Context(), cfg, func(context.Context, *api.Server) error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, chain.ErrUnsupportedConfiguration)
	assert.False(t, called)
}

func TestNewSubcommandGroup(t *testing.T) {
	group := command.NewSubcommandGroup("probe")
	assert.Equal(t, "probe", group.Use)
	assert.Equal(t, "probe related subcommands", group.Short)
}
