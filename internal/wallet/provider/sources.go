package provider

import (
	"context"
	"errors"

	"github.com/chapool/go-hdpay/internal/util"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/chapool/go-hdpay/internal/wallet/chainrpc"
	"github.com/chapool/go-hdpay/internal/wallet/nodewallet"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
)

// chainDataSource reads through the hosted chain-data client behind a circuit
// breaker. Only transport and protocol failures count against the breaker.
type chainDataSource struct {
	client  chainrpc.Client
	breaker *gobreaker.CircuitBreaker
}

func newChainDataSource(currency chain.Currency, client chainrpc.Client, settings BreakerSettings) *chainDataSource {
	if settings.MinRequests == 0 {
		settings.MinRequests = DefaultBreakerSettings().MinRequests
	}
	if settings.FailureRatio <= 0 {
		settings.FailureRatio = DefaultBreakerSettings().FailureRatio
	}

	return &chainDataSource{
		client: client,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "chaindata-" + currency.String(),
			Timeout: settings.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				ratio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= settings.MinRequests && ratio >= settings.FailureRatio
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Warn().
					Str("breaker", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("Chain-data circuit breaker changed state")
			},
		}),
	}
}

// guarded runs fn through the breaker. Non-retryable errors are passed back
// to the caller without being counted as failures.
func guarded[T any](cb *gobreaker.CircuitBreaker, method string, fn func() (T, error)) (T, error) {
	var (
		zero    T
		callErr error
	)

	res, err := cb.Execute(func() (interface{}, error) {
		v, err := fn()
		if err != nil && !chainrpc.Retryable(err) {
			callErr = err
			return v, nil
		}
		return v, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, &chainrpc.Error{Kind: chainrpc.ErrTransport, Method: method, Message: "circuit breaker " + err.Error()}
		}
		return zero, err
	}
	if callErr != nil {
		return zero, callErr
	}

	v, _ := res.(T)

	return v, nil
}

func (s *chainDataSource) Name() string {
	return SourceChainData
}

func (s *chainDataSource) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	return guarded(s.breaker, "listunspent", func() (decimal.Decimal, error) {
		return s.client.GetUTXOBalance(ctx, address)
	})
}

func (s *chainDataSource) IncomingOutputs(ctx context.Context, address string) ([]chain.Output, error) {
	return guarded(s.breaker, "listunspent", func() ([]chain.Output, error) {
		return s.client.GetUTXOSet(ctx, address)
	})
}

func (s *chainDataSource) TransactionOutputs(ctx context.Context, txid string) ([]chain.Output, error) {
	return guarded(s.breaker, "getrawtransaction", func() ([]chain.Output, error) {
		tx, err := s.client.GetRawTransactionVerbose(ctx, txid)
		if err != nil {
			return nil, err
		}

		if tx == nil {
			util.LogFromContext(ctx).Debug().Str("txid", txid).Msg("Transaction unknown to chain-data endpoint")
		}

		return chainrpc.DecodeOutputs(tx), nil
	})
}

func (s *chainDataSource) BlockHeight(ctx context.Context) (int64, error) {
	return guarded(s.breaker, "getblockcount", func() (int64, error) {
		return s.client.GetBlockHeight(ctx)
	})
}

// nodeSource reads from the currency's own node wallet.
type nodeSource struct {
	client nodewallet.Client
}

func (s *nodeSource) Name() string {
	return SourceNode
}

func (s *nodeSource) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	return s.client.GetUTXOBalance(ctx, address)
}

func (s *nodeSource) IncomingOutputs(ctx context.Context, address string) ([]chain.Output, error) {
	return s.client.GetUTXOSet(ctx, address)
}

func (s *nodeSource) TransactionOutputs(ctx context.Context, txid string) ([]chain.Output, error) {
	return s.client.GetTransactionOutputs(ctx, txid)
}

func (s *nodeSource) BlockHeight(ctx context.Context) (int64, error) {
	return s.client.GetBlockHeight(ctx)
}
