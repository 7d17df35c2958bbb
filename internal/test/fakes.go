package test

import (
	"context"
	"sync/atomic"

	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/chapool/go-hdpay/internal/wallet/chainrpc"
	"github.com/chapool/go-hdpay/internal/wallet/nodewallet"
	"github.com/shopspring/decimal"
)

// FakeChainData is a chainrpc.Client whose reads are answered by the function
// fields. Unset fields return zero values. Calls counts every read.
type FakeChainData struct {
	UTXOSet        func(ctx context.Context, address string) ([]chain.Output, error)
	RawTransaction func(ctx context.Context, txid string) (*chainrpc.RawTransaction, error)
	Height         func(ctx context.Context) (int64, error)

	Calls  atomic.Int32
	Closed atomic.Bool
}

var _ chainrpc.Client = (*FakeChainData)(nil)

func (f *FakeChainData) Call(_ context.Context, _ any, method string, _ ...any) error {
	f.Calls.Add(1)
	return &chainrpc.Error{Kind: chainrpc.ErrRPC, Method: method, Code: -32601, Message: "Method not found"}
}

func (f *FakeChainData) GetUTXOSet(ctx context.Context, address string) ([]chain.Output, error) {
	f.Calls.Add(1)
	if f.UTXOSet == nil {
		return []chain.Output{}, nil
	}

	return f.UTXOSet(ctx, address)
}

func (f *FakeChainData) GetUTXOBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	outs, err := f.GetUTXOSet(ctx, address)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return chain.SumOutputs(outs), nil
}

func (f *FakeChainData) GetTransaction(_ context.Context, _ string) (*chainrpc.WalletTransaction, error) {
	f.Calls.Add(1)
	return nil, nil
}

func (f *FakeChainData) GetRawTransactionHex(_ context.Context, _ string) (string, error) {
	f.Calls.Add(1)
	return "", nil
}

func (f *FakeChainData) GetRawTransactionVerbose(ctx context.Context, txid string) (*chainrpc.RawTransaction, error) {
	f.Calls.Add(1)
	if f.RawTransaction == nil {
		return nil, nil
	}

	return f.RawTransaction(ctx, txid)
}

func (f *FakeChainData) GetBlockHeight(ctx context.Context) (int64, error) {
	f.Calls.Add(1)
	if f.Height == nil {
		return 0, nil
	}

	return f.Height(ctx)
}

func (f *FakeChainData) Endpoint() string {
	return "https://chaindata.test/"
}

func (f *FakeChainData) Close() {
	f.Closed.Store(true)
}

// FakeNode is a nodewallet.Client answered by function fields.
type FakeNode struct {
	Address       func(ctx context.Context) (string, error)
	UTXOSet       func(ctx context.Context, address string) ([]chain.Output, error)
	TxOutputs     func(ctx context.Context, txid string) ([]chain.Output, error)
	Height        func(ctx context.Context) (int64, error)
	Calls, Closes atomic.Int32
}

var _ nodewallet.Client = (*FakeNode)(nil)

func (f *FakeNode) NewAddress(ctx context.Context) (string, error) {
	f.Calls.Add(1)
	if f.Address == nil {
		return "", &chainrpc.Error{Kind: chainrpc.ErrRPC, Method: "getnewaddress", Code: -18, Message: "No wallet is loaded"}
	}

	return f.Address(ctx)
}

func (f *FakeNode) GetUTXOSet(ctx context.Context, address string) ([]chain.Output, error) {
	f.Calls.Add(1)
	if f.UTXOSet == nil {
		return []chain.Output{}, nil
	}

	return f.UTXOSet(ctx, address)
}

func (f *FakeNode) GetUTXOBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	outs, err := f.GetUTXOSet(ctx, address)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return chain.SumOutputs(outs), nil
}

func (f *FakeNode) GetTransactionOutputs(ctx context.Context, txid string) ([]chain.Output, error) {
	f.Calls.Add(1)
	if f.TxOutputs == nil {
		return nil, nil
	}

	return f.TxOutputs(ctx, txid)
}

func (f *FakeNode) GetBlockHeight(ctx context.Context) (int64, error) {
	f.Calls.Add(1)
	if f.Height == nil {
		return 0, nil
	}

	return f.Height(ctx)
}

func (f *FakeNode) Close() {
	f.Closes.Add(1)
}
