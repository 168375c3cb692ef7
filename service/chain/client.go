package chain

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	bCtx "github.com/platz/goapi/base/ctx"
	bEthereum "github.com/platz/goapi/base/ethereum"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/domain"
)

var ErrUnsupportedChain = errors.New("unsupported chain")

const (
	DefaultReadTimeout   = 5 * time.Second
	DefaultMaxConcurrent = 8
)

type ClientCfg struct {
	RpcUrls map[int32]string
	// ReadTimeout bounds every read call, DefaultReadTimeout when zero
	ReadTimeout time.Duration
	// MaxConcurrent bounds in-flight rpc calls per chain, DefaultMaxConcurrent when zero
	MaxConcurrent int
}

// Client wraps read access to the ledger. Every call is bounded by the
// configured timeout; timeouts and transport failures are mapped onto the
// connectivity error class so callers can tell them from wrong answers.
type Client interface {
	Call(bCtx.Ctx, int32, common.Address, *big.Int, abi.ABI, string, ...interface{}) ([]interface{}, error)
	TransactionReceipt(bCtx.Ctx, int32, domain.TxHash) (*types.Receipt, error)
}

type clientImpl struct {
	clients     map[int32]*bEthereum.ThrottledClient
	readTimeout time.Duration
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent == 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	var anyerr error
	clients := make(map[int32]*bEthereum.ThrottledClient)
	for chainId, url := range cfg.RpcUrls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			anyerr = err
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("failed to dial rpc")
			// soft warning, still let the server start
			continue
		}
		clients[chainId] = bEthereum.NewThrottledClient(client, maxConcurrent)
	}
	readTimeout := cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = DefaultReadTimeout
	}
	return &clientImpl{
		clients:     clients,
		readTimeout: readTimeout,
	}, anyerr
}

func (c *clientImpl) Call(ctx bCtx.Ctx, chainId int32, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}

	callCtx, cancel := bCtx.WithTimeout(ctx, c.readTimeout)
	defer cancel()
	res, err := client.CallContract(callCtx, msg, blk)
	if err != nil {
		ctx.WithField("err", err).Error("client.CallContract failed")
		return nil, mapRpcError(err)
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (c *clientImpl) TransactionReceipt(ctx bCtx.Ctx, chainId int32, txHash domain.TxHash) (*types.Receipt, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}
	callCtx, cancel := bCtx.WithTimeout(ctx, c.readTimeout)
	defer cancel()
	receipt, err := client.TransactionReceipt(callCtx, common.HexToHash(string(txHash)))
	if err != nil {
		return nil, mapRpcError(err)
	}
	return receipt, nil
}

func mapRpcError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrLedgerTimeout
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, ethereum.NotFound) {
		return domain.ErrNotFound
	}
	return domain.ErrLedgerUnavailable
}
