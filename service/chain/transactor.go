package chain

import (
	"crypto/ecdsa"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/platz/goapi/base/backoff"
	bCtx "github.com/platz/goapi/base/ctx"
	bEthereum "github.com/platz/goapi/base/ethereum"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/domain"
	"golang.org/x/xerrors"
)

// Transactor submits signed transactions to the ledger and waits for
// inclusion. Submission is never auto-retried: a retry of a mutating call is
// a second transaction, and deciding that belongs to the caller.
type Transactor interface {
	Send(c bCtx.Ctx, chainId int32, to common.Address, value *big.Int, _abi abi.ABI, method string, params ...interface{}) (domain.TxHash, error)
	// WaitMined blocks until the transaction is included or the context is
	// cancelled. An included-but-reverted transaction surfaces as
	// domain.ErrSettlementFailed.
	WaitMined(c bCtx.Ctx, chainId int32, txHash domain.TxHash) (*types.Receipt, error)
}

type TransactorCfg struct {
	RpcUrls map[int32]string
	// PrivateKey signs marketplace transactions, hex encoded without 0x
	PrivateKey string
	// PollInterval between inclusion checks, one second when zero
	PollInterval time.Duration
}

type transactorImpl struct {
	clients      map[int32]*bEthereum.ThrottledClient
	key          *ecdsa.PrivateKey
	sender       common.Address
	pollInterval time.Duration
}

func NewTransactor(ctx bCtx.Ctx, cfg *TransactorCfg) (Transactor, error) {
	key, err := crypto.HexToECDSA(cfg.PrivateKey)
	if err != nil {
		return nil, xerrors.Errorf("parse private key: %w", err)
	}
	clients := make(map[int32]*bEthereum.ThrottledClient)
	for chainId, url := range cfg.RpcUrls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("failed to dial rpc")
			continue
		}
		clients[chainId] = bEthereum.NewThrottledClient(client, DefaultMaxConcurrent)
	}
	pollInterval := cfg.PollInterval
	if pollInterval == 0 {
		pollInterval = time.Second
	}
	return &transactorImpl{
		clients:      clients,
		key:          key,
		sender:       crypto.PubkeyToAddress(key.PublicKey),
		pollInterval: pollInterval,
	}, nil
}

func (t *transactorImpl) Send(ctx bCtx.Ctx, chainId int32, to common.Address, value *big.Int, _abi abi.ABI, method string, params ...interface{}) (domain.TxHash, error) {
	client, ok := t.clients[chainId]
	if !ok {
		return "", ErrUnsupportedChain
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"err":    err,
		}).Error("abi.Pack failed")
		return "", err
	}

	nonce, err := client.PendingNonceAt(ctx, t.sender)
	if err != nil {
		return "", mapRpcError(err)
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return "", mapRpcError(err)
	}
	gasLimit, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From:  t.sender,
		To:    &to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"err":    err,
		}).Error("EstimateGas failed")
		return "", mapRpcError(err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(big.NewInt(int64(chainId))), t.key)
	if err != nil {
		return "", err
	}
	if err := client.SendTransaction(ctx, signed); err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"tx":     signed.Hash().Hex(),
			"err":    err,
		}).Error("SendTransaction failed")
		return "", mapRpcError(err)
	}
	return domain.TxHash(signed.Hash().Hex()), nil
}

func (t *transactorImpl) WaitMined(ctx bCtx.Ctx, chainId int32, txHash domain.TxHash) (*types.Receipt, error) {
	client, ok := t.clients[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}

	hash := common.HexToHash(string(txHash))
	bo := backoff.NewLinear(t.pollInterval, 10*t.pollInterval)
	for {
		receipt, err := client.TransactionReceipt(ctx, hash)
		if err == nil {
			if receipt.Status == types.ReceiptStatusFailed {
				return receipt, domain.ErrSettlementFailed
			}
			return receipt, nil
		}
		if err != ethereum.NotFound {
			ctx.WithFields(log.Fields{
				"tx":  txHash,
				"err": err,
			}).Warn("TransactionReceipt failed, still waiting")
		}
		if err := bo.Backoff(ctx); err != nil {
			// context cancelled, the transaction may still land later
			return nil, err
		}
	}
}
