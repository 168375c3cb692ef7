package abi

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"
)

var LandAuctionABI abi.ABI

var landAuctionABI = `[{"type":"function","name":"createListing","constant":false,"payable":false,"inputs":[{"type":"address","name":"nft"},{"type":"uint256","name":"tokenId"},{"type":"uint256","name":"price"}],"outputs":[]},{"type":"function","name":"cancelListing","constant":false,"payable":false,"inputs":[{"type":"address","name":"nft"},{"type":"uint256","name":"tokenId"}],"outputs":[]},{"type":"function","name":"placeBid","constant":false,"stateMutability":"payable","payable":true,"inputs":[{"type":"address","name":"nft"},{"type":"uint256","name":"tokenId"}],"outputs":[]},{"type":"function","name":"acceptBid","constant":false,"payable":false,"inputs":[{"type":"address","name":"nft"},{"type":"uint256","name":"tokenId"}],"outputs":[]},{"type":"function","name":"withdrawBid","constant":false,"payable":false,"inputs":[{"type":"address","name":"nft"},{"type":"uint256","name":"tokenId"}],"outputs":[]},{"type":"function","name":"purchase","constant":false,"stateMutability":"payable","payable":true,"inputs":[{"type":"address","name":"nft"},{"type":"uint256","name":"tokenId"}],"outputs":[]},{"type":"function","name":"getListing","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"address","name":"nft"},{"type":"uint256","name":"tokenId"}],"outputs":[{"type":"address","name":"seller"},{"type":"uint256","name":"price"},{"type":"uint8","name":"state"}]},{"type":"function","name":"highestBid","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"address","name":"nft"},{"type":"uint256","name":"tokenId"}],"outputs":[{"type":"address","name":"bidder"},{"type":"uint256","name":"amount"},{"type":"uint256","name":"placedAt"}]},{"type":"event","anonymous":false,"name":"BidPlaced","inputs":[{"type":"address","name":"nft","indexed":true},{"type":"uint256","name":"tokenId","indexed":true},{"type":"address","name":"bidder","indexed":true},{"type":"uint256","name":"amount"}]},{"type":"event","anonymous":false,"name":"BidWithdrawn","inputs":[{"type":"address","name":"nft","indexed":true},{"type":"uint256","name":"tokenId","indexed":true},{"type":"address","name":"bidder","indexed":true},{"type":"uint256","name":"amount"}]},{"type":"event","anonymous":false,"name":"Settled","inputs":[{"type":"address","name":"nft","indexed":true},{"type":"uint256","name":"tokenId","indexed":true},{"type":"address","name":"seller"},{"type":"address","name":"buyer"},{"type":"uint256","name":"price"},{"type":"uint256","name":"fee"}]}]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(landAuctionABI))
	if err != nil {
		panic("Failed to parse land auction abi")
	}
	LandAuctionABI = _abi
}

// LandAuctionSettledLog is the decoded Settled event emitted by the auction
// contract on bid acceptance and direct purchase.
type LandAuctionSettledLog struct {
	Nft     common.Address // indexed
	TokenId *big.Int       // indexed
	Seller  common.Address
	Buyer   common.Address
	Price   *big.Int
	Fee     *big.Int
}

func ToLandAuctionSettledLog(log *types.Log) (*LandAuctionSettledLog, error) {
	if len(log.Topics) != 3 {
		return nil, xerrors.Errorf("unexpected topics count %d", len(log.Topics))
	}
	res := LandAuctionSettledLog{}
	if err := LandAuctionABI.UnpackIntoInterface(&res, "Settled", log.Data); err != nil {
		return nil, err
	}
	res.Nft = common.BytesToAddress(log.Topics[1].Bytes())
	res.TokenId = new(big.Int).SetBytes(log.Topics[2].Bytes())
	return &res, nil
}
