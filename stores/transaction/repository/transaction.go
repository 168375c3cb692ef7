package repository

import (
	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/transaction"
	"github.com/platz/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type transactionRepoImpl struct {
	q query.Mongo
}

func NewTransactionRepo(q query.Mongo) transaction.Repo {
	return &transactionRepoImpl{q}
}

func (im *transactionRepoImpl) Create(ctx ctx.Ctx, t *transaction.Transaction) error {
	t.TxHash = t.TxHash.ToLower()
	t.ContractAddress = t.ContractAddress.ToLower()
	t.From = t.From.ToLower()
	t.To = t.To.ToLower()
	if err := im.q.Insert(ctx, domain.TableTransactions, t); err != nil {
		if err == query.ErrDuplicateKey {
			// tx hash already recorded, the caller treats this as already-done
			return domain.ErrConflict
		}
		ctx.WithFields(log.Fields{
			"err":         err,
			"transaction": *t,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *transactionRepoImpl) FindOne(ctx ctx.Ctx, txHash domain.TxHash) (*transaction.Transaction, error) {
	res := transaction.Transaction{}
	err := im.q.FindOne(ctx, domain.TableTransactions, bson.M{"_id": txHash.ToLower()}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"txHash": txHash,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *transactionRepoImpl) FindAll(ctx ctx.Ctx, opts ...transaction.FindAllOptionsFunc) ([]*transaction.Transaction, error) {
	options, err := transaction.GetFindAllOptions(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("transaction.GetFindAllOptions failed")
		return nil, err
	}

	qry := bson.M{}
	if options.Token != nil {
		qry["chainId"] = options.Token.ChainId
		qry["contractAddress"] = options.Token.ContractAddress
		qry["tokenID"] = options.Token.TokenId
	}
	if len(options.Types) > 0 {
		qry["type"] = bson.M{"$in": options.Types}
	}
	if options.CreatedAfter != nil {
		qry["createdAt"] = bson.M{"$gt": *options.CreatedAfter}
	}

	limit := int(0)
	sort := "-createdAt"
	if options.Limit != nil {
		limit = int(*options.Limit)
	}
	if options.SortBy != nil {
		sort = *options.SortBy
		if options.SortDir != nil && *options.SortDir == domain.SortDirDesc {
			sort = "-" + sort
		}
	}

	res := []*transaction.Transaction{}
	if err := im.q.Search(ctx, domain.TableTransactions, 0, limit, sort, qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}
