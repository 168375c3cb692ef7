package repository

import (
	"time"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/audit"
	"github.com/platz/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type auditRepoImpl struct {
	q query.Mongo
}

func NewAuditRepo(q query.Mongo) audit.Repo {
	return &auditRepoImpl{q}
}

func (im *auditRepoImpl) Insert(ctx ctx.Ctx, e *audit.Entry) error {
	e.ContractAddress = e.ContractAddress.ToLower()
	e.Actor = e.Actor.ToLower()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if err := im.q.Insert(ctx, domain.TableValidationAudit, e); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"entry": *e,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *auditRepoImpl) FindByBidId(ctx ctx.Ctx, bidId string) ([]*audit.Entry, error) {
	res := []*audit.Entry{}
	if err := im.q.Search(ctx, domain.TableValidationAudit, 0, 0, "-createdAt", bson.M{"bidId": bidId}, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"bidId": bidId,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}
