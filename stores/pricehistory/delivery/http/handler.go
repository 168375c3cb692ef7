package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	bCtx "github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/delivery"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/landtoken"
	"github.com/platz/goapi/domain/pricehistory"
)

type handler struct {
	priceHistory     pricehistory.UseCase
	priceHistoryRepo pricehistory.Repo
}

func New(e *echo.Echo, priceHistory pricehistory.UseCase, priceHistoryRepo pricehistory.Repo) {
	h := &handler{priceHistory, priceHistoryRepo}

	e.GET("/pricehistories", h.search)
	e.GET("/tokens/:chainId/:contract/:tokenId/stats", h.getStats)
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		ChainId         *domain.ChainId          `query:"chainId"`
		ContractAddress *domain.Address          `query:"contractAddress"`
		TokenId         *domain.TokenId          `query:"tokenId"`
		EventTypes      []pricehistory.EventType `query:"eventType"`
		Limit           int32                    `query:"limit"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []pricehistory.FindAllOptionsFunc{
		pricehistory.WithSort("createdAt", domain.SortDirDesc),
	}
	if p.ChainId != nil && p.ContractAddress != nil {
		if p.TokenId != nil {
			opts = append(opts, pricehistory.WithToken(landtoken.Id{
				ChainId:         *p.ChainId,
				ContractAddress: *p.ContractAddress,
				TokenId:         *p.TokenId,
			}))
		} else {
			opts = append(opts, pricehistory.WithCollection(*p.ChainId, *p.ContractAddress))
		}
	}
	if len(p.EventTypes) > 0 {
		opts = append(opts, pricehistory.WithEventTypes(p.EventTypes...))
	}
	if p.Limit > 0 {
		opts = append(opts, pricehistory.WithLimit(p.Limit))
	}

	res, err := h.priceHistoryRepo.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getStats(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		ChainId  domain.ChainId `param:"chainId"`
		Contract domain.Address `param:"contract"`
		TokenId  domain.TokenId `param:"tokenId"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.priceHistory.Get24hStats(ctx, landtoken.Id{
		ChainId:         p.ChainId,
		ContractAddress: p.Contract,
		TokenId:         p.TokenId,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
