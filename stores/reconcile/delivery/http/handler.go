package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	bCtx "github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/delivery"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/landtoken"
	"github.com/platz/goapi/domain/reconcile"
	"github.com/platz/goapi/middleware"
)

type handler struct {
	resolver      reconcile.Resolver
	landTokenRepo landtoken.Repo
}

func New(e *echo.Echo, resolver reconcile.Resolver, landTokenRepo landtoken.Repo) {
	h := &handler{resolver, landTokenRepo}

	g := e.Group("/tokens/:chainId/:contract/:tokenId")
	g.GET("", h.getToken, middleware.IsValidAddress("contract"))
	g.GET("/owner", h.resolveOwner, middleware.IsValidAddress("contract"))
	g.POST("/sync-ownership", h.syncOwnership, middleware.IsValidAddress("contract"))
}

func (h *handler) bindToken(c echo.Context) (landtoken.Id, error) {
	type params struct {
		ChainId  domain.ChainId `param:"chainId"`
		Contract domain.Address `param:"contract"`
		TokenId  domain.TokenId `param:"tokenId"`
	}
	p := params{}
	if err := c.Bind(&p); err != nil {
		return landtoken.Id{}, err
	}
	return landtoken.Id{
		ChainId:         p.ChainId,
		ContractAddress: p.Contract,
		TokenId:         p.TokenId,
	}, nil
}

func (h *handler) getToken(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	token, err := h.bindToken(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.landTokenRepo.FindOne(ctx, token)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) resolveOwner(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	token, err := h.bindToken(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.resolver.ResolveOwner(ctx, token)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) syncOwnership(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	token, err := h.bindToken(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	owner, err := h.resolver.SyncOwnershipWithBlockchain(ctx, token)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	res := struct {
		Owner domain.Address `json:"owner"`
	}{
		Owner: owner,
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
