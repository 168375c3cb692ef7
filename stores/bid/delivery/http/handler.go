package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	bCtx "github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/delivery"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/audit"
	dBid "github.com/platz/goapi/domain/bid"
	"github.com/platz/goapi/domain/landtoken"
)

type handler struct {
	bid      dBid.UseCase
	bidRepo  dBid.Repo
	auditRep audit.Repo
}

func New(e *echo.Echo, bid dBid.UseCase, bidRepo dBid.Repo, auditRepo audit.Repo) {
	h := &handler{bid, bidRepo, auditRepo}

	gs := e.Group("/bids")
	gs.GET("", h.search)
	gs.POST("", h.placeBid)

	g := e.Group("/bids/:id")
	g.GET("", h.getBid)
	g.POST("/accept", h.acceptBid)
	g.POST("/withdraw", h.withdrawBid)
	g.GET("/audits", h.getAudits)
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		ChainId         *domain.ChainId `query:"chainId"`
		ContractAddress *domain.Address `query:"contractAddress"`
		TokenId         *domain.TokenId `query:"tokenId"`
		Bidder          *domain.Address `query:"bidder"`
		Statuses        []dBid.Status   `query:"status"`
		Offset          int32           `query:"offset"`
		Limit           int32           `query:"limit"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []dBid.FindAllOptionsFunc{
		dBid.WithPagination(p.Offset, p.Limit),
	}
	if p.ChainId != nil && p.ContractAddress != nil && p.TokenId != nil {
		opts = append(opts, dBid.WithToken(landtoken.Id{
			ChainId:         *p.ChainId,
			ContractAddress: *p.ContractAddress,
			TokenId:         *p.TokenId,
		}))
	}
	if p.Bidder != nil {
		opts = append(opts, dBid.WithBidder(*p.Bidder))
	}
	if len(p.Statuses) > 0 {
		opts = append(opts, dBid.WithStatuses(p.Statuses...))
	}

	res, err := h.bidRepo.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getBid(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		Id string `param:"id" validate:"required"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.bidRepo.FindOne(ctx, p.Id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		ChainId         domain.ChainId `json:"chainId" validate:"required"`
		ContractAddress domain.Address `json:"contractAddress" validate:"required"`
		TokenId         domain.TokenId `json:"tokenId" validate:"required"`
		Bidder          domain.Address `json:"bidder" validate:"required"`
		// Amount in wei
		Amount string `json:"amount" validate:"required"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	token := landtoken.Id{
		ChainId:         p.ChainId,
		ContractAddress: p.ContractAddress,
		TokenId:         p.TokenId,
	}
	res, err := h.bid.PlaceBid(ctx, token, p.Bidder, p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) acceptBid(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		Id     string         `param:"id" validate:"required"`
		Caller domain.Address `json:"caller" validate:"required"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.bid.AcceptBid(ctx, p.Id, p.Caller)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) withdrawBid(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		Id     string         `param:"id" validate:"required"`
		Caller domain.Address `json:"caller" validate:"required"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	txHash, err := h.bid.WithdrawBid(ctx, p.Id, p.Caller)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	res := struct {
		TxHash domain.TxHash `json:"txHash"`
	}{
		TxHash: txHash,
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getAudits(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		Id string `param:"id" validate:"required"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.auditRep.FindByBidId(ctx, p.Id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
