package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/platz/goapi/base/ctx"
	bValidator "github.com/platz/goapi/base/validator"
	"github.com/platz/goapi/domain"
	mockAudit "github.com/platz/goapi/domain/audit/mocks"
	dBid "github.com/platz/goapi/domain/bid"
	mockBid "github.com/platz/goapi/domain/bid/mocks"
)

type testsuite struct {
	suite.Suite

	e        *echo.Echo
	bidUC    *mockBid.UseCase
	bidRepo  *mockBid.Repo
	auditRep *mockAudit.Repo
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.e = echo.New()
	t.e.Validator = bValidator.NewCustomValidator(validator.New())
	t.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", bCtx.Background())
			return next(c)
		}
	})
	t.bidUC = &mockBid.UseCase{}
	t.bidRepo = &mockBid.Repo{}
	t.auditRep = &mockAudit.Repo{}
	New(t.e, t.bidUC, t.bidRepo, t.auditRep)
}

func (t *testsuite) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	t.e.ServeHTTP(rec, req)
	return rec
}

func (t *testsuite) TestPlaceBid() {
	t.bidUC.
		On("PlaceBid", mock.Anything, mock.Anything, domain.Address("0xbidder"), "1000").
		Return(&dBid.PlaceBidResult{TxHash: "0xabc"}, nil)

	rec := t.request(http.MethodPost, "/bids", `{"chainId":1,"contractAddress":"0xland","tokenId":"7","bidder":"0xbidder","amount":"1000"}`)
	t.Equal(http.StatusOK, rec.Code)
	t.Contains(rec.Body.String(), `"txHash":"0xabc"`)
}

func (t *testsuite) TestPlaceBidMissingAmount() {
	rec := t.request(http.MethodPost, "/bids", `{"chainId":1,"contractAddress":"0xland","tokenId":"7","bidder":"0xbidder"}`)
	t.Equal(http.StatusBadRequest, rec.Code)
	t.bidUC.AssertNotCalled(t.T(), "PlaceBid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (t *testsuite) TestPlaceBidLedgerDown() {
	t.bidUC.
		On("PlaceBid", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrLedgerUnavailable)

	rec := t.request(http.MethodPost, "/bids", `{"chainId":1,"contractAddress":"0xland","tokenId":"7","bidder":"0xbidder","amount":"1000"}`)
	t.Equal(http.StatusServiceUnavailable, rec.Code)
}

func (t *testsuite) TestAcceptBidDuplicateSale() {
	t.bidUC.
		On("AcceptBid", mock.Anything, "bid-1", domain.Address("0xowner")).
		Return(nil, &domain.DuplicateSaleError{TxHash: "0xprior"})

	rec := t.request(http.MethodPost, "/bids/bid-1/accept", `{"caller":"0xowner"}`)
	t.Equal(http.StatusConflict, rec.Code)
}

func (t *testsuite) TestWithdrawBidNotOwner() {
	t.bidUC.
		On("WithdrawBid", mock.Anything, "bid-1", domain.Address("0xstranger")).
		Return(domain.TxHash(""), domain.ErrNotOwner)

	rec := t.request(http.MethodPost, "/bids/bid-1/withdraw", `{"caller":"0xstranger"}`)
	t.Equal(http.StatusForbidden, rec.Code)
}

func (t *testsuite) TestGetBidNotFound() {
	t.bidRepo.
		On("FindOne", mock.Anything, "missing").
		Return(nil, domain.ErrNotFound)

	rec := t.request(http.MethodGet, "/bids/missing", "")
	t.Equal(http.StatusNotFound, rec.Code)
}
