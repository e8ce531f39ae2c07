package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dhkang/bondmath/bond"
	"github.com/dhkang/bondmath/marketdata"
	"github.com/dhkang/bondmath/rates"
)

const dateLayout = "2006-01-02"

// Handler exposes the bond engine over HTTP. The engine itself is pure
// and stateless, so concurrent requests need no coordination.
type Handler struct {
	logger    *logrus.Logger
	etfYields []marketdata.ETFYield
}

func NewHandler(logger *logrus.Logger, etfYields []marketdata.ETFYield) *Handler {
	return &Handler{logger: logger, etfYields: etfYields}
}

type BondRequest struct {
	Name            string  `json:"name"`
	Issuer          string  `json:"issuer"`
	BondType        string  `json:"bondType"`
	Currency        string  `json:"currency" binding:"required,oneof=KRW USD"`
	FaceValue       float64 `json:"faceValue" binding:"required,gt=0"`
	CouponRate      float64 `json:"couponRate"`
	CouponFrequency int     `json:"couponFrequency"`
	IssueDate       string  `json:"issueDate" binding:"required"`
	MaturityDate    string  `json:"maturityDate" binding:"required"`
}

type AnalyzeRequest struct {
	Bond           BondRequest `json:"bond" binding:"required"`
	SettlementDate string      `json:"settlementDate" binding:"required"`
	Input          string      `json:"input" binding:"required,oneof=price yield"`
	Value          float64     `json:"value" binding:"required"`
	IncludeTax     bool        `json:"includeTax"`
	TaxRatePct     float64     `json:"taxRatePct"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func (r BondRequest) toBond() (bond.Bond, error) {
	issue, err := time.Parse(dateLayout, r.IssueDate)
	if err != nil {
		return bond.Bond{}, err
	}
	maturity, err := time.Parse(dateLayout, r.MaturityDate)
	if err != nil {
		return bond.Bond{}, err
	}
	return bond.NewBond(bond.Bond{
		Name:            r.Name,
		Issuer:          r.Issuer,
		Type:            bond.Type(r.BondType),
		Currency:        bond.Currency(r.Currency),
		FaceValue:       r.FaceValue,
		CouponRate:      r.CouponRate,
		CouponFrequency: r.CouponFrequency,
		IssueDate:       issue,
		MaturityDate:    maturity,
	})
}

// Analyze runs a full price↔yield calculation.
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	b, err := req.Bond.toBond()
	if err != nil {
		h.badRequest(c, err)
		return
	}
	settlement, err := time.Parse(dateLayout, req.SettlementDate)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	result, err := bond.Analyze(bond.AnalysisRequest{
		Bond:           b,
		SettlementDate: settlement,
		Input:          bond.InputKind(req.Input),
		Value:          req.Value,
		IncludeTax:     req.IncludeTax,
		TaxRatePct:     req.TaxRatePct,
	})
	if err != nil {
		h.engineError(c, err)
		return
	}

	if !result.YTM.Converged {
		h.logger.WithFields(logrus.Fields{
			"request_id": RequestID(c),
			"method":     result.YTM.Method,
			"iterations": result.YTM.Iterations,
			"residual":   result.YTM.Error,
		}).Warn("yield solver did not converge")
	}

	c.JSON(http.StatusOK, result)
}

type DepositComparisonRequest struct {
	DepositRatePct float64 `json:"depositRatePct" binding:"required"`
	BondYTMPct     float64 `json:"bondYtmPct" binding:"required"`
	CouponRatePct  float64 `json:"couponRatePct" binding:"required"`
	PricePct       float64 `json:"pricePct" binding:"required,gt=0"`
}

// CompareDeposit compares a taxed deposit against an after-tax bond return.
func (h *Handler) CompareDeposit(c *gin.Context) {
	var req DepositComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, rates.CompareDepositVsBond(
		req.DepositRatePct, req.BondYTMPct, req.CouponRatePct, req.PricePct))
}

// ETFComparison renders the pre-computed distribution-yield table with
// after-tax and bank-equivalent columns.
func (h *Handler) ETFComparison(c *gin.Context) {
	etfTax := queryFloat(c, "etfTax", rates.DefaultInterestTaxRate)
	bankTax := queryFloat(c, "bankTax", rates.DefaultInterestTaxRate)
	compound := c.DefaultQuery("compound", "true") == "true"

	rows, err := marketdata.Compare(h.etfYields, etfTax, bankTax, compound)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func queryFloat(c *gin.Context, key string, fallback float64) float64 {
	raw, ok := c.GetQuery(key)
	if !ok {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	h.logger.WithField("request_id", RequestID(c)).WithError(err).Warn("bad request")
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), RequestID: RequestID(c)})
}

// engineError maps the engine's sentinel errors to client errors;
// anything else is a server fault.
func (h *Handler) engineError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, bond.ErrInvalidInput),
		errors.Is(err, bond.ErrWrongInstrumentType),
		errors.Is(err, bond.ErrUnsupportedFrequency),
		errors.Is(err, bond.ErrUnsupportedConvention),
		errors.Is(err, bond.ErrMissingParameter),
		errors.Is(err, rates.ErrInvalidTaxRate):
		status = http.StatusUnprocessableEntity
	}

	h.logger.WithField("request_id", RequestID(c)).WithError(err).Warn("calculation rejected")
	c.JSON(status, ErrorResponse{Error: err.Error(), RequestID: RequestID(c)})
}

const requestIDKey = "request_id"

// RequestIDMiddleware stamps every request with a correlation id.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// RequestID returns the correlation id stamped by the middleware.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
