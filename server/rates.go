package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhkang/bondmath/rates"
)

// RateConversionRequest selects one conversion by name. Rate is the
// input in percent; the remaining fields are read only by the
// conversions that need them.
type RateConversionRequest struct {
	Conversion string  `json:"conversion" binding:"required"`
	Rate       float64 `json:"rate"`
	// TaxRatePct zero picks the Korean default for the tax conversions.
	TaxRatePct     float64 `json:"taxRatePct"`
	Years          float64 `json:"years"`
	Frequency      int     `json:"frequency"`
	DaysToMaturity int     `json:"daysToMaturity"`
	InflationPct   float64 `json:"inflationPct"`
	PayoutsPerYear int     `json:"payoutsPerYear"`
}

type RateConversionResponse struct {
	Conversion string  `json:"conversion"`
	Rate       float64 `json:"rate"`
	Result     float64 `json:"result"`
}

// ConvertRate dispatches to the rate-conversion functions by name.
func (h *Handler) ConvertRate(c *gin.Context) {
	var req RateConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	taxRate := req.TaxRatePct
	if taxRate == 0 {
		taxRate = rates.DefaultInterestTaxRate
	}

	var (
		result float64
		err    error
	)
	switch req.Conversion {
	case "after-tax":
		result = rates.AfterTax(req.Rate, taxRate)
	case "before-tax":
		result, err = rates.BeforeTax(req.Rate, taxRate)
	case "bank-equivalent":
		result, err = rates.BankEquivalentYield(req.Rate, taxRate)
	case "simple-from-compound":
		if req.Years <= 0 {
			h.badRequest(c, fmt.Errorf("conversion %q needs years > 0", req.Conversion))
			return
		}
		result = rates.SimpleFromCompound(req.Rate, req.Years)
	case "compound-from-simple":
		if req.Years <= 0 {
			h.badRequest(c, fmt.Errorf("conversion %q needs years > 0", req.Conversion))
			return
		}
		result = rates.CompoundFromSimple(req.Rate, req.Years)
	case "real-from-nominal":
		result = rates.RealFromNominal(req.Rate, req.InflationPct)
	case "periodic-from-annual":
		if req.Frequency <= 0 {
			h.badRequest(c, fmt.Errorf("conversion %q needs frequency > 0", req.Conversion))
			return
		}
		result = rates.PeriodicFromAnnual(req.Rate, req.Frequency)
	case "yield-from-discount":
		if req.DaysToMaturity <= 0 {
			h.badRequest(c, fmt.Errorf("conversion %q needs daysToMaturity > 0", req.Conversion))
			return
		}
		result = rates.YieldFromDiscount(req.Rate, req.DaysToMaturity)
	case "discount-from-yield":
		if req.DaysToMaturity <= 0 {
			h.badRequest(c, fmt.Errorf("conversion %q needs daysToMaturity > 0", req.Conversion))
			return
		}
		result = rates.DiscountFromYield(req.Rate, req.DaysToMaturity)
	case "bond-equivalent":
		result = rates.BondEquivalentYield(req.Rate)
	case "effective-annual":
		result = rates.EffectiveAnnualYield(req.Rate)
	case "effective-from-payout":
		result = rates.EffectiveAnnualFromPayout(req.Rate, req.PayoutsPerYear)
	default:
		h.badRequest(c, fmt.Errorf("unknown conversion %q", req.Conversion))
		return
	}
	if err != nil {
		h.engineError(c, err)
		return
	}

	c.JSON(http.StatusOK, RateConversionResponse{
		Conversion: req.Conversion,
		Rate:       req.Rate,
		Result:     result,
	})
}
