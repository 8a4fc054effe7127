package engine

// Yield model constants.
const (
	// netYieldFactor is a flat 15% running-cost assumption covering
	// management, maintenance and voids.
	netYieldFactor = 0.85

	// monthlyCostRate approximates ownership costs as 0.4% of purchase
	// price per month (a rough 4.8%-of-price annual proxy, intentionally
	// coarse).
	monthlyCostRate = 0.004

	// goodYieldThreshold is the gross-yield percentage at or above which
	// a deal is flagged as having good rental income.
	goodYieldThreshold = 6.0
)

// YieldMetrics are the rental-income figures derived for a deal.
type YieldMetrics struct {
	MonthlyRent              float64
	AnnualRent               float64
	GrossYield               float64
	NetYield                 float64
	RentPerSquareFoot        float64
	RentVsLocalAverage       float64
	EstimatedMonthlyCashFlow float64
	HasGoodYield             bool
}

// CalculateYield derives rental metrics from the asking price and a
// monthly rent figure (0 when unknown). Yield percentages are only
// populated when both the asking price and the annual rent are positive.
func CalculateYield(askingPrice, monthlyRent, squareFeet, localAverageRent float64) YieldMetrics {
	m := YieldMetrics{
		MonthlyRent: monthlyRent,
		AnnualRent:  monthlyRent * 12,
	}

	if askingPrice > 0 && m.AnnualRent > 0 {
		m.GrossYield = m.AnnualRent / askingPrice * 100
		m.NetYield = m.GrossYield * netYieldFactor
	}
	if squareFeet > 0 {
		m.RentPerSquareFoot = monthlyRent / squareFeet
	}
	if localAverageRent > 0 {
		m.RentVsLocalAverage = (monthlyRent - localAverageRent) / localAverageRent * 100
	}
	m.EstimatedMonthlyCashFlow = monthlyRent - askingPrice*monthlyCostRate
	m.HasGoodYield = m.GrossYield >= goodYieldThreshold

	return m
}
