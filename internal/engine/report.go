package engine

import (
	"fmt"
	"strings"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/models"
)

// ReportData is the structured input to the report renderer. Tests and
// callers assert on these fields; the rendered text is presentation only.
type ReportData struct {
	Subject     *models.SubjectProperty
	Comparables []models.ComparableSale
	Confidence  models.ConfidenceTier

	MarketValue       float64
	MarketValueSource models.MarketValueSource
	BMVScore          float64

	Offer OfferTerms
	Yield YieldMetrics

	RentalSource models.RentalSource
	RentRange    *models.RentRange

	CreditsUsed int
	Verdict     Verdict
}

// RenderReport turns a structured valuation into the human-readable
// multi-section rationale stored in validationNotes.
func RenderReport(d ReportData) string {
	var sb strings.Builder

	sb.WriteString("=== MARKET VALUE ANALYSIS ===\n")
	sb.WriteString(fmt.Sprintf("Estimated market value: £%.0f (source: %s)\n",
		d.MarketValue, sourceLabel(d.MarketValueSource)))
	if d.MarketValueSource == models.SourceComparableSales {
		sb.WriteString(fmt.Sprintf("Comparable evidence confidence: %s (%d comparables)\n",
			d.Confidence, len(d.Comparables)))
	}

	if len(d.Comparables) > 0 {
		sb.WriteString("\n=== COMPARABLE SALES ===\n")
		for i, c := range d.Comparables {
			line := fmt.Sprintf("%d. %s - £%.0f (%s", i+1, addressOrPostcode(c), c.SalePrice,
				c.SaleDate.Format("Jan 2006"))
			if c.Bedrooms > 0 {
				line += fmt.Sprintf(", %d bed", c.Bedrooms)
			}
			if c.DistanceMiles != nil {
				line += fmt.Sprintf(", %.1f mi", *c.DistanceMiles)
			}
			line += ")\n"
			sb.WriteString(line)
		}
	}

	sb.WriteString("\n=== BMV BREAKDOWN ===\n")
	sb.WriteString(fmt.Sprintf("Asking price: £%.0f\n", d.Subject.AskingPrice))
	sb.WriteString(fmt.Sprintf("Below market value: %.2f%%\n", d.BMVScore))

	sb.WriteString("\n=== OFFER BREAKDOWN ===\n")
	sb.WriteString(fmt.Sprintf("Recommended offer: £%.0f (%.0f%% of market value)\n",
		d.Offer.Amount, d.Offer.Percentage))
	if d.Subject.EstimatedRefurbCost > 0 {
		sb.WriteString(fmt.Sprintf("Estimated refurb cost: £%.0f\n", d.Subject.EstimatedRefurbCost))
	}
	sb.WriteString(fmt.Sprintf("Profit potential: £%.0f\n", d.Offer.ProfitPotential))

	if d.Yield.AnnualRent > 0 {
		sb.WriteString("\n=== RENTAL YIELD ===\n")
		sb.WriteString(fmt.Sprintf("Monthly rent: £%.0f (source: %s)\n",
			d.Yield.MonthlyRent, rentalSourceLabel(d.RentalSource)))
		if d.RentRange != nil {
			sb.WriteString(fmt.Sprintf("Rent confidence range: £%.0f - £%.0f/month\n",
				d.RentRange.Min, d.RentRange.Max))
		}
		sb.WriteString(fmt.Sprintf("Gross yield: %.2f%% | Net yield: %.2f%%\n",
			d.Yield.GrossYield, d.Yield.NetYield))
		if d.Yield.RentPerSquareFoot > 0 {
			sb.WriteString(fmt.Sprintf("Rent per sq ft: £%.2f\n", d.Yield.RentPerSquareFoot))
		}
		if d.Subject.LocalAverageRent > 0 {
			sb.WriteString(fmt.Sprintf("Vs local average rent: %+.1f%%\n", d.Yield.RentVsLocalAverage))
		}
		sb.WriteString(fmt.Sprintf("Estimated monthly cash flow: £%.0f\n", d.Yield.EstimatedMonthlyCashFlow))
	}

	sb.WriteString("\n=== DATA USAGE ===\n")
	if d.CreditsUsed > 0 {
		sb.WriteString(fmt.Sprintf("API credits used: %d\n", d.CreditsUsed))
	} else {
		sb.WriteString("No API credits used (cached/manual data only)\n")
	}

	sb.WriteString("\n=== VERDICT ===\n")
	if d.Verdict.Passed {
		sb.WriteString(fmt.Sprintf("DEAL VALIDATED: %s\n", d.Verdict.Rating))
	} else {
		sb.WriteString("DEAL REJECTED\n")
		for _, reason := range d.Verdict.Reasons {
			sb.WriteString(fmt.Sprintf("- %s\n", reason))
		}
	}

	return sb.String()
}

func addressOrPostcode(c models.ComparableSale) string {
	if c.Address != "" {
		return c.Address
	}
	if c.Postcode != "" {
		return c.Postcode
	}
	return "Unknown address"
}

func sourceLabel(s models.MarketValueSource) string {
	switch s {
	case models.SourceComparableSales:
		return "comparable sales"
	case models.SourceManualEntry:
		return "manual entry"
	case models.SourceEstimated:
		return "estimated"
	}
	return string(s)
}

func rentalSourceLabel(s models.RentalSource) string {
	switch s {
	case models.RentalSourceManual:
		return "manual entry"
	case models.RentalSourceAPI:
		return "PropertyData API"
	case models.RentalSourceNone:
		return "none"
	}
	return string(s)
}
