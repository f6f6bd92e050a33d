package scoring

import (
	"math"
	"sort"

	"github.com/exportiq/tradescore/internal/domain/model"
)

// Rationale labels. One per threshold predicate.
const (
	reasonIntent     = "Strong Buyer Intent"
	reasonResponsive = "Highly Responsive"
	reasonEngagement = "Active Engagement"
	reasonVolume     = "High Volume Capacity"
	reasonLowTariff  = "Low Tariff Exposure"
	reasonBalanced   = "Balanced Performance"

	intentQuantile = 0.65
	maxReasons     = 3
)

// attachRationale fills Rationale for every scored lead. Thresholds are
// computed over the current scoring batch, so the tags are batch-relative:
// the same lead can read differently inside differently composed batches.
func attachRationale(scored []model.ScoredLead) {
	if len(scored) == 0 {
		return
	}

	intents := make([]float64, len(scored))
	responses := make([]float64, len(scored))
	views := make([]float64, len(scored))
	quantities := make([]float64, len(scored))
	tariffs := make([]float64, len(scored))
	for i := range scored {
		intents[i] = scored[i].IntentScore
		responses[i] = scored[i].PromptResponseScore
		views[i] = scored[i].ProfileViews
		quantities[i] = scored[i].QuantityTons
		tariffs[i] = scored[i].TariffImpact
	}

	intentBar := batchQuantile(intents, intentQuantile)
	responseBar := batchMedian(responses)
	viewsBar := batchMedian(views)
	quantityBar := batchMedian(quantities)
	tariffBar := batchMedian(tariffs)

	for i := range scored {
		var reasons []string
		if scored[i].IntentScore > intentBar {
			reasons = append(reasons, reasonIntent)
		}
		if scored[i].PromptResponseScore > responseBar {
			reasons = append(reasons, reasonResponsive)
		}
		if scored[i].ProfileViews > viewsBar {
			reasons = append(reasons, reasonEngagement)
		}
		if scored[i].QuantityTons > quantityBar {
			reasons = append(reasons, reasonVolume)
		}
		if scored[i].TariffImpact < tariffBar {
			reasons = append(reasons, reasonLowTariff)
		}
		if len(reasons) > maxReasons {
			reasons = reasons[:maxReasons]
		}
		if len(reasons) == 0 {
			reasons = []string{reasonBalanced}
		}
		scored[i].Rationale = reasons
	}
}

func batchMedian(vals []float64) float64 {
	return batchQuantile(vals, 0.5)
}

// batchQuantile interpolates linearly at q*(n-1) over the sorted batch.
func batchQuantile(vals []float64, q float64) float64 {
	n := len(vals)
	if n == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (pos-float64(lo))*(sorted[hi]-sorted[lo])
}
