package match_test

import (
	"testing"

	"github.com/exportiq/tradescore/internal/domain/match"
	"github.com/exportiq/tradescore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func lead(id, industry string, quantity, score float64) model.ScoredLead {
	return model.ScoredLead{
		ExporterLead: model.ExporterLead{
			ExporterID:   id,
			Industry:     industry,
			QuantityTons: quantity,
		},
		LeadScore: score,
	}
}

func TestMatcher_Match(t *testing.T) {
	Convey("Given a matcher with the default configuration", t, func() {
		m := match.New()

		Convey("When a buyer fits one exporter perfectly", func() {
			buyer := model.BuyerRequest{
				Industry:         "Automotive",
				RequiredQuantity: 500,
				RiskTolerance:    "Low",
				IntentScore:      80,
			}
			scored := []model.ScoredLead{lead("E-1", "Automotive", 500, 90)}

			results := m.Match(buyer, scored)

			Convey("Then the composite blend lands on the expected value", func() {
				So(results, ShouldHaveLength, 1)
				So(results[0].QuantityFit, ShouldEqual, 1)
				So(results[0].IntentAlignment, ShouldEqual, 0.8)
				// (0.5*90 + 0.3*100 + 0.2*80) * 0.95
				So(results[0].MatchScore, ShouldAlmostEqual, 86.45, 1e-9)
				So(results[0].Rank, ShouldEqual, 1)
			})
		})

		Convey("When no exporter serves the buyer's industry", func() {
			buyer := model.BuyerRequest{Industry: "Aerospace"}
			scored := []model.ScoredLead{lead("E-1", "Textiles", 100, 50)}

			results := m.Match(buyer, scored)

			Convey("Then the result is empty, not an error", func() {
				So(results, ShouldBeEmpty)
			})
		})

		Convey("When industries differ only in spacing and case", func() {
			buyer := model.BuyerRequest{Industry: "  tExTiLeS "}
			results := m.Match(buyer, []model.ScoredLead{lead("E-1", "Textiles", 100, 50)})

			Convey("Then exact-normalized matching still pairs them", func() {
				So(results, ShouldHaveLength, 1)
			})
		})

		Convey("When more candidates exist than the top-k", func() {
			var scored []model.ScoredLead
			for i := 0; i < 8; i++ {
				scored = append(scored, lead(string(rune('a'+i)), "Pharma", 100, float64(10*i)))
			}

			results := m.Match(model.BuyerRequest{Industry: "Pharma", RequiredQuantity: 100}, scored)

			Convey("Then only the top five return, best first", func() {
				So(results, ShouldHaveLength, 5)
				So(results[0].LeadScore, ShouldEqual, 70)
				for i := 1; i < len(results); i++ {
					So(results[i].MatchScore, ShouldBeLessThanOrEqualTo, results[i-1].MatchScore)
					So(results[i].Rank, ShouldEqual, i+1)
				}
			})
		})

		Convey("When risk tolerance varies", func() {
			scored := []model.ScoredLead{lead("E-1", "Chemicals", 100, 80)}
			base := model.BuyerRequest{Industry: "Chemicals", RequiredQuantity: 100, IntentScore: 50}

			low := base
			low.RiskTolerance = "low"
			med := base
			med.RiskTolerance = "medium"
			high := base
			high.RiskTolerance = "high"

			Convey("Then higher tolerance tiers pay a larger penalty", func() {
				lowScore := m.Match(low, scored)[0].MatchScore
				medScore := m.Match(med, scored)[0].MatchScore
				highScore := m.Match(high, scored)[0].MatchScore
				So(lowScore, ShouldBeGreaterThan, medScore)
				So(medScore, ShouldBeGreaterThan, highScore)
			})

			Convey("And an unrecognized tier uses the default penalty", func() {
				odd := base
				odd.RiskTolerance = "Extreme"
				So(m.RiskPenalty("Extreme"), ShouldEqual, 0.10)
				So(m.Match(odd, scored)[0].MatchScore, ShouldAlmostEqual,
					m.Match(med, scored)[0].MatchScore, 1e-9)
			})
		})
	})

	Convey("Given a matcher with a custom penalty table", t, func() {
		m := match.New(match.WithRiskPenalties(map[string]float64{"Cautious": 0.5}, 0.25))

		Convey("Then tier lookup is case-insensitive with the custom fallback", func() {
			So(m.RiskPenalty("CAUTIOUS"), ShouldEqual, 0.5)
			So(m.RiskPenalty("anything"), ShouldEqual, 0.25)
		})
	})
}

func TestQuantityFit(t *testing.T) {
	Convey("Given the quantity fit curve", t, func() {
		Convey("Then a perfect fit reads 1 and decays with the gap", func() {
			So(match.QuantityFit(500, 500), ShouldEqual, 1)
			So(match.QuantityFit(500, 400), ShouldBeLessThan, match.QuantityFit(500, 450))
			So(match.QuantityFit(0, 1e9), ShouldBeGreaterThan, 0)
		})
	})
}

func TestCompatibilityScore(t *testing.T) {
	Convey("Given an exporter and a buyer profile", t, func() {
		exporter := model.ScoredLead{
			ExporterLead: model.ExporterLead{
				Industry:         "Automotive",
				ShipmentValueUSD: 450000,
			},
			LeadScore: 90,
		}

		Convey("When every sub-score applies", func() {
			buyer := match.BuyerProfile{
				Industry:    "Automotive",
				RiskLevel:   "low",
				TradeVolume: 400000,
				SuccessRate: 10,
			}

			Convey("Then the points sum as specified", func() {
				// 30 industry + 20 low risk + 20 near volume + 15 high lead + 10 success
				So(match.CompatibilityScore(exporter, buyer), ShouldEqual, 95)
			})
		})

		Convey("When the volume gap widens", func() {
			buyer := match.BuyerProfile{Industry: "Automotive", TradeVolume: 200000}

			Convey("Then the mid-band points apply", func() {
				// 30 industry + 10 mid volume + 15 high lead
				So(match.CompatibilityScore(exporter, buyer), ShouldEqual, 55)
			})
		})

		Convey("When sub-scores overflow the cap", func() {
			buyer := match.BuyerProfile{
				Industry:    "Automotive",
				RiskLevel:   "low",
				TradeVolume: 450000,
				SuccessRate: 40,
			}

			Convey("Then the score caps at 100", func() {
				So(match.CompatibilityScore(exporter, buyer), ShouldEqual, 100)
			})
		})
	})
}

func TestGenerateMatches(t *testing.T) {
	Convey("Given several candidate buyers", t, func() {
		exporter := lead("E-1", "Textiles", 100, 95)
		buyers := []match.BuyerProfile{
			{Name: "weak", Industry: "Pharma"},
			{Name: "strong", Industry: "Textiles", RiskLevel: "low", SuccessRate: 20},
			{Name: "middle", Industry: "Textiles"},
		}

		out := match.GenerateMatches(exporter, buyers)

		Convey("Then buyers rank by descending compatibility", func() {
			So(out, ShouldHaveLength, 3)
			So(out[0].Name, ShouldEqual, "strong")
			So(out[1].Name, ShouldEqual, "middle")
			So(out[2].Name, ShouldEqual, "weak")
		})
	})
}
