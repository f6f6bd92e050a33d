package metrics_test

import (
	"testing"

	"github.com/exportiq/tradescore/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a fresh metrics manager", t, func() {
		m := metrics.NewManager(metrics.WithNamespace("testns"))

		Convey("Then it owns a private registry", func() {
			So(m.Registry(), ShouldNotBeNil)
			So(m.Registry(), ShouldNotEqual, metrics.GetRegistry())
		})
	})

	Convey("Given the default manager", t, func() {
		Convey("When recording through the package helpers", func() {
			So(func() {
				metrics.RecordHTTPRequest("leads", "GET", "200")
				metrics.RecordHTTPRequestDuration("leads", "GET", 0.012)
				metrics.RecordPipelineRows("clean", 10)
				metrics.RecordPipelineDropped("clean", 2)
				metrics.RecordPipelineStageDuration("clean", 0.2)
				metrics.RecordDatasetLoadError()
				metrics.RecordScoredLeads(25)
				metrics.RecordMatchRequest()
				metrics.RecordScoringDuration(0.05)
			}, ShouldNotPanic)
		})

		Convey("When gathering the registry", func() {
			metrics.RecordMatchRequest()
			families, err := metrics.GetRegistry().Gather()

			Convey("Then the service collectors are present", func() {
				So(err, ShouldBeNil)
				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["tradescore_match_requests_total"], ShouldBeTrue)
				So(names["tradescore_scored_leads_total"], ShouldBeTrue)
				So(names["tradescore_pipeline_rows_processed_total"], ShouldBeTrue)
			})
		})
	})
}
