package swagger_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/exportiq/tradescore/internal/adapters/http/swagger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegister(t *testing.T) {
	Convey("Given the documentation routes", t, func() {
		mux := http.NewServeMux()
		swagger.Register(context.Background(), mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("When fetching the OpenAPI document", func() {
			res, err := http.Get(srv.URL + "/openapi.yaml")
			So(err, ShouldBeNil)
			defer res.Body.Close()

			body, err := io.ReadAll(res.Body)
			So(err, ShouldBeNil)

			Convey("Then the embedded spec is served", func() {
				So(res.StatusCode, ShouldEqual, http.StatusOK)
				So(res.Header.Get("Content-Type"), ShouldContainSubstring, "yaml")
				So(string(body), ShouldContainSubstring, "TradeScore API")
				So(string(body), ShouldContainSubstring, "/match")
			})
		})

		Convey("When fetching the docs page", func() {
			res, err := http.Get(srv.URL + "/api-docs")
			So(err, ShouldBeNil)
			defer res.Body.Close()

			body, err := io.ReadAll(res.Body)
			So(err, ShouldBeNil)

			Convey("Then the viewer HTML points at the spec", func() {
				So(res.StatusCode, ShouldEqual, http.StatusOK)
				So(strings.Contains(string(body), "/openapi.yaml"), ShouldBeTrue)
			})
		})
	})
}

func TestRegisterNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		Convey("Then registration panics loudly", func() {
			So(func() { swagger.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}
