package throttle_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/adamwoolhether/solrnode/client/throttle"
)

func ExampleNewRoundTripper() {
	solr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"responseHeader":{"status":0,"QTime":0},"status":"OK"}`)
	}))
	defer solr.Close()

	// Two pings may go out at once, further ones at 50 per second.
	rt, err := throttle.NewRoundTripper(50, 2, nil, http.DefaultTransport)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	hc := &http.Client{Transport: rt}

	for range 3 {
		resp, err := hc.Get(solr.URL + "/solr/products/admin/ping")
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		resp.Body.Close()
		fmt.Println(resp.StatusCode)
	}
	// Output:
	// 200
	// 200
	// 200
}

func ExampleNewRoundTripper_invalid() {
	_, err := throttle.NewRoundTripper(0, 5, nil, nil)
	fmt.Println(errors.Is(err, throttle.ErrMustNotBeZero))
	fmt.Println(err)
	// Output:
	// true
	// rps[0] and burst[5] must be greater than zero
}
