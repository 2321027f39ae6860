// Package throttle limits the rate of outbound Solr requests with a
// token bucket from [golang.org/x/time/rate].
//
// Wrap the transport of an [http.Client]:
//
//	rt, err := throttle.NewRoundTripper(20, 5, func() *slog.Logger { return logger }, http.DefaultTransport)
//	hc := &http.Client{Transport: rt}
//
// Requests beyond the burst block until a token is available or their
// context ends. The client package wires it through client.WithThrottle.
package throttle
