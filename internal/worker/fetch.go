package worker

import "net/http"

// Fetch performs req over rt without modifying it. Any HTTP status counts as
// success; only transport errors fail, and they fail as NetworkFailure.
func Fetch(rt http.RoundTripper, req *http.Request) *Future {
	if rt == nil {
		rt = http.DefaultTransport
	}
	return Go(func() (*http.Response, error) {
		resp, err := rt.RoundTrip(req)
		if err != nil {
			if resp != nil && resp.Body != nil {
				resp.Body.Close()
			}
			return nil, ErrNetworkFailure(requestURL(req), err)
		}
		return resp, nil
	})
}

func requestURL(req *http.Request) string {
	if req == nil || req.URL == nil {
		return ""
	}
	return req.URL.String()
}
