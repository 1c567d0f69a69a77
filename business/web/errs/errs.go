// Package errs provides the response forms used when the API cannot satisfy
// a request. The transport never surfaces failures through HTTP status codes,
// so these bodies carry everything a caller can know.
package errs

// Response is the form used for API responses from failures in the API. The
// Status field carries the "recovered" marker when a handler fault was caught
// at the transport boundary.
type Response struct {
	Status             string   `json:"status,omitempty"`
	Error              string   `json:"error"`
	AvailableEndpoints []string `json:"available_endpoints,omitempty"`
}

// NewRecovered constructs the response body for a fault caught at the
// transport boundary.
func NewRecovered(err error) Response {
	return Response{
		Status: "recovered",
		Error:  err.Error(),
	}
}

// NewUnknownPath constructs the response body for a request that matched no
// registered route.
func NewUnknownPath(endpoints []string) Response {
	return Response{
		Error:              "Endpoint not found",
		AvailableEndpoints: endpoints,
	}
}
