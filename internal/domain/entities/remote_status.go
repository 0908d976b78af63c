package entities

import "net/http"

// StatusClass groups remote status codes by how callers must react.
type StatusClass int

const (
	// StatusSuccess is any 2xx.
	StatusSuccess StatusClass = iota
	// StatusAuthStale is a 401: the credential must be refreshed.
	StatusAuthStale
	// StatusNotFound is a 404, a business answer rather than a fault.
	StatusNotFound
	// StatusFatal is every other status. It is never retried.
	StatusFatal
)

// ClassifyStatus maps an HTTP status code to its StatusClass.
func ClassifyStatus(code int) StatusClass {
	switch {
	case code >= http.StatusOK && code < http.StatusMultipleChoices:
		return StatusSuccess
	case code == http.StatusUnauthorized:
		return StatusAuthStale
	case code == http.StatusNotFound:
		return StatusNotFound
	default:
		return StatusFatal
	}
}
