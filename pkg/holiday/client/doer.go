package client

//go:generate mockgen -source=doer.go -destination=mocks/mocks.go -package=mocks

import "net/http"

// HTTPDoer issues a single HTTP request. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}
