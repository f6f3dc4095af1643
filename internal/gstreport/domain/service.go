package domain

import "context"

// Query carries the raw report parameters from the request. Empty fields
// get the service defaults; Inclusive is nil when the caller did not say.
type Query struct {
	From        string
	To          string
	HomeState   string
	Status      string
	RatePercent string
	Inclusive   *bool
}

// Result is the built report together with the parameters the service
// actually applied after defaulting.
type Result struct {
	Params Params `json:"params"`
	Report
}

type Service interface {
	BuildReport(ctx context.Context, q Query) (Result, error)
}
