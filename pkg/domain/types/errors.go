package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures for the controller boundary. Lower layers
// attach tags; the HTTP layer maps them to status codes.
var (
	TagValidation   = goerr.NewTag("validation")
	TagUnauthorized = goerr.NewTag("unauthorized")
	TagForbidden    = goerr.NewTag("forbidden")
	TagNotFound     = goerr.NewTag("not_found")
	TagNoData       = goerr.NewTag("no_data_ingested")
	TagUnavailable  = goerr.NewTag("dependency_unavailable")
	TagIntegrity    = goerr.NewTag("integrity")
)
