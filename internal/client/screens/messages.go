package screens

import (
	"github.com/dmitrijs2005/authdemo/internal/client/client"
	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/client/validation"
)

// Fallbacks shown when the service gave no detail.
const (
	MsgLoginFailed        = "Login failed"
	MsgRegistrationFailed = "Registration failed"
	MsgFetchFailed        = "Failed to fetch data"
	MsgTokenNotFound      = "Token not found"
)

// FormResult is the outcome of submitting a form. Fields carries per-field
// validation messages, Banner a single service error. Route is where to go
// next, models.RouteNone to stay.
type FormResult struct {
	Route  models.Route
	Banner string
	Fields validation.FieldErrors
}

// OK reports whether the submission succeeded.
func (r FormResult) OK() bool {
	return r.Banner == "" && len(r.Fields) == 0
}

// bannerFor picks the service detail of err or the fallback.
func bannerFor(err error, fallback string) string {
	if d := client.Detail(err); d != "" {
		return d
	}
	return fallback
}
