// Package services contains the client's application services.
//
// SessionStore owns the single Session State of a client instance: the
// persisted bearer token, the Identity it produced and the derived
// authenticated flag. It is the only writer of that state; screens and front
// ends read it through State and IsAuthenticated.
//
// Results of validation are tagged with a generation. An operation that
// starts later invalidates the result of an earlier one still in flight, so a
// late response can never overwrite newer state.
package services
