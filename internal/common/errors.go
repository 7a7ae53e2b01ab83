package common

import "errors"

// ErrorTokenNotFound means no bearer token is persisted.
var ErrorTokenNotFound = errors.New("token not found")
