package client

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceError_MatchesKind(t *testing.T) {
	err := fmt.Errorf("login: %w", &ServiceError{Kind: ErrInvalidCredentials, Status: 401, Detail: "bad password"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "bad password", Detail(err))
	assert.Equal(t, "login: invalid credentials: bad password", err.Error())
	assert.False(t, IsTransient(err))
}

func TestServiceError_WrapsCause(t *testing.T) {
	err := &ServiceError{Kind: ErrRequestFailed, Err: context.DeadlineExceeded}

	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, IsTransient(err))
	assert.Empty(t, Detail(err))
	assert.Equal(t, "request failed: context deadline exceeded", err.Error())
}

func TestServiceError_StatusOnly(t *testing.T) {
	err := &ServiceError{Kind: ErrUnauthorized, Status: 401}
	assert.Equal(t, "unauthorized: status 401", err.Error())
}

func TestDetail_PlainError(t *testing.T) {
	assert.Empty(t, Detail(errors.New("boom")))
	assert.Empty(t, Detail(nil))
}
