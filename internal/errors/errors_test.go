package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "product not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("test not found")

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, "test not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "quantity", Message: "quantity must be a positive integer"},
		{Field: "productId", Message: "productId is required"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)
}

func TestConflictError(t *testing.T) {
	err := NewConflictError("row is locked")

	ce, ok := IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, "row is locked", ce.Message)

	_, ok = IsConflictError(errors.New("other"))
	assert.False(t, ok)
}

func TestInsufficientStockError(t *testing.T) {
	err := NewInsufficientStockError(7, 10, 5)

	ise, ok := IsInsufficientStockError(err)
	assert.True(t, ok)
	assert.Equal(t, 7, ise.ProductID)
	assert.Equal(t, 10, ise.Requested)
	assert.Equal(t, 5, ise.Available)
	assert.Equal(t, "insufficient stock for product 7: requested 10, available 5", err.Error())
}

func TestInsufficientStockError_WithOtherError(t *testing.T) {
	_, ok := IsInsufficientStockError(errors.New("some other error"))
	assert.False(t, ok)
}

func TestInternalError_Creation(t *testing.T) {
	cause := errors.New("database error")
	err := NewInternalError("failed to query database", cause)

	assert.NotNil(t, err)
	assert.Equal(t, "failed to query database", err.Message)
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Equal(t, "failed to query database: database error", err.Error())
}
