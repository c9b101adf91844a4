package errs_test

import (
	"errors"
	"testing"

	"tableserve/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("items")

		assert.Equal(t, "items", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: items", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("items", cause)

		assert.Equal(t, "items", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: items (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("limit", 500, 1, 100)

		assert.Equal(t, "limit", err.ParamName)
		assert.Equal(t, 500, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 100, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 500 is limit, min value is 1, max value is 100", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("tableId")

		assert.Equal(t, "tableId", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: tableId", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("tableId", cause)

		assert.Equal(t, "tableId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: tableId (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestStatusIsInvalidError(t *testing.T) {
	t.Run("NewStatusIsInvalidError", func(t *testing.T) {
		err := errs.NewStatusIsInvalidError("banana")

		assert.Equal(t, "banana", err.Value)
		require.NoError(t, err.Cause)
		assert.Equal(t, "status is invalid: banana", err.Error())
		assert.Equal(t, errs.ErrStatusIsInvalid, err.Unwrap())
	})

	t.Run("NewStatusIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("unknown enum value")
		err := errs.NewStatusIsInvalidErrorWithCause("banana", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "status is invalid: banana (cause: unknown enum value)", err.Error())
	})
}

func TestTransitionForbiddenError(t *testing.T) {
	t.Run("NewTransitionForbiddenError", func(t *testing.T) {
		err := errs.NewTransitionForbiddenError("delivered", "pending")

		assert.Equal(t, "delivered", err.From)
		assert.Equal(t, "pending", err.To)
		assert.Equal(t, "transition is forbidden: delivered -> pending", err.Error())
		assert.Equal(t, errs.ErrTransitionForbidden, err.Unwrap())
	})

	t.Run("NewTransitionForbiddenErrorWithCause", func(t *testing.T) {
		cause := errors.New("automated origin")
		err := errs.NewTransitionForbiddenErrorWithCause("pending", "ready", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "transition is forbidden: pending -> ready (cause: automated origin)", err.Error())
	})
}

func TestTransportUnavailableError(t *testing.T) {
	t.Run("NewTransportUnavailableError", func(t *testing.T) {
		err := errs.NewTransportUnavailableError("robot/dispatch")

		assert.Equal(t, "robot/dispatch", err.Topic)
		assert.Equal(t, "transport is unavailable: robot/dispatch", err.Error())
		assert.Equal(t, errs.ErrTransportUnavailable, err.Unwrap())
	})

	t.Run("NewTransportUnavailableErrorWithCause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewTransportUnavailableErrorWithCause("orders/snapshot", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "transport is unavailable: orders/snapshot (cause: connection reset)", err.Error())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "status is invalid", errs.ErrStatusIsInvalid.Error())
		assert.Equal(t, "transition is forbidden", errs.ErrTransitionForbidden.Error())
		assert.Equal(t, "transport is unavailable", errs.ErrTransportUnavailable.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("items"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsOutOfRangeError("limit", 500, 1, 100), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, errs.NewValueIsRequiredError("tableId"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewStatusIsInvalidError("banana"), errs.ErrStatusIsInvalid)
		require.ErrorIs(t, errs.NewTransitionForbiddenError("delivered", "pending"), errs.ErrTransitionForbidden)
		require.ErrorIs(t, errs.NewTransportUnavailableError("robot/dispatch"), errs.ErrTransportUnavailable)
	})
}
