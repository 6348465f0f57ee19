package parchment_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/telmet/parchment"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns code of application error", func(t *testing.T) {
		t.Parallel()

		err := parchment.Errorf(parchment.EINVALID, "bad container")
		assert.Equal(t, parchment.EINVALID, parchment.ErrorCode(err))
	})

	t.Run("unwraps wrapped application errors", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("outer: %w", parchment.Errorf(parchment.ENOTFOUND, "gone"))
		assert.Equal(t, parchment.ENOTFOUND, parchment.ErrorCode(err))
	})

	t.Run("returns EINTERNAL for non-application errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, parchment.EINTERNAL, parchment.ErrorCode(errors.New("boom")))
	})

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", parchment.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("returns message of application error", func(t *testing.T) {
		t.Parallel()

		err := parchment.Errorf(parchment.EINVALID, "missing %s", "rootfile")
		assert.Equal(t, "missing rootfile", parchment.ErrorMessage(err))
	})

	t.Run("masks non-application errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Internal error.", parchment.ErrorMessage(errors.New("boom")))
	})
}
