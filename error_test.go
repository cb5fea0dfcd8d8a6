package tomtejakt_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/tomtejakt"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns code of application error", func(t *testing.T) {
		t.Parallel()

		err := tomtejakt.Errorf(tomtejakt.EDECODE, "no payload marker found")

		assert.Equal(t, tomtejakt.EDECODE, tomtejakt.ErrorCode(err))
		assert.Equal(t, "no payload marker found", tomtejakt.ErrorMessage(err))
	})

	t.Run("unwraps nested application error", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("page 3: %w", tomtejakt.Errorf(tomtejakt.EUNAVAILABLE, "HTTP 503"))

		assert.Equal(t, tomtejakt.EUNAVAILABLE, tomtejakt.ErrorCode(err))
	})

	t.Run("non-application error is internal", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, tomtejakt.EINTERNAL, tomtejakt.ErrorCode(errors.New("boom")))
		assert.Equal(t, "Internal error.", tomtejakt.ErrorMessage(errors.New("boom")))
	})

	t.Run("nil error has no code", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, tomtejakt.ErrorCode(nil))
		assert.Empty(t, tomtejakt.ErrorMessage(nil))
	})
}
