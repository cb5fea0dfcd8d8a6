package tomtejakt_test

import (
	"testing"

	"github.com/fwojciec/tomtejakt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListing_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *tomtejakt.Listing {
		return &tomtejakt.Listing{
			ID:       "123456789",
			FinnURL:  "https://www.finn.no/realestate/plots/ad.html?finnkode=123456789",
			Category: tomtejakt.CategoryPlot,
		}
	}

	t.Run("accepts valid listing", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, valid().Validate())
	})

	t.Run("requires ID", func(t *testing.T) {
		t.Parallel()

		l := valid()
		l.ID = ""

		err := l.Validate()
		require.Error(t, err)
		assert.Equal(t, tomtejakt.EINVALID, tomtejakt.ErrorCode(err))
	})

	t.Run("requires finn URL", func(t *testing.T) {
		t.Parallel()

		l := valid()
		l.FinnURL = ""

		err := l.Validate()
		require.Error(t, err)
		assert.Equal(t, tomtejakt.EINVALID, tomtejakt.ErrorCode(err))
	})

	t.Run("requires known category", func(t *testing.T) {
		t.Parallel()

		l := valid()
		l.Category = "castle"

		err := l.Validate()
		require.Error(t, err)
		assert.Equal(t, tomtejakt.EINVALID, tomtejakt.ErrorCode(err))
	})
}
