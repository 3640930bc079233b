package labhttp_test

import (
	"testing"

	"github.com/advdv/labhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverser(t *testing.T) {
	rev := labhttp.NewReverser()

	t.Run("should allow naming patterns", func(t *testing.T) {
		s := rev.Named("home", "GET /")
		assert.Equal(t, "GET /", s)

		require.NoError(t, rev.NamedPattern("details", "GET /detalles/{id...}"))
		assert.Equal(t, []string{"details", "home"}, rev.Names())
	})

	t.Run("should reverse named patterns", func(t *testing.T) {
		res, err := rev.Reverse("home")
		require.NoError(t, err)
		assert.Equal(t, "/", res)

		res, err = rev.Reverse("details", "OSC001")
		require.NoError(t, err)
		assert.Equal(t, "/detalles/OSC001", res)
	})

	t.Run("should escape wildcard values", func(t *testing.T) {
		res, err := rev.Reverse("details", "péndulo simple+1")
		require.NoError(t, err)
		assert.Equal(t, "/detalles/p%C3%A9ndulo+simple%2B1", res)
	})

	t.Run("should error if name is taken", func(t *testing.T) {
		err := rev.NamedPattern("home", "GET /index.html")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `route name "home" is already taken`)
	})

	t.Run("should panic for Named error", func(t *testing.T) {
		assert.PanicsWithValue(t, `labhttp: name "bogus": pattern "" must start with a method`, func() {
			rev.Named("bogus", "")
		})
	})

	t.Run("should reject unsupported wildcards", func(t *testing.T) {
		for _, pat := range []string{"GET /a/{id}", "GET /a/{id...}/b", "GET /a{id...}", "GET /a/{...}", "GET nope"} {
			require.Error(t, rev.NamedPattern("x-"+pat, pat), pat)
		}
	})

	t.Run("should error if reversing unknown name", func(t *testing.T) {
		_, err := rev.Reverse("bogus")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `no route named "bogus", known: [details home]`)
	})

	t.Run("should error if url building fails", func(t *testing.T) {
		_, err := rev.Reverse("details")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one value")

		_, err = rev.Reverse("home", "extra")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "takes no values")
	})
}
