package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerEnabled(t *testing.T) {
	t.Run("On and off values", func(t *testing.T) {
		m := NewManager("books_require_auth=on, dark_mode=off, beta=true, legacy=0")

		assert.True(t, m.Enabled("books_require_auth", 0))
		assert.True(t, m.Enabled("beta", 0))
		assert.False(t, m.Enabled("dark_mode", 0))
		assert.False(t, m.Enabled("legacy", 0))
	})

	t.Run("Unknown flags default off", func(t *testing.T) {
		m := NewManager("")
		assert.False(t, m.Enabled("anything", 1))
	})

	t.Run("Names are case-insensitive", func(t *testing.T) {
		m := NewManager("Books_Require_Auth=ON")
		assert.True(t, m.Enabled("books_require_auth", 0))
	})

	t.Run("Malformed entries are skipped", func(t *testing.T) {
		m := NewManager("oops,=,key=,books_require_auth=on")
		assert.True(t, m.Enabled("books_require_auth", 0))
		assert.False(t, m.Enabled("oops", 0))
	})

	t.Run("Percentage rollout is deterministic per user", func(t *testing.T) {
		m := NewManager("new_feed=50%")

		first := m.Enabled("new_feed", 42)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, m.Enabled("new_feed", 42))
		}
	})

	t.Run("Rollout boundaries", func(t *testing.T) {
		assert.True(t, NewManager("f=100%").Enabled("f", 7))
		assert.False(t, NewManager("f=0%").Enabled("f", 7))
		// Anonymous users never land in a partial rollout.
		assert.False(t, NewManager("f=99%").Enabled("f", 0))
	})

	t.Run("Nil manager is safe", func(t *testing.T) {
		var m *Manager
		assert.False(t, m.Enabled("anything", 1))
	})
}
