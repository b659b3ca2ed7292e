package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verbalang/verba/internal/types"
)

func TestRegisterAndFreeze(t *testing.T) {
	t.Parallel()

	reg := New(types.DefaultRegistry())
	require.NoError(t, reg.Register("low", 10, "low %number%"))
	require.NoError(t, reg.Register("high", 90, "high %number%"))
	require.NoError(t, reg.Register("mid a", 50, "mid a"))
	require.NoError(t, reg.Register("mid b", 50, "mid b"))
	reg.Freeze()

	names := make([]string, 0, len(reg.Entries()))
	for _, e := range reg.Entries() {
		names = append(names, e.Name)
	}
	// Descending priority, registration order for ties.
	assert.Equal(t, []string{"high", "mid a", "mid b", "low"}, names)
}

func TestRegisterErrors(t *testing.T) {
	t.Parallel()

	t.Run("bad notation", func(t *testing.T) {
		t.Parallel()
		reg := New(types.DefaultRegistry())
		err := reg.Register("broken", 10, "oops %nosuchtype%")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
	})

	t.Run("no patterns", func(t *testing.T) {
		t.Parallel()
		reg := New(types.DefaultRegistry())
		assert.Error(t, reg.Register("empty", 10))
	})

	t.Run("frozen registry", func(t *testing.T) {
		t.Parallel()
		reg := New(types.DefaultRegistry())
		require.NoError(t, reg.Register("early", 10, "early"))
		reg.Freeze()
		assert.Error(t, reg.Register("late", 10, "late"))
	})
}

func TestEntryKeepsNotations(t *testing.T) {
	t.Parallel()

	reg := New(types.DefaultRegistry())
	require.NoError(t, reg.Register("condition", 30, "if %=boolean%", "else"))
	entry := reg.Entries()[0]
	assert.Equal(t, []string{"if %=boolean%", "else"}, entry.Notations)
	assert.Len(t, entry.Patterns, 2)
}

func TestForms(t *testing.T) {
	t.Parallel()

	reg := New(types.DefaultRegistry())
	require.NoError(t, reg.Register("wait", 50, "wait [for ]%timespan%"))
	require.NoError(t, reg.Register("send", 50, "(send|print) %objects%"))
	reg.Freeze()

	forms := reg.Forms()
	assert.ElementsMatch(t, []string{
		"wait for %timespan%",
		"wait %timespan%",
	}, forms["wait"])
	assert.ElementsMatch(t, []string{
		"send %objects%",
		"print %objects%",
	}, forms["send"])
}
