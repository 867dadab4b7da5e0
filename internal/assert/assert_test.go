package assert_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invariant "github.com/yaklabco/docblock/internal/assert"
)

func TestThat(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { invariant.That(true, "never") })
	assert.Panics(t, func() { invariant.That(false, "boom %d", 1) })
}

func TestRecover(t *testing.T) {
	t.Parallel()

	run := func() (err error) {
		defer invariant.Recover(&err)
		invariant.Fail("token stack empty")
		return nil
	}

	err := run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, invariant.ErrInvariant))
	assert.Contains(t, err.Error(), "token stack empty")
}

func TestRecover_RepanicsForeignValues(t *testing.T) {
	t.Parallel()

	run := func() (err error) {
		defer invariant.Recover(&err)
		panic("not an assertion")
	}

	assert.PanicsWithValue(t, "not an assertion", func() { _ = run() })
}
