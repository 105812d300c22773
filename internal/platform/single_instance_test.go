package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockPort_InRangeAndStable(t *testing.T) {
	for _, name := range []string{"ExamTimer", "", "another app"} {
		port := lockPort(name)
		assert.GreaterOrEqual(t, port, lockPortMin, name)
		assert.LessOrEqual(t, port, lockPortMax, name)
		assert.Equal(t, port, lockPort(name), name)
	}
	assert.Equal(t, lockPort("ExamTimer"), lockPort("  examtimer "))
}

func TestAcquireSingleInstance(t *testing.T) {
	const name = "examtimer-single-instance-test"

	guard, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	assert.Equal(t, LockAddress(name), guard.Address())

	_, err = AcquireSingleInstance(name)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())
	assert.NoError(t, guard.Release(), "second release is a no-op")

	again, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	assert.NoError(t, again.Release())
}

func TestInstanceGuard_Nil(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
}
