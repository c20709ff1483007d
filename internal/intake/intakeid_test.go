package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocateID_Monotonic(t *testing.T) {
	assert.Equal(t, "HIF-001", AllocateID(1, "HIF-", 3))
	assert.Equal(t, "HIF-002", AllocateID(2, "HIF-", 3))
	assert.Equal(t, "HIF-003", AllocateID(3, "HIF-", 3))
}

func TestAllocateID_WiderThanWidthIsNotTruncated(t *testing.T) {
	assert.Equal(t, "HIF-1234", AllocateID(1234, "HIF-", 3))
}

func TestAllocateID_CustomPrefixAndWidth(t *testing.T) {
	assert.Equal(t, "X00042", AllocateID(42, "X", 5))
}
