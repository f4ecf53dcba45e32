package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("07701234567"))
	assert.True(t, ValidPhone("07912345678"))
	assert.False(t, ValidPhone("07201234567"))
	assert.False(t, ValidPhone("0770123456"))
	assert.False(t, ValidPhone("+9647701234567"))
}

func TestInternationalPhone(t *testing.T) {
	assert.Equal(t, "+9647701234567", InternationalPhone("07701234567"))
	assert.Equal(t, "+9647701234567", InternationalPhone("+9647701234567"))
}

func TestParseTargetKind(t *testing.T) {
	k, err := ParseTargetKind(" Post ")
	require.NoError(t, err)
	assert.Equal(t, TargetPost, k)

	_, err = ParseTargetKind("banner")
	assert.ErrorIs(t, err, ErrUnknownTarget)
}

func TestIsStaff(t *testing.T) {
	assert.True(t, IsStaff(RoleAdmin))
	assert.True(t, IsStaff(RoleModerator))
	assert.False(t, IsStaff(RoleUser))
}
