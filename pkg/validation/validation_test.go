package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPhone(t *testing.T) {
	valid := []string{"+998901234567", "998901234567", "1234567890", "+123456789012345"}
	invalid := []string{"12345", "+0123456789", "+1234567890123456", "+99890-123-45-67", "", "phone"}

	for _, p := range valid {
		assert.True(t, IsPhone(p), p)
	}
	for _, p := range invalid {
		assert.False(t, IsPhone(p), p)
	}
}

func TestIsRoomID(t *testing.T) {
	assert.True(t, IsRoomID("1"))
	assert.True(t, IsRoomID("family-suite_2"))
	assert.False(t, IsRoomID(""))
	assert.False(t, IsRoomID("room 1"))
	assert.False(t, IsRoomID("/confirm"))
}

func TestNew_StructTags(t *testing.T) {
	type request struct {
		Name  string `validate:"required,min=2"`
		Phone string `validate:"required,phone"`
	}
	v := New()

	require.NoError(t, v.Struct(request{Name: "Ann", Phone: "+998901234567"}))

	err := v.Struct(request{Name: "A", Phone: "12345"})
	require.Error(t, err)
	msg := Describe(err)
	assert.Contains(t, msg, "Name: failed on 'min=2'")
	assert.Contains(t, msg, "Phone: failed on 'phone'")
}

func TestFirstField(t *testing.T) {
	type request struct {
		Name  string `validate:"required,min=2"`
		Phone string `validate:"required,phone"`
	}
	v := New()

	assert.Equal(t, "Name", FirstField(v.Struct(request{Name: "A", Phone: "12345"})))
	assert.Equal(t, "Phone", FirstField(v.Struct(request{Name: "Ann", Phone: "12345"})))
	assert.Equal(t, "", FirstField(errors.New("not a validation error")))
	assert.Equal(t, "", FirstField(nil))
}
