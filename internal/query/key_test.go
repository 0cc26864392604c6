package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{name: "no params", key: NewKey("tuitions:all"), want: "tuitions:all"},
		{name: "one param", key: NewKey("tuitions:mine", "email", "s@example.com"), want: "tuitions:mine|email=s@example.com"},
		{name: "params sorted", key: NewKey("users", "z", "1", "a", "2"), want: "users|a=2|z=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.String())
		})
	}
}

func TestKey_StableAcrossConstruction(t *testing.T) {
	a := Key{Resource: "r", Params: map[string]string{"x": "1", "y": "2"}}
	b := NewKey("r", "y", "2", "x", "1")
	assert.Equal(t, a.String(), b.String())
}

func TestKey_Complete(t *testing.T) {
	assert.True(t, NewKey("tuitions:all").Complete())
	assert.True(t, NewKey("tuitions:mine", "email", "a@b.c").Complete())
	assert.False(t, NewKey("tuitions:mine", "email", "").Complete())
}
