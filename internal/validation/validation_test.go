package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"required,max=5"`
	Email string `json:"email" validate:"omitempty,email"`
	Seat  string `json:"seat" validate:"omitempty,oneof=window aisle"`
	Plain string `validate:"omitempty,alphanum"`
}

func TestStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   sample
		wantMsg string
	}{
		{name: "valid", input: sample{Name: "Ada"}},
		{name: "missing name", input: sample{}, wantMsg: "name is required"},
		{name: "long name", input: sample{Name: "Adelaide"}, wantMsg: "name must be at most 5 characters"},
		{name: "bad email", input: sample{Name: "Ada", Email: "nope"}, wantMsg: "email must be a valid email"},
		{name: "bad choice", input: sample{Name: "Ada", Seat: "roof"}, wantMsg: "seat must be one of: window aisle"},
		{name: "untagged field name", input: sample{Name: "Ada", Plain: "a b"}, wantMsg: "plain may only contain letters and digits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Struct(tt.input)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestStruct_JoinsAllFailures(t *testing.T) {
	t.Parallel()

	err := Struct(sample{Email: "nope"})
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "name is required; email must be a valid email")
}
