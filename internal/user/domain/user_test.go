package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input    string
		expected Role
		ok       bool
	}{
		{input: "BUYER", expected: RoleBuyer, ok: true},
		{input: "seller", expected: RoleSeller, ok: true},
		{input: " Buyer ", expected: RoleBuyer, ok: true},
		{input: "admin", expected: Role("ADMIN"), ok: false},
		{input: "", expected: Role(""), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			role, ok := ParseRole(tt.input)
			assert.Equal(t, tt.expected, role)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestRole_IsValid(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, r.IsValid())
	}
	assert.False(t, Role("buyer").IsValid())
}
