package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidClock(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"24:00", false},
		{"9:30", false},
		{"09:60", false},
		{"09-30", false},
		{"09:30:00", false},
		{"", false},
		{"hh:mm", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidClock(tt.in), "ValidClock(%q)", tt.in)
	}
}

func TestMinutesOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"00:01", 1},
		{"09:30", 570},
		{"23:59", 1439},
		{"garbage", -1},
		{"", -1},
		{"ab:cd", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MinutesOfDay(tt.in), "MinutesOfDay(%q)", tt.in)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("SUPERUSER").Valid())
	assert.False(t, Role("").Valid())
}
