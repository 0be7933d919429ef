package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldErrorsAccumulate(t *testing.T) {
	fe := FieldErrors{}
	assert.False(t, fe.HasErrors())

	fe.Add("email", "email is required")
	fe.Add("email", "email must be valid")
	fe.Add("password", "password is required")

	assert.True(t, fe.HasErrors())
	assert.Equal(t, []string{"email is required", "email must be valid"}, fe["email"])
	assert.Equal(t, []string{"password is required"}, fe["password"])
	assert.Equal(t, "validation failed", fe.Error())
}

func TestEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last+tag@sub.example.co",
		"UPPER@EXAMPLE.ORG",
	}
	for _, s := range valid {
		assert.True(t, Email(s), "Email(%q)", s)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@example",
		"user @example.com",
	}
	for _, s := range invalid {
		assert.False(t, Email(s), "Email(%q)", s)
	}
}
