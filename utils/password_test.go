package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"Passw0rd", true},
		{"short1A", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if tt.valid {
			assert.NoError(t, err, tt.password)
		} else {
			assert.Error(t, err, tt.password)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("Passw0rd")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd", hashed)

	assert.True(t, CheckPassword(hashed, "Passw0rd"))
	assert.False(t, CheckPassword(hashed, "WrongPassw0rd"))
}
