package password

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		cost     int
	}{
		{name: "regular password", password: "password123", cost: bcrypt.MinCost},
		{name: "password with special chars", password: "p@ssw0rd!@#$%^&*()", cost: bcrypt.MinCost},
		{name: "unicode password", password: "пароль-заметки", cost: bcrypt.MinCost},
		{name: "cost out of range falls back to default", password: "short", cost: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := Hash(tt.password, tt.cost)
			require.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)

			assert.NoError(t, Compare(hash, tt.password))
		})
	}
}

func TestHash_FallbackCost(t *testing.T) {
	hash, err := Hash("secret", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestCompare(t *testing.T) {
	correctHash, err := Hash("correct_password", bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name         string
		hash         string
		password     string
		wantErr      bool
		wantMismatch bool
	}{
		{name: "matching password", hash: correctHash, password: "correct_password"},
		{name: "wrong password", hash: correctHash, password: "wrong_password", wantErr: true, wantMismatch: true},
		{name: "empty password", hash: correctHash, password: "", wantErr: true, wantMismatch: true},
		{name: "plaintext stored instead of hash", hash: "correct_password", password: "correct_password", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Compare(tt.hash, tt.password)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMismatch, errors.Is(err, ErrMismatch))
		})
	}
}

func TestHash_SamePasswordDifferentSalt(t *testing.T) {
	hash1, err := Hash("password", bcrypt.MinCost)
	require.NoError(t, err)
	hash2, err := Hash("password", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
}

func TestHash_TooLong(t *testing.T) {
	_, err := Hash(strings.Repeat("x", 80), bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrTooLong)

	// предел считается в байтах: 36 кириллических символов = 72 байта
	hash, err := Hash(strings.Repeat("ж", 36), bcrypt.MinCost)
	require.NoError(t, err)
	assert.NoError(t, Compare(hash, strings.Repeat("ж", 36)))

	_, err = Hash(strings.Repeat("ж", 37), bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrTooLong)
}
