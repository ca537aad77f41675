package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanMutatePost(t *testing.T) {
	tests := []struct {
		name    string
		acting  string
		owner   string
		allowed bool
	}{
		{"owner", "42", "42", true},
		{"other user", "7", "42", false},
		{"prefix is not a match", "4", "42", false},
		{"empty actor", "", "", false},
		{"padded id", "42 ", "42", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanMutatePost(tt.acting, tt.owner))
		})
	}
}
