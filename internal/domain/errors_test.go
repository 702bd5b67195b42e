package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aelexs/app3/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsStartupError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"ErrListen", domain.ErrListen, true},
		{"ErrConfigRequired", domain.ErrConfigRequired, true},
		{"ErrConfigInvalid", domain.ErrConfigInvalid, true},
		{"ErrNotFound", domain.ErrNotFound, false},
		{"wrapped ErrListen", fmt.Errorf("%w: address already in use", domain.ErrListen), true},
		{"random error", errors.New("something else"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.IsStartupError(tt.err))
		})
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	all := []error{
		domain.ErrNotFound,
		domain.ErrMethodNotAllowed,
		domain.ErrUnavailable,
		domain.ErrListen,
		domain.ErrConfigRequired,
		domain.ErrConfigInvalid,
	}

	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}
