package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/vetclinic/internal/apperr"
)

func TestKindOf(t *testing.T) {
	notFound := apperr.NotFound("patient")

	tests := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{name: "validation", err: apperr.Validation("name is required"), want: apperr.KindValidation},
		{name: "not found", err: notFound, want: apperr.KindNotFound},
		{name: "wrapped not found", err: fmt.Errorf("loading: %w", notFound), want: apperr.KindNotFound},
		{name: "plain error", err: errors.New("connection refused"), want: apperr.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.KindOf(tt.err))
		})
	}

	assert.Equal(t, "patient not found", notFound.Error())
}

func TestRequired(t *testing.T) {
	assert.NoError(t, apperr.Required("name", "Rex"))

	for _, blank := range []string{"", "   ", "\t\n"} {
		err := apperr.Required("owner_name", blank)
		assert.EqualError(t, err, "owner_name is required")
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
}
