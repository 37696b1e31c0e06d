package core

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStatus string

func TestTransitions_Check(t *testing.T) {
	transitions := Transitions[testStatus]{
		"Borrador":  {"Publicado", "Archivado"},
		"Publicado": {"Archivado"},
	}

	tests := []struct {
		from, to testStatus
		allowed  bool
	}{
		{from: "Borrador", to: "Publicado", allowed: true},
		{from: "Borrador", to: "Borrador", allowed: true},
		{from: "Publicado", to: "Archivado", allowed: true},
		{from: "Publicado", to: "Borrador"},
		{from: "Archivado", to: "Archivado", allowed: true},
		{from: "Archivado", to: "Publicado"},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+" -> "+string(tt.to), func(t *testing.T) {
			err := transitions.Check(tt.from, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			require.True(t, IsValidation(err), err)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, ErrInvalidData, vErr.Err)
			assert.Equal(t, []FieldError{{
				Field: "estado",
				Error: "No se puede cambiar el estado de " + string(tt.from) + " a " + string(tt.to),
			}}, vErr.Fields)
		})
	}
}

func TestOneOf(t *testing.T) {
	assert.True(t, OneOf(testStatus("b"), "a", "b"))
	assert.False(t, OneOf(testStatus("c"), "a", "b"))
	assert.False(t, OneOf(testStatus("a")))
}
