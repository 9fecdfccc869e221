package postgres_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"innstay/infras/postgres"
)

func TestIsSerializationFailure(t *testing.T) {
	serializationErr := &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "bare serialization abort",
			err:  serializationErr,
			want: true,
		},
		{
			name: "serialization abort wrapped at commit",
			err:  fmt.Errorf("failed to commit transaction: %w", serializationErr),
			want: true,
		},
		{
			name: "other postgres error",
			err:  &pq.Error{Code: "23503", Message: "foreign key violation"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, postgres.IsSerializationFailure(tt.err))
		})
	}
}
