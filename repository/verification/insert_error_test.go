package verification

import (
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestInsertError(t *testing.T) {
	other := errors.New("bad connection")
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "duplicate target", err: &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'restaurant-r1' for key 'uq_verification_target'"}, want: ErrStaleVersion},
		{name: "wrapped duplicate", err: errors.Join(errors.New("exec"), &mysql.MySQLError{Number: 1062}), want: ErrStaleVersion},
		{name: "other mysql error", err: &mysql.MySQLError{Number: 1213}, want: nil},
		{name: "driver error", err: other, want: other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := insertError(tt.err)
			if tt.want == nil {
				assert.Same(t, tt.err, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
