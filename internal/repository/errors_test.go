package repository

import (
	"errors"
	"fmt"
	"testing"

	"microblog/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"record not found", gorm.ErrRecordNotFound, models.CodeNotFound},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, models.CodeConflict},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, models.CodeConflict},
		{"sqlite unique message", errors.New("UNIQUE constraint failed: users.api_key"), models.CodeConflict},
		{"gorm foreign key", gorm.ErrForeignKeyViolated, models.CodeNotFound},
		{"pg foreign key", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), models.CodeNotFound},
		{"app error passes through", models.NewForbiddenError("nope"), models.CodeForbidden},
		{"anything else", errors.New("connection reset"), models.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err, "User", 1)
			assert.True(t, models.HasCode(got, tt.code), "got %v", got)
		})
	}

	assert.NoError(t, translateError(nil, "User", 1))
}
