package checkin

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateDuplicate_UniqueViolations(t *testing.T) {
	// raw postgres error, seen when gorm error translation is off
	assert.ErrorIs(t, translateDuplicate(&pgconn.PgError{Code: "23505"}), ErrAlreadyToday)

	// translated error, seen with TranslateError enabled on either driver
	assert.ErrorIs(t, translateDuplicate(gorm.ErrDuplicatedKey), ErrAlreadyToday)
	wrapped := fmt.Errorf("insert checkin: %w", gorm.ErrDuplicatedKey)
	assert.ErrorIs(t, translateDuplicate(wrapped), ErrAlreadyToday)
}

func TestTranslateDuplicate_OtherErrorsPassThrough(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, error(fk), translateDuplicate(fk))

	assert.Equal(t, assert.AnError, translateDuplicate(assert.AnError))
}
