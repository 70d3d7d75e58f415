package authz

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/warebase/warebase/internal/shared"
)

func TestGrantErrorForeignKeyViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", Message: "insert or update violates foreign key constraint"}
	err := grantError(fmt.Errorf("insert grant: %w", fk))
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGrantErrorPassesThroughOtherFailures(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	require.NotErrorIs(t, grantError(unique), shared.ErrNotFound)

	plain := errors.New("connection reset")
	require.Equal(t, plain, grantError(plain))
}
