package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"eventactivities/internal/domain"
)

func TestUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.User
		wantErr bool
		errIs   error
	}{
		{
			name: "found",
			id:   "user-uuid-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, email FROM users WHERE id = \$1`).
					WithArgs("user-uuid-1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
						AddRow("user-uuid-1", "Alice", "alice@example.com"))
			},
			want: &domain.User{ID: "user-uuid-1", Name: "Alice", Email: "alice@example.com"},
		},
		{
			name: "not found",
			id:   "nonexistent",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, email FROM users`).
					WithArgs("nonexistent").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "db error",
			id:   "user-uuid-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, email FROM users`).
					WithArgs("user-uuid-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
			errIs:   sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewUserRepository(db).GetByID(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_ListByIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("empty ids skip the query", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		got, err := NewUserRepository(db).ListByIDs(ctx, nil)
		require.NoError(t, err)
		require.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing ids are absent", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM users WHERE id = ANY\(\$1\)`).
			WithArgs(pq.Array([]string{"u1", "u2", "ghost"})).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
				AddRow("u1", "Alice", "alice@example.com").
				AddRow("u2", "Bob", "bob@example.com"))

		got, err := NewUserRepository(db).ListByIDs(ctx, []string{"u1", "u2", "ghost"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "bob@example.com", got[1].Email)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
