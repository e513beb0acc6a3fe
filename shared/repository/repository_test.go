package repository_test

import (
	"context"
	"errors"
	"regexp"
	"resto/infras/otel/mocks"
	"resto/infras/postgres"
	"resto/shared/dto"
	"resto/shared/model"
	"resto/shared/repository"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.Metadata
}

func newRepo(t *testing.T) (repository.Repository[widget], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	conn := &postgres.Connection{
		Read:  sqlx.NewDb(db, "postgres"),
		Write: sqlx.NewDb(db, "postgres"),
	}

	return repository.NewRepository[widget]("widget", "widgets", "id", conn, mocks.NewOtel()), mock
}

func TestNewRepository_InsertColumns(t *testing.T) {
	repo, _ := newRepo(t)

	assert.Equal(t, []string{"id", "name", "created_at", "modified_at", "created_by", "modified_by"}, repo.InsertColumns)
}

func TestInsert(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO widgets (id, name, created_at, modified_at, created_by, modified_by) VALUES ($1, $2, $3, $4, $5, $6)")).
		WithArgs("w-1", "Plate", now, now, "system", "system").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), widget{ID: "w-1", Name: "Plate", Metadata: model.NewMetadata(now, "system")})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_UniqueViolation(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("INSERT INTO widgets").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "widgets_name_key"})

	err := repo.Insert(context.Background(), widget{ID: "w-1", Name: "Plate"})
	require.Error(t, err)

	constraint, ok := repository.UniqueViolation(err)
	assert.True(t, ok)
	assert.Equal(t, "widgets_name_key", constraint)

	_, ok = repository.UniqueViolation(errors.New("plain"))
	assert.False(t, ok)
}

func TestGet(t *testing.T) {
	repo, mock := newRepo(t)
	filter := dto.FilterGroup{Filters: []any{dto.Filter{Field: "id", Value: "w-1", Operator: dto.FilterOperatorEq, Table: "widgets"}}}

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT widgets.id, widgets.name, widgets.created_at, widgets.modified_at, widgets.created_by, widgets.modified_by FROM widgets")).
		ExpectQuery().
		WithArgs("w-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "modified_at", "created_by", "modified_by"}).
			AddRow("w-1", "Plate", time.Time{}, time.Time{}, "system", "system"))

	got, err := repo.Get(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, "Plate", got.Name)

	mock.ExpectPrepare("SELECT (.+) FROM widgets").
		ExpectQuery().
		WithArgs("w-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	missing, err := repo.Get(context.Background(), filter)
	require.NoError(t, err)
	assert.Empty(t, missing.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAll(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("ORDER BY name ASC LIMIT $1 OFFSET $2")).
		ExpectQuery().
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("w-1", "Plate").AddRow("w-2", "Bowl"))

	got, err := repo.GetAll(context.Background(), dto.QueryParams{Page: 2, Limit: 10, SortBy: "name", SortDir: dto.SortDirAsc}, dto.FilterGroup{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT COUNT(widgets.id) FROM widgets")).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background(), dto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestUpdateWhere(t *testing.T) {
	repo, mock := newRepo(t)
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "id", Value: "w-1", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "name", ArgName: "current_name", Value: "Plate", Operator: dto.FilterOperatorEq},
		},
	}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE widgets SET name = $1  WHERE (id = $2 AND name = $3)")).
		WithArgs("Bowl", "w-1", "Plate").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateWhere(context.Background(), map[string]any{"name": "Bowl"}, filter))

	mock.ExpectExec("UPDATE widgets SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateWhere(context.Background(), map[string]any{"name": "Bowl"}, filter)
	assert.ErrorIs(t, err, repository.ErrNoRowsAffected)

	err = repo.Update(context.Background(), map[string]any{"name": "Bowl"}, dto.FilterGroup{})
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
