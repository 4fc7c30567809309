package mysql_test

import (
	"context"
	"testing"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"

	"github.com/Guyuepp/threaded-blog/domain"
	"github.com/Guyuepp/threaded-blog/internal/repository/mysql"
	"github.com/Guyuepp/threaded-blog/internal/repository/mysql/model"
)

func TestGetUserByID(t *testing.T) {
	var u model.User
	require.NoError(t, faker.FakeData(&u))

	db, mock := newMockDB(t)
	rows := sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "profile_picture"}).
		AddRow(u.ID, u.Username, u.FirstName, u.LastName, u.ProfilePicture)
	mock.ExpectQuery("SELECT (.+) FROM `user` WHERE id = \\?").WillReturnRows(rows)

	got, err := mysql.NewUserRepository(db).GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Username, got.Username)
	assert.Equal(t, u.ProfilePicture, got.ProfilePicture)

	mock.ExpectQuery("SELECT (.+) FROM `user`").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = mysql.NewUserRepository(db).GetByID(context.Background(), u.ID+1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetUsersByIDs(t *testing.T) {
	db, mock := newMockDB(t)
	rows := sqlmock.NewRows([]string{"id", "username"}).
		AddRow(1, faker.Username()).
		AddRow(2, faker.Username())
	mock.ExpectQuery("SELECT (.+) FROM `user` WHERE id IN \\(\\?,\\?,\\?\\)").WillReturnRows(rows)

	repo := mysql.NewUserRepository(db)
	users, err := repo.GetByIDs(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}
