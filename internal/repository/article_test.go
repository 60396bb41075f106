package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleRepository_HasLike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewArticleRepository(db)

	t.Run("liked", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "article_likes" WHERE article_id = $1 AND user_id = $2`)).
			WithArgs(1, 2).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		liked, err := repo.HasLike(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.True(t, liked)
	})

	t.Run("not liked", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "article_likes" WHERE article_id = $1 AND user_id = $2`)).
			WithArgs(1, 3).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		liked, err := repo.HasLike(context.Background(), 1, 3)
		require.NoError(t, err)
		assert.False(t, liked)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepository_LikeUserIDs_InsertionOrder(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewArticleRepository(db)

	rows := sqlmock.NewRows([]string{"user_id"}).
		AddRow(5).
		AddRow(2).
		AddRow(9)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "user_id" FROM "article_likes" WHERE article_id = $1 ORDER BY id ASC`)).
		WithArgs(1).
		WillReturnRows(rows)

	ids, err := repo.LikeUserIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{5, 2, 9}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepository_Delete_RemovesLikesFirst(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewArticleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "article_likes" WHERE article_id = $1`)).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "articles" WHERE "articles"."id" = $1`)).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 4)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_ListByGroup_OldestFirst(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)

	msgRows := sqlmock.NewRows([]string{"id", "group_id", "sender_id", "content"}).
		AddRow(1, 3, 7, "first").
		AddRow(2, 3, 8, "second")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "messages" WHERE group_id = $1 ORDER BY created_at ASC`)).
		WithArgs(3).
		WillReturnRows(msgRows)

	senderRows := sqlmock.NewRows([]string{"id", "username"}).
		AddRow(7, "ann").
		AddRow(8, "bea")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" IN ($1,$2)`)).
		WithArgs(7, 8).
		WillReturnRows(senderRows)

	msgs, err := repo.ListByGroup(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Content)
	require.NotNil(t, msgs[0].Sender)
	assert.Equal(t, "ann", msgs[0].Sender.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
