package repository

import (
	"context"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	commoncrypto "github.com/AlibekovAA/microblog/internal/common/crypto"
	"github.com/AlibekovAA/microblog/internal/common/db"
	"github.com/AlibekovAA/microblog/internal/tweet/domain"
)

const tweetColumns = `t.id::text, t.content, t.user_id::text, u.username, t.likes::text[], COALESCE(t.image_url, ''), t.created_at`

// toggleLikeSQL flips membership in one UPDATE so the row lock serializes
// concurrent toggles on the same tweet.
const toggleLikeSQL = `WITH t AS (
    UPDATE tweets
    SET likes = CASE
        WHEN $2::uuid = ANY(likes) THEN array_remove(likes, $2::uuid)
        ELSE array_append(likes, $2::uuid)
    END
    WHERE id = $1
    RETURNING id, content, user_id, likes, image_url, created_at
)
SELECT ` + tweetColumns + `
FROM t
JOIN users u ON u.id = t.user_id`

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, tweet domain.Tweet) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO tweets (id, content, user_id, image_url, created_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5)`,
		tweet.ID,
		tweet.Content,
		tweet.UserID,
		tweet.ImageURL,
		tweet.CreatedAt,
	)
	return db.HandleExecError(err, "create tweet", start)
}

func (r *PgRepository) List(ctx context.Context) ([]domain.Tweet, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT `+tweetColumns+`
		 FROM tweets t
		 JOIN users u ON u.id = t.user_id
		 ORDER BY t.created_at DESC, t.id DESC`,
	)
	if err != nil {
		return nil, db.HandleExecError(err, "list tweets", start)
	}
	defer rows.Close()

	tweets := make([]domain.Tweet, 0)
	for rows.Next() {
		tweet, err := scanTweet(rows)
		if err != nil {
			return nil, db.HandleExecError(err, "scan tweet", start)
		}
		tweets = append(tweets, tweet)
	}

	if err := rows.Err(); err != nil {
		return nil, db.HandleExecError(err, "list tweets", start)
	}

	db.MeasureQueryDuration("list tweets", start)
	return tweets, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id string) (domain.Tweet, error) {
	if !commoncrypto.IsValidID(id) {
		return domain.Tweet{}, ErrTweetNotFound
	}

	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+tweetColumns+`
		 FROM tweets t
		 JOIN users u ON u.id = t.user_id
		 WHERE t.id = $1`,
		id,
	)

	tweet, err := scanTweet(row)
	if err := db.HandleQueryError(err, ErrTweetNotFound, "find tweet by id", start); err != nil {
		return domain.Tweet{}, err
	}
	return tweet, nil
}

func (r *PgRepository) ToggleLike(ctx context.Context, id, userID string) (domain.Tweet, bool, error) {
	if !commoncrypto.IsValidID(id) {
		return domain.Tweet{}, false, ErrTweetNotFound
	}

	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		toggleLikeSQL,
		id,
		userID,
	)

	tweet, err := scanTweet(row)
	if err := db.HandleQueryError(err, ErrTweetNotFound, "toggle tweet like", start); err != nil {
		return domain.Tweet{}, false, err
	}
	return tweet, tweet.LikedBy(userID), nil
}

func (r *PgRepository) Delete(ctx context.Context, id string) error {
	if !commoncrypto.IsValidID(id) {
		return ErrTweetNotFound
	}

	start := time.Now()
	tag, err := r.pool.Exec(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	if err := db.HandleExecError(err, "delete tweet", start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTweetNotFound
	}
	return nil
}

func scanTweet(row pgx.Row) (domain.Tweet, error) {
	var tweet domain.Tweet
	err := row.Scan(
		&tweet.ID,
		&tweet.Content,
		&tweet.UserID,
		&tweet.Username,
		&tweet.Likes,
		&tweet.ImageURL,
		&tweet.CreatedAt,
	)
	if tweet.Likes == nil {
		tweet.Likes = []string{}
	}
	return tweet, err
}
