package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"nardchat/internal/models"
)

type Votes struct {
	db *gorm.DB
}

// Cast records one vote of userID on commentID and bumps the counters in the
// same transaction. When the user already voted the comment is returned
// unchanged and cast is false, including when a concurrent first vote wins
// the unique index.
func (s *Votes) Cast(ctx context.Context, userID string, commentID uint, value int) (comment *models.Comment, cast bool, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Comment
		if err := tx.First(&c, commentID).Error; err != nil {
			return err
		}

		var existing models.Vote
		err := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&existing).Error
		if err == nil {
			comment = &c
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&models.Vote{UserID: userID, CommentID: commentID, Value: value}).Error; err != nil {
			return err
		}

		column := "upvotes"
		if value < 0 {
			column = "downvotes"
		}
		err = tx.Model(&models.Comment{}).
			Where("id = ?", commentID).
			Updates(map[string]interface{}{
				column:       gorm.Expr(column+" + ?", 1),
				"vote_score": gorm.Expr("vote_score + ?", value),
			}).Error
		if err != nil {
			return err
		}

		if value < 0 {
			c.Downvotes++
		} else {
			c.Upvotes++
		}
		c.VoteScore = c.Upvotes - c.Downvotes
		comment = &c
		cast = true
		return nil
	})
	if isUniqueViolation(err) {
		var c models.Comment
		if err := s.db.WithContext(ctx).First(&c, commentID).Error; err != nil {
			return nil, false, wrap("cast vote", err)
		}
		return &c, false, nil
	}
	if err != nil {
		return nil, false, wrap("cast vote", err)
	}
	return comment, cast, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
