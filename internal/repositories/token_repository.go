package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "kanban-board.com/kanban-board/internal/errors"
	model "kanban-board.com/kanban-board/internal/models"
)

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Issue stores key for userID unless the user already holds a token, and
// returns the token the user holds afterwards.
func (r *TokenRepository) Issue(ctx context.Context, key string, userID uint) (*model.AuthToken, error) {
	token := &model.AuthToken{
		Key:       key,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(token).Error
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	return r.FindByUserID(ctx, userID)
}

func (r *TokenRepository) FindByKey(ctx context.Context, key string) (*model.AuthToken, error) {
	var token model.AuthToken
	err := r.db.WithContext(ctx).First(&token, "token = ?", key).Error
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return &token, nil
}

// FindByUserID returns apperrors.ErrInvalidToken when the user holds no token.
func (r *TokenRepository) FindByUserID(ctx context.Context, userID uint) (*model.AuthToken, error) {
	var token model.AuthToken
	err := r.db.WithContext(ctx).First(&token, "user_id = ?", userID).Error
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("find token for user %d: %w", userID, err)
	}
	return &token, nil
}

func (r *TokenRepository) DeleteByKey(ctx context.Context, key string) error {
	res := r.db.WithContext(ctx).Where("token = ?", key).Delete(&model.AuthToken{})
	if res.Error != nil {
		return fmt.Errorf("delete token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrInvalidToken
	}
	return nil
}
