package repository

import (
	"context"
	"fmt"

	"github.com/clipnova/clipnova-bot/pkg/domain"
	"github.com/uptrace/bun"
)

type downloadRepository struct {
	db *bun.DB
}

func NewDownloadRepository(db *bun.DB) *downloadRepository {
	return &downloadRepository{db: db}
}

func (r *downloadRepository) Save(ctx context.Context, d *domain.Download) error {
	if _, err := r.db.NewInsert().
		Model(d).
		Returning("id").
		Exec(ctx); err != nil {
		return fmt.Errorf("saving download: %w", err)
	}
	return nil
}

func (r *downloadRepository) ListRecent(ctx context.Context, chatID int64, topicID, limit int) ([]domain.Download, error) {
	var downloads []domain.Download

	err := r.db.NewSelect().
		Model(&downloads).
		Where("chat_id = ?", chatID).
		Where("topic_id = ?", topicID).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching downloads for chat %d: %w", chatID, err)
	}

	return downloads, nil
}
