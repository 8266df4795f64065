package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-media-api/internal/model"
)

type ClipSceneRepository struct {
	pool *pgxpool.Pool
}

func NewClipSceneRepository(pool *pgxpool.Pool) *ClipSceneRepository {
	return &ClipSceneRepository{pool: pool}
}

const clipSceneColumns = `id, scene_name, description, movie_id, characters,
	image_url, video_url, video_key, transcription, created_at`

func (r *ClipSceneRepository) Create(ctx context.Context, c model.ClipScene) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO clip_scenes (`+clipSceneColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.SceneName, c.Description, c.MovieID, c.Characters,
		c.ImageURL, c.VideoURL, c.VideoKey, c.Transcription, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create clip scene: %w", err)
	}
	return nil
}

func (r *ClipSceneRepository) FindByID(ctx context.Context, id string) (model.ClipScene, error) {
	var c model.ClipScene
	err := r.pool.QueryRow(ctx,
		`SELECT `+clipSceneColumns+` FROM clip_scenes WHERE id = $1`, id).
		Scan(&c.ID, &c.SceneName, &c.Description, &c.MovieID, &c.Characters,
			&c.ImageURL, &c.VideoURL, &c.VideoKey, &c.Transcription, &c.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.ClipScene{}, model.ErrClipSceneNotFound
	}
	if err != nil {
		return model.ClipScene{}, fmt.Errorf("find clip scene by id: %w", err)
	}
	return c, nil
}

func (r *ClipSceneRepository) ListByMovie(ctx context.Context, movieID string) ([]model.ClipScene, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+clipSceneColumns+` FROM clip_scenes
		 WHERE movie_id = $1 ORDER BY created_at DESC`, movieID)
	if err != nil {
		return nil, fmt.Errorf("list clip scenes by movie: %w", err)
	}
	defer rows.Close()

	clips := make([]model.ClipScene, 0)
	for rows.Next() {
		var c model.ClipScene
		if err := rows.Scan(&c.ID, &c.SceneName, &c.Description, &c.MovieID, &c.Characters,
			&c.ImageURL, &c.VideoURL, &c.VideoKey, &c.Transcription, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan clip scene: %w", err)
		}
		clips = append(clips, c)
	}
	return clips, rows.Err()
}

func (r *ClipSceneRepository) Update(ctx context.Context, c model.ClipScene) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE clip_scenes
		 SET scene_name = $2, description = $3, characters = $4, image_url = $5,
		     video_url = $6, video_key = $7, transcription = $8
		 WHERE id = $1`,
		c.ID, c.SceneName, c.Description, c.Characters, c.ImageURL,
		c.VideoURL, c.VideoKey, c.Transcription)
	if err != nil {
		return fmt.Errorf("update clip scene: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrClipSceneNotFound
	}
	return nil
}

func (r *ClipSceneRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clip_scenes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete clip scene: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrClipSceneNotFound
	}
	return nil
}
