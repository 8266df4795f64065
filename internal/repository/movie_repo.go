package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-media-api/internal/model"
)

type MovieRepository struct {
	pool *pgxpool.Pool
}

func NewMovieRepository(pool *pgxpool.Pool) *MovieRepository {
	return &MovieRepository{pool: pool}
}

func (r *MovieRepository) Create(ctx context.Context, m model.Movie) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO movies (id, movie_name, description, characters_available, image_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.MovieName, m.Description, m.CharactersAvailable, m.ImageURL, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create movie: %w", err)
	}
	return nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id string) (model.Movie, error) {
	var m model.Movie
	err := r.pool.QueryRow(ctx,
		`SELECT id, movie_name, description, characters_available, image_url, created_at
		 FROM movies WHERE id = $1`, id).
		Scan(&m.ID, &m.MovieName, &m.Description, &m.CharactersAvailable, &m.ImageURL, &m.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Movie{}, model.ErrMovieNotFound
	}
	if err != nil {
		return model.Movie{}, fmt.Errorf("find movie by id: %w", err)
	}
	return m, nil
}

func (r *MovieRepository) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, movie_name, description, characters_available, image_url, created_at
		 FROM movies ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	movies := make([]model.Movie, 0)
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.MovieName, &m.Description,
			&m.CharactersAvailable, &m.ImageURL, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func (r *MovieRepository) Update(ctx context.Context, m model.Movie) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE movies
		 SET movie_name = $2, description = $3, characters_available = $4, image_url = $5
		 WHERE id = $1`,
		m.ID, m.MovieName, m.Description, m.CharactersAvailable, m.ImageURL)
	if err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMovieNotFound
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMovieNotFound
	}
	return nil
}
