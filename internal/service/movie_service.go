package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-media-api/internal/model"
)

type movieStore interface {
	Create(ctx context.Context, m model.Movie) error
	FindByID(ctx context.Context, id string) (model.Movie, error)
	List(ctx context.Context) ([]model.Movie, error)
	Update(ctx context.Context, m model.Movie) error
	Delete(ctx context.Context, id string) error
}

type MovieService struct {
	movies movieStore
	now    func() time.Time
}

func NewMovieService(movies movieStore) *MovieService {
	return &MovieService{movies: movies, now: time.Now}
}

func (s *MovieService) Create(ctx context.Context, req model.MovieCreateRequest) (model.Movie, error) {
	if strings.TrimSpace(req.MovieName) == "" || strings.TrimSpace(req.Description) == "" {
		return model.Movie{}, model.ErrInvalidInput
	}

	characters := req.CharactersAvailable
	if characters == nil {
		characters = []string{}
	}

	movie := model.Movie{
		ID:                  uuid.NewString(),
		MovieName:           strings.TrimSpace(req.MovieName),
		Description:         strings.TrimSpace(req.Description),
		CharactersAvailable: characters,
		ImageURL:            strings.TrimSpace(req.ImageURL),
		CreatedAt:           s.now().UTC(),
	}

	if err := s.movies.Create(ctx, movie); err != nil {
		return model.Movie{}, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return movie, nil
}

func (s *MovieService) Get(ctx context.Context, id string) (model.Movie, error) {
	movie, err := s.movies.FindByID(ctx, id)
	if errors.Is(err, model.ErrMovieNotFound) {
		return model.Movie{}, err
	}
	if err != nil {
		return model.Movie{}, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return movie, nil
}

func (s *MovieService) List(ctx context.Context) ([]model.Movie, error) {
	movies, err := s.movies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	sort.SliceStable(movies, func(i, j int) bool {
		return movies[i].CreatedAt.After(movies[j].CreatedAt)
	})
	return movies, nil
}

func (s *MovieService) Update(ctx context.Context, id string, req model.MovieUpdateRequest) (model.Movie, error) {
	movie, err := s.Get(ctx, id)
	if err != nil {
		return model.Movie{}, err
	}

	if req.MovieName != nil {
		if strings.TrimSpace(*req.MovieName) == "" {
			return model.Movie{}, model.ErrInvalidInput
		}
		movie.MovieName = strings.TrimSpace(*req.MovieName)
	}
	if req.Description != nil {
		movie.Description = strings.TrimSpace(*req.Description)
	}
	if req.CharactersAvailable != nil {
		movie.CharactersAvailable = *req.CharactersAvailable
	}
	if req.ImageURL != nil {
		movie.ImageURL = strings.TrimSpace(*req.ImageURL)
	}

	if err := s.movies.Update(ctx, movie); err != nil {
		if errors.Is(err, model.ErrMovieNotFound) {
			return model.Movie{}, err
		}
		return model.Movie{}, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return movie, nil
}

func (s *MovieService) Delete(ctx context.Context, id string) error {
	err := s.movies.Delete(ctx, id)
	if errors.Is(err, model.ErrMovieNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return nil
}
