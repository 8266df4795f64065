package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-media-api/internal/model"
	"go-media-api/internal/storage"
)

const videoPresignExpiry = 15 * time.Minute

type clipSceneStore interface {
	Create(ctx context.Context, c model.ClipScene) error
	FindByID(ctx context.Context, id string) (model.ClipScene, error)
	ListByMovie(ctx context.Context, movieID string) ([]model.ClipScene, error)
	Update(ctx context.Context, c model.ClipScene) error
	Delete(ctx context.Context, id string) error
}

// ClipSceneService manages scene metadata in the database and the scene
// videos in object storage.
type ClipSceneService struct {
	clips  clipSceneStore
	movies movieStore
	store  storage.ObjectStorage
	now    func() time.Time
}

func NewClipSceneService(clips clipSceneStore, movies movieStore, store storage.ObjectStorage) *ClipSceneService {
	return &ClipSceneService{clips: clips, movies: movies, store: store, now: time.Now}
}

func (s *ClipSceneService) Create(ctx context.Context, req model.ClipSceneCreateRequest) (model.ClipScene, error) {
	if strings.TrimSpace(req.SceneName) == "" || strings.TrimSpace(req.MovieID) == "" {
		return model.ClipScene{}, model.ErrInvalidInput
	}

	if _, err := s.movies.FindByID(ctx, req.MovieID); err != nil {
		if errors.Is(err, model.ErrMovieNotFound) {
			return model.ClipScene{}, err
		}
		return model.ClipScene{}, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	characters := req.Characters
	if characters == nil {
		characters = []string{}
	}

	clip := model.ClipScene{
		ID:            uuid.NewString(),
		SceneName:     strings.TrimSpace(req.SceneName),
		Description:   strings.TrimSpace(req.Description),
		MovieID:       req.MovieID,
		Characters:    characters,
		ImageURL:      strings.TrimSpace(req.ImageURL),
		Transcription: req.Transcription,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.clips.Create(ctx, clip); err != nil {
		return model.ClipScene{}, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return clip, nil
}

func (s *ClipSceneService) Get(ctx context.Context, id string) (model.ClipScene, error) {
	clip, err := s.clips.FindByID(ctx, id)
	if errors.Is(err, model.ErrClipSceneNotFound) {
		return model.ClipScene{}, err
	}
	if err != nil {
		return model.ClipScene{}, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return clip, nil
}

func (s *ClipSceneService) ListByMovie(ctx context.Context, movieID string) ([]model.ClipScene, error) {
	clips, err := s.clips.ListByMovie(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return clips, nil
}

func (s *ClipSceneService) Update(ctx context.Context, id string, req model.ClipSceneUpdateRequest) (model.ClipScene, error) {
	clip, err := s.Get(ctx, id)
	if err != nil {
		return model.ClipScene{}, err
	}

	if req.SceneName != nil {
		if strings.TrimSpace(*req.SceneName) == "" {
			return model.ClipScene{}, model.ErrInvalidInput
		}
		clip.SceneName = strings.TrimSpace(*req.SceneName)
	}
	if req.Description != nil {
		clip.Description = strings.TrimSpace(*req.Description)
	}
	if req.Characters != nil {
		clip.Characters = *req.Characters
	}
	if req.ImageURL != nil {
		clip.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.Transcription != nil {
		clip.Transcription = *req.Transcription
	}

	if err := s.clips.Update(ctx, clip); err != nil {
		if errors.Is(err, model.ErrClipSceneNotFound) {
			return model.ClipScene{}, err
		}
		return model.ClipScene{}, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return clip, nil
}

// Delete removes the scene and, when one is attached, its stored video. A
// failed object delete does not block the metadata delete; the key is logged
// for manual cleanup.
func (s *ClipSceneService) Delete(ctx context.Context, id string) error {
	clip, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.clips.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrClipSceneNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	if clip.VideoKey != "" {
		if err := s.store.Delete(ctx, clip.VideoKey); err != nil {
			slog.Error("orphaned video object after clip delete",
				"clip_id", id, "key", clip.VideoKey, "error", err)
		}
	}
	return nil
}

// UploadVideo stores the file in object storage and attaches the resulting
// URL and key to the clip. A previously attached video is replaced and its
// object removed.
func (s *ClipSceneService) UploadVideo(ctx context.Context, id string, filename string, contentType string, body io.Reader) (model.ClipScene, error) {
	clip, err := s.Get(ctx, id)
	if err != nil {
		return model.ClipScene{}, err
	}

	key := storage.ObjectKey("videos", filename)
	url, err := s.store.Upload(ctx, key, body, contentType)
	if err != nil {
		return model.ClipScene{}, fmt.Errorf("upload video: %w", err)
	}

	previousKey := clip.VideoKey
	clip.VideoURL = url
	clip.VideoKey = key

	if err := s.clips.Update(ctx, clip); err != nil {
		// Metadata write lost; remove the object we just stored.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			slog.Error("orphaned video object after failed attach",
				"clip_id", id, "key", key, "error", delErr)
		}
		return model.ClipScene{}, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	if previousKey != "" && previousKey != key {
		if err := s.store.Delete(ctx, previousKey); err != nil {
			slog.Error("orphaned replaced video object",
				"clip_id", id, "key", previousKey, "error", err)
		}
	}
	return clip, nil
}

func (s *ClipSceneService) DeleteVideo(ctx context.Context, id string) (model.ClipScene, error) {
	clip, err := s.Get(ctx, id)
	if err != nil {
		return model.ClipScene{}, err
	}
	if clip.VideoKey == "" {
		return model.ClipScene{}, model.ErrNoVideoAttached
	}

	if err := s.store.Delete(ctx, clip.VideoKey); err != nil {
		return model.ClipScene{}, fmt.Errorf("delete video object: %w", err)
	}

	clip.VideoURL = ""
	clip.VideoKey = ""
	if err := s.clips.Update(ctx, clip); err != nil {
		return model.ClipScene{}, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return clip, nil
}

// PlaybackURL returns a time-limited presigned GET URL for the clip's video.
func (s *ClipSceneService) PlaybackURL(ctx context.Context, id string) (string, time.Duration, error) {
	clip, err := s.Get(ctx, id)
	if err != nil {
		return "", 0, err
	}
	if clip.VideoKey == "" {
		return "", 0, model.ErrNoVideoAttached
	}

	url, err := s.store.PresignGet(ctx, clip.VideoKey, videoPresignExpiry)
	if err != nil {
		return "", 0, fmt.Errorf("presign video: %w", err)
	}
	return url, videoPresignExpiry, nil
}
