package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-media-api/internal/model"
	"go-media-api/internal/service"
	"go-media-api/pkg/apierror"
)

type ClipSceneHandler struct {
	service       *service.ClipSceneService
	maxUploadSize int64
}

func NewClipSceneHandler(service *service.ClipSceneService, maxUploadSize int64) *ClipSceneHandler {
	return &ClipSceneHandler{service: service, maxUploadSize: maxUploadSize}
}

func (h *ClipSceneHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.ClipSceneCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	clip, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, clip)
}

func (h *ClipSceneHandler) Get(w http.ResponseWriter, r *http.Request) {
	clip, err := h.service.Get(r.Context(), chi.URLParam(r, "clip_scene_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, clip)
}

func (h *ClipSceneHandler) ListByMovie(w http.ResponseWriter, r *http.Request) {
	clips, err := h.service.ListByMovie(r.Context(), chi.URLParam(r, "movie_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, clips)
}

func (h *ClipSceneHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.ClipSceneUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	clip, err := h.service.Update(r.Context(), chi.URLParam(r, "clip_scene_id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, clip)
}

func (h *ClipSceneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "clip_scene_id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Clip scene deleted successfully"})
}

func (h *ClipSceneHandler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, apierror.BadRequest("invalid multipart body", ""))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apierror.BadRequest("file field is required", ""))
		return
	}
	defer file.Close()

	clip, err := h.service.UploadVideo(r.Context(),
		chi.URLParam(r, "clip_scene_id"), header.Filename,
		header.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.VideoUploadResponse{
		ClipSceneID: clip.ID,
		VideoURL:    clip.VideoURL,
		VideoKey:    clip.VideoKey,
	})
}

func (h *ClipSceneHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	clip, err := h.service.DeleteVideo(r.Context(), chi.URLParam(r, "clip_scene_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"clip_scene_id": clip.ID,
		"message":       "Video deleted successfully",
	})
}

func (h *ClipSceneHandler) PlaybackURL(w http.ResponseWriter, r *http.Request) {
	clipID := chi.URLParam(r, "clip_scene_id")
	url, expiresIn, err := h.service.PlaybackURL(r.Context(), clipID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.VideoPlaybackResponse{
		ClipSceneID: clipID,
		URL:         url,
		ExpiresIn:   int64(expiresIn.Seconds()),
	})
}
