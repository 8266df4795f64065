package model

import "time"

type Movie struct {
	ID                  string    `json:"id"`
	MovieName           string    `json:"movie_name"`
	Description         string    `json:"description"`
	CharactersAvailable []string  `json:"characters_available"`
	ImageURL            string    `json:"image_url,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

type ClipScene struct {
	ID            string    `json:"id"`
	SceneName     string    `json:"scene_name"`
	Description   string    `json:"description"`
	MovieID       string    `json:"movie_id"`
	Characters    []string  `json:"characters"`
	ImageURL      string    `json:"image_url,omitempty"`
	VideoURL      string    `json:"video_url,omitempty"`
	VideoKey      string    `json:"-"`
	Transcription string    `json:"transcription,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
