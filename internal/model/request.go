package model

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type MovieCreateRequest struct {
	MovieName           string   `json:"movie_name"`
	Description         string   `json:"description"`
	CharactersAvailable []string `json:"characters_available"`
	ImageURL            string   `json:"image_url"`
}

// MovieUpdateRequest carries partial updates; nil fields are left untouched.
type MovieUpdateRequest struct {
	MovieName           *string   `json:"movie_name"`
	Description         *string   `json:"description"`
	CharactersAvailable *[]string `json:"characters_available"`
	ImageURL            *string   `json:"image_url"`
}

type ClipSceneCreateRequest struct {
	SceneName     string   `json:"scene_name"`
	Description   string   `json:"description"`
	MovieID       string   `json:"movie_id"`
	Characters    []string `json:"characters"`
	ImageURL      string   `json:"image_url"`
	Transcription string   `json:"transcription"`
}

type ClipSceneUpdateRequest struct {
	SceneName     *string   `json:"scene_name"`
	Description   *string   `json:"description"`
	Characters    *[]string `json:"characters"`
	ImageURL      *string   `json:"image_url"`
	Transcription *string   `json:"transcription"`
}
