package model

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error"`
}

type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        PublicUser `json:"user"`
	Log         string     `json:"log"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
}

type UserAuditLogsResponse struct {
	UserID string        `json:"user_id"`
	Logs   []AuditRecord `json:"logs"`
	Count  int           `json:"count"`
	Log    string        `json:"log"`
}

type AuditLogsResponse struct {
	Logs  []AuditRecord `json:"logs"`
	Count int           `json:"count"`
	Log   string        `json:"log"`
}

type VideoUploadResponse struct {
	ClipSceneID string `json:"clip_scene_id"`
	VideoURL    string `json:"video_url"`
	VideoKey    string `json:"video_key"`
}

type VideoPlaybackResponse struct {
	ClipSceneID string `json:"clip_scene_id"`
	URL         string `json:"url"`
	ExpiresIn   int64  `json:"expires_in"`
}
