package dto

type UpdatePreferencesRequest struct {
	PrimaryColor string `json:"primary_color" validate:"omitempty,hexcolor"`
	DarkMode     bool   `json:"dark_mode"`
	CompactView  bool   `json:"compact_view"`
}

type PreferencesResponse struct {
	PrimaryColor string `json:"primary_color"`
	DarkMode     bool   `json:"dark_mode"`
	CompactView  bool   `json:"compact_view"`
}
