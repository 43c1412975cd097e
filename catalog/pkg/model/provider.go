package model

// ProviderRecord defines one raw result from the metadata provider.
// Movies carry title/release_date, shows name/first_air_date and
// people name/profile_path; single-type endpoints omit media_type.
type ProviderRecord struct {
	Id           int64   `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	ProfilePath  string  `json:"profile_path,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	MediaType    string  `json:"media_type,omitempty"`
	KnownFor     string  `json:"known_for_department,omitempty"`
}

// ProviderPage defines the provider's page envelope, unmodified in
// shape. Degraded is set locally when the page is a synthetic
// placeholder substituted for a failed listing call.
type ProviderPage struct {
	Page         int              `json:"page"`
	TotalPages   int              `json:"total_pages"`
	TotalResults int              `json:"total_results"`
	Results      []ProviderRecord `json:"results"`
	Degraded     bool             `json:"-"`
}
