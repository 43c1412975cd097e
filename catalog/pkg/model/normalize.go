package model

import "strconv"

// ItemFromProviderRecord maps a raw provider record onto the canonical
// CatalogItem shape. Movies and shows share the result: a movie carries
// title/release_date, a show name/first_air_date. The provider's
// single-type endpoints do not echo media_type back, so an empty tag
// falls back to the given one and finally to movie. Pure function, no
// I/O.
func ItemFromProviderRecord(r *ProviderRecord, mediaType MediaType) CatalogItem {
	title := r.Title
	if title == "" {
		title = r.Name
	}
	release := r.ReleaseDate
	if release == "" {
		release = r.FirstAirDate
	}
	mt := MediaType(r.MediaType)
	if mt != MediaTypeMovie && mt != MediaTypeTv {
		mt = mediaType
	}
	if mt != MediaTypeMovie && mt != MediaTypeTv {
		mt = MediaTypeMovie
	}
	return CatalogItem{
		ExternalId:  strconv.FormatInt(r.Id, 10),
		Title:       title,
		PosterPath:  optional(r.PosterPath),
		Overview:    r.Overview,
		ReleaseDate: optional(release),
		VoteAverage: r.VoteAverage,
		MediaType:   mt,
	}
}

// PersonFromProviderRecord maps a person-shaped provider record onto
// the Person shape.
func PersonFromProviderRecord(r *ProviderRecord) Person {
	return Person{
		ExternalId:  strconv.FormatInt(r.Id, 10),
		Name:        r.Name,
		ProfilePath: optional(r.ProfilePath),
		KnownFor:    r.KnownFor,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
