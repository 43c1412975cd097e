package model

import (
	"fmt"
	"time"
)

// UserId defines a user id. Identity is issued and verified by the
// credential service; this service only trusts it.
type UserId string

// MediaType defines the kind of a catalog item as reported by the
// metadata provider.
type MediaType string

// Known media types.
const (
	MediaTypeMovie  = MediaType("movie")
	MediaTypeTv     = MediaType("tv")
	MediaTypePerson = MediaType("person")
)

// RatingValue defines a value of a rating record on a 0-100 scale.
type RatingValue int

// Rating scale bounds.
const (
	RatingValueMin = RatingValue(0)
	RatingValueMax = RatingValue(100)
)

// Valid reports whether the value is within the accepted scale.
func (v RatingValue) Valid() bool {
	return v >= RatingValueMin && v <= RatingValueMax
}

// CatalogItem defines a local record for a movie or a show, keyed by
// the provider-assigned external id. Rows are created lazily, on the
// first add-to-list, never merely by viewing.
type CatalogItem struct {
	Id          int64     `json:"id"`
	ExternalId  string    `json:"externalId"`
	Title       string    `json:"title"`
	PosterPath  *string   `json:"posterPath"`
	Overview    string    `json:"overview"`
	ReleaseDate *string   `json:"releaseDate"`
	VoteAverage float64   `json:"voteAverage"`
	MediaType   MediaType `json:"mediaType"`
}

func (i *CatalogItem) String() string {
	return fmt.Sprintf("CatalogItem{externalId=%s, title=%s, mediaType=%s}", i.ExternalId, i.Title, i.MediaType)
}

// ItemSeed defines the item fields captured at add-to-list time. They
// are supplied by the caller, not re-fetched from the provider.
type ItemSeed struct {
	ExternalId  string    `json:"externalId" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	PosterPath  *string   `json:"posterPath"`
	Overview    string    `json:"overview"`
	ReleaseDate *string   `json:"releaseDate"`
	VoteAverage float64   `json:"voteAverage" validate:"gte=0,lte=10"`
	MediaType   MediaType `json:"mediaType" validate:"omitempty,oneof=movie tv"`
}

// ListEntry defines a user's membership record for one catalog item.
// At most one entry exists per (user, item) pair.
type ListEntry struct {
	UserId  UserId    `json:"userId"`
	ItemId  int64     `json:"itemId"`
	AddedAt time.Time `json:"addedAt"`
}

// Rating defines an individual rating created by a user for a catalog
// item. At most one row exists per (user, item) pair; a repeated
// submission updates the row in place.
type Rating struct {
	UserId  UserId      `json:"userId"`
	ItemId  int64       `json:"itemId"`
	Value   RatingValue `json:"value"`
	RatedAt time.Time   `json:"ratedAt"`
}

// ItemDetails defines a catalog item together with the locally
// aggregated rating. Rating is nil when nobody rated the item yet.
type ItemDetails struct {
	Item        CatalogItem `json:"item"`
	Rating      *float64    `json:"rating,omitempty"`
	RatingCount int64       `json:"ratingCount"`
}

// ListEntryView defines one row of a user's list: the item, when it
// was added and the user's own rating, if any.
type ListEntryView struct {
	Item    CatalogItem  `json:"item"`
	AddedAt time.Time    `json:"addedAt"`
	Rating  *RatingValue `json:"rating,omitempty"`
}

// Person defines a person record from the provider. People are never
// persisted locally.
type Person struct {
	ExternalId  string  `json:"externalId"`
	Name        string  `json:"name"`
	ProfilePath *string `json:"profilePath"`
	KnownFor    string  `json:"knownFor,omitempty"`
}

// SearchKind defines the provider search flavor.
type SearchKind string

// Supported search kinds.
const (
	SearchKindMulti  = SearchKind("multi")
	SearchKindPerson = SearchKind("person")
)

// SearchPage defines one page of normalized search results. The
// pagination envelope is the provider's original one: for the multi
// kind the local arrays are filtered, so len(Items) does not relate
// to TotalResults.
type SearchPage struct {
	Items        []CatalogItem `json:"items"`
	People       []Person      `json:"people"`
	Page         int           `json:"page"`
	TotalPages   int           `json:"totalPages"`
	TotalResults int           `json:"totalResults"`
	Degraded     bool          `json:"degraded"`
}

// Contributor defines one leaderboard row: distinct items a user has
// listed and rated.
type Contributor struct {
	UserId      UserId `json:"userId"`
	ListCount   int64  `json:"listCount"`
	RatingCount int64  `json:"ratingCount"`
}

// RatingEvent defines an event containing rating information ingested
// from the messaging pipeline.
type RatingEvent struct {
	UserId     UserId          `json:"userId"`
	ExternalId string          `json:"externalId"`
	Value      RatingValue     `json:"value"`
	ProviderId string          `json:"providerId"`
	EventType  RatingEventType `json:"eventType"`
}

func (ev *RatingEvent) String() string {
	return fmt.Sprintf("RatingEvent{UserId=%s, ExternalId=%s, Value=%d, EventType=%s}", ev.UserId, ev.ExternalId, ev.Value, ev.EventType)
}

// RatingEventType defines the type of rating event.
type RatingEventType string

// Rating event types.
const (
	RatingEventTypePut    = RatingEventType("put")
	RatingEventTypeDelete = RatingEventType("delete")
)
