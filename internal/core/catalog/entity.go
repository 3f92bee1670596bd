package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"catalogapi.app/pkg/errors"
)

// MediaType selects the movie or tv half of the catalog
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// SearchType is the kind of entity a search looks for
type SearchType string

const (
	SearchTypePerson SearchType = "person"
	SearchTypeMovie  SearchType = "movie"
	SearchTypeTV     SearchType = "tv"
)

var categories = map[MediaType][]string{
	MediaTypeMovie: {"now_playing", "popular", "top_rated", "upcoming"},
	MediaTypeTV:    {"airing_today", "on_the_air", "popular", "top_rated"},
}

// Categories lists the category lists TMDB exposes for a media type
func Categories(media MediaType) []string {
	return append([]string(nil), categories[media]...)
}

func (m MediaType) IsValid() bool {
	_, ok := categories[m]
	return ok
}

func (m MediaType) validCategory(category string) bool {
	for _, c := range categories[m] {
		if c == category {
			return true
		}
	}
	return false
}

func (s SearchType) IsValid() bool {
	switch s {
	case SearchTypePerson, SearchTypeMovie, SearchTypeTV:
		return true
	}
	return false
}

// imageField and titleField name the JSON fields a search result carries
// for its picture and display name.
func (s SearchType) imageField() string {
	if s == SearchTypePerson {
		return "profile_path"
	}
	return "poster_path"
}

func (s SearchType) titleField() string {
	if s == SearchTypeMovie {
		return "title"
	}
	return "name"
}

// HistoryItem is one remembered search result
type HistoryItem struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Image      string    `json:"image"`
	SearchType string    `json:"searchType"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Content is a TMDB JSON document passed through to the client untouched
type Content = json.RawMessage

// ParseMediaID parses a TMDB id taken from a route parameter
func ParseMediaID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError("Invalid id")
	}
	return id, nil
}
