package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"catalogapi.app/internal/ports"
	"catalogapi.app/pkg/errors"
	"catalogapi.app/pkg/validation"
	"github.com/tidwall/gjson"
)

type UseCase struct {
	provider ports.CatalogProvider
	history  ports.SearchHistoryRepository
	logger   ports.Logger
	pick     func(n int) int
	now      func() time.Time
}

type UseCaseDependencies struct {
	Provider ports.CatalogProvider
	History  ports.SearchHistoryRepository
	Logger   ports.Logger
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Provider == nil {
		return nil, errors.NewValidationError("catalog provider is required")
	}
	if deps.History == nil {
		return nil, errors.NewValidationError("search history repository is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &UseCase{
		provider: deps.Provider,
		history:  deps.History,
		logger:   deps.Logger,
		pick:     rand.Intn,
		now:      time.Now,
	}, nil
}

// Trending returns one random entry of today's trending list
func (uc *UseCase) Trending(ctx context.Context, media MediaType) (Content, error) {
	if !media.IsValid() {
		return nil, errors.NewValidationError("Invalid media type")
	}

	body, err := uc.fetch(ctx, fmt.Sprintf("/trending/%s/day", media), nil)
	if err != nil {
		return nil, err
	}

	results, err := results(body)
	if err != nil {
		return nil, err
	}
	items := results.Array()
	if len(items) == 0 {
		return nil, errors.NewNotFoundError("No trending content")
	}
	return Content(items[uc.pick(len(items))].Raw), nil
}

// Trailers returns the video list of a title
func (uc *UseCase) Trailers(ctx context.Context, media MediaType, id int64) (Content, error) {
	return uc.fetchResults(ctx, media, fmt.Sprintf("/%s/%d/videos", media, id))
}

// Details returns the full TMDB document of a title
func (uc *UseCase) Details(ctx context.Context, media MediaType, id int64) (Content, error) {
	if !media.IsValid() {
		return nil, errors.NewValidationError("Invalid media type")
	}
	body, err := uc.fetch(ctx, fmt.Sprintf("/%s/%d", media, id), nil)
	if err != nil {
		return nil, err
	}
	return Content(body), nil
}

func (uc *UseCase) Similar(ctx context.Context, media MediaType, id int64) (Content, error) {
	return uc.fetchResults(ctx, media, fmt.Sprintf("/%s/%d/similar", media, id))
}

// ByCategory returns one of the curated TMDB lists, e.g. popular or top_rated
func (uc *UseCase) ByCategory(ctx context.Context, media MediaType, category string) (Content, error) {
	if !media.IsValid() {
		return nil, errors.NewValidationError("Invalid media type")
	}
	if !media.validCategory(category) {
		return nil, errors.NewValidationError(fmt.Sprintf("Invalid category %q, expected one of %s",
			category, strings.Join(categories[media], ", ")))
	}
	return uc.fetchResults(ctx, media, fmt.Sprintf("/%s/%s", media, category))
}

// Search queries TMDB and remembers the first hit in the user's history.
// A failure to record the hit is logged and does not fail the search.
func (uc *UseCase) Search(ctx context.Context, userID string, kind SearchType, query string) (Content, error) {
	if !kind.IsValid() {
		return nil, errors.NewValidationError("Invalid search type")
	}
	query, ok := validation.TrimAndValidate(query)
	if !ok {
		return nil, errors.NewValidationError("Search query is required")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("language", "en-US")
	params.Set("page", "1")

	body, err := uc.fetch(ctx, "/search/"+string(kind), params)
	if err != nil {
		return nil, err
	}
	res, err := results(body)
	if err != nil {
		return nil, err
	}
	items := res.Array()
	if len(items) == 0 {
		return nil, errors.NewNotFoundError("No results found")
	}

	first := items[0]
	entry := &ports.SearchHistoryData{
		UserID:     userID,
		MediaID:    first.Get("id").Int(),
		Title:      first.Get(kind.titleField()).String(),
		Image:      first.Get(kind.imageField()).String(),
		SearchType: string(kind),
		CreatedAt:  uc.now(),
	}
	if err := uc.history.Add(ctx, entry); err != nil {
		uc.logger.Warn("Failed to record search history",
			ports.F("userID", userID),
			ports.F("mediaID", entry.MediaID),
			ports.F("error", err))
	}

	return Content(res.Raw), nil
}

// History lists the user's remembered searches, oldest first
func (uc *UseCase) History(ctx context.Context, userID string) ([]HistoryItem, error) {
	rows, err := uc.history.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list search history: %w", err)
	}

	items := make([]HistoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, HistoryItem{
			ID:         row.MediaID,
			Title:      row.Title,
			Image:      row.Image,
			SearchType: row.SearchType,
			CreatedAt:  row.CreatedAt,
		})
	}
	return items, nil
}

// RemoveHistoryItem drops every history entry of the user for one TMDB id.
// Removing an id that is not present is not an error.
func (uc *UseCase) RemoveHistoryItem(ctx context.Context, userID string, mediaID int64) error {
	removed, err := uc.history.DeleteByMediaID(ctx, userID, mediaID)
	if err != nil {
		return fmt.Errorf("remove search history item: %w", err)
	}
	uc.logger.Debug("Search history item removed",
		ports.F("userID", userID),
		ports.F("mediaID", mediaID),
		ports.F("removed", removed))
	return nil
}

func (uc *UseCase) fetchResults(ctx context.Context, media MediaType, path string) (Content, error) {
	if !media.IsValid() {
		return nil, errors.NewValidationError("Invalid media type")
	}
	body, err := uc.fetch(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	res, err := results(body)
	if err != nil {
		return nil, err
	}
	return Content(res.Raw), nil
}

func (uc *UseCase) fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	body, err := uc.provider.Fetch(ctx, path, query)
	if err != nil {
		// TMDB 404s and already classified failures keep their type
		if errors.TypeOf(err) != errors.ErrorTypeUnknown {
			return nil, err
		}
		return nil, errors.NewExternalAPIError("catalog provider failed", err)
	}
	return body, nil
}

func results(body []byte) (gjson.Result, error) {
	res := gjson.GetBytes(body, "results")
	if !res.IsArray() {
		return gjson.Result{}, errors.NewExternalAPIError("catalog response has no results list", nil)
	}
	return res, nil
}
