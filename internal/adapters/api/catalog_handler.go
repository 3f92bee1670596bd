package api

import (
	"net/http"

	"catalogapi.app/internal/core/catalog"
	"github.com/gin-gonic/gin"
)

type mediaURI struct {
	ID string `uri:"id" binding:"required,mediaid"`
}

// ContentResponse carries TMDB payloads back to the client
type ContentResponse struct {
	Success  bool        `json:"success"`
	Content  interface{} `json:"content,omitempty"`
	Trailers interface{} `json:"trailers,omitempty"`
	Similar  interface{} `json:"similar,omitempty"`
}

func (s *HTTPServerAdapter) bindMediaID(c *gin.Context) (int64, bool) {
	var uri mediaURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid id"})
		return 0, false
	}
	id, err := catalog.ParseMediaID(uri.ID)
	if err != nil {
		s.handleError(c, err)
		return 0, false
	}
	return id, true
}

// trending handles GET /api/v1/{movie,tv}/trending
func (s *HTTPServerAdapter) trending(media catalog.MediaType) gin.HandlerFunc {
	return func(c *gin.Context) {
		content, err := s.catalogUseCase.Trending(c.Request.Context(), media)
		if err != nil {
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, ContentResponse{Success: true, Content: content})
	}
}

func (s *HTTPServerAdapter) trailers(media catalog.MediaType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := s.bindMediaID(c)
		if !ok {
			return
		}
		content, err := s.catalogUseCase.Trailers(c.Request.Context(), media, id)
		if err != nil {
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, ContentResponse{Success: true, Trailers: content})
	}
}

func (s *HTTPServerAdapter) details(media catalog.MediaType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := s.bindMediaID(c)
		if !ok {
			return
		}
		content, err := s.catalogUseCase.Details(c.Request.Context(), media, id)
		if err != nil {
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, ContentResponse{Success: true, Content: content})
	}
}

func (s *HTTPServerAdapter) similar(media catalog.MediaType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := s.bindMediaID(c)
		if !ok {
			return
		}
		content, err := s.catalogUseCase.Similar(c.Request.Context(), media, id)
		if err != nil {
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, ContentResponse{Success: true, Similar: content})
	}
}

func (s *HTTPServerAdapter) byCategory(media catalog.MediaType) gin.HandlerFunc {
	return func(c *gin.Context) {
		content, err := s.catalogUseCase.ByCategory(c.Request.Context(), media, c.Param("category"))
		if err != nil {
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, ContentResponse{Success: true, Content: content})
	}
}

// search handles GET /api/v1/search/{person,movie,tv}/:query
func (s *HTTPServerAdapter) search(kind catalog.SearchType) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c)
		if err != nil {
			s.handleError(c, err)
			return
		}

		content, err := s.catalogUseCase.Search(c.Request.Context(), user.ID, kind, c.Param("query"))
		if err != nil {
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, ContentResponse{Success: true, Content: content})
	}
}

// searchHistory handles GET /api/v1/search/history
func (s *HTTPServerAdapter) searchHistory(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	items, err := s.catalogUseCase.History(c.Request.Context(), user.ID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ContentResponse{Success: true, Content: items})
}

// removeFromSearchHistory handles DELETE /api/v1/search/history/:id
func (s *HTTPServerAdapter) removeFromSearchHistory(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		s.handleError(c, err)
		return
	}
	id, ok := s.bindMediaID(c)
	if !ok {
		return
	}

	if err := s.catalogUseCase.RemoveHistoryItem(c.Request.Context(), user.ID, id); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Item removed from search history"})
}
