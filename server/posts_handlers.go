package server

import (
	"net/http"

	"github.com/jrsteele09/go-auth-client/posts"
)

// ListPostsHandler returns every post as a plain JSON array, the shape the
// posts client and the original frontend expect.
func (s *Server) ListPostsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := s.repos.Posts.List()
		if err != nil {
			s.log.Err(err).Msg("posts list failed")
			writeJSON(w, http.StatusInternalServerError, errorBody("Internal Server Error", "Could not list posts"))
			return
		}
		if all == nil {
			all = []*posts.Post{}
		}
		writeJSON(w, http.StatusOK, all)
	}
}
