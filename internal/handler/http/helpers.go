package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
)

// actorFrom writes a 401 and returns false when the request carries no AuthContext.
func actorFrom(w http.ResponseWriter, r *http.Request) (auth.AuthContext, bool) {
	actor, ok := middleware.AuthContextFrom(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrMissingAuthenticationCtx)
		return auth.AuthContext{}, false
	}
	return actor, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

func queryBool(r *http.Request, key string) *bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	if err != nil {
		return nil
	}
	return &v
}

// pagination reads page and limit; unparsable values fall back to the defaults.
func pagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

func listMeta(page, limit int, total int64, totalPages int) *response.Meta {
	return &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
