package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/goiam/console/internal/gateway"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// parsePageQuery reads search and paging parameters from the request. Both
// the browser's 1-based "page" parameter and a raw "skip" offset are
// accepted; page wins when both are present.
func parsePageQuery(r *http.Request) gateway.PageQuery {
	q := r.URL.Query()

	search := strings.TrimSpace(q.Get("search"))
	if search == "" {
		search = strings.TrimSpace(q.Get("query"))
	}

	limit := parseBoundedInt(q.Get("limit"), defaultPageLimit, 1, maxPageLimit)

	skip := parseBoundedInt(q.Get("skip"), 0, 0, 1<<30)
	if page := parseBoundedInt(q.Get("page"), 0, 0, 1<<20); page > 0 {
		skip = (page - 1) * limit
	}

	return gateway.PageQuery{Search: search, Skip: skip, Limit: limit}
}

func parseBoundedInt(raw string, def, min, max int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min {
		return def
	}
	if n > max {
		return max
	}
	return n
}
