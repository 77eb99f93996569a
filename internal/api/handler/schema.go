package handler

// paginatedResponse is the standard envelope for list endpoints.
type paginatedResponse struct {
	Items      any   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// parsePage normalizes the page/limit query parameters; the services clamp
// the values again, so this only has to survive garbage input.
func parsePage(pageStr, limitStr string) (page, limit int) {
	page = atoiDefault(pageStr, 1)
	limit = atoiDefault(limitStr, 0)
	return page, limit
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return def
		}
		n = n*10 + int(r-'0')
		if n > 1_000_000 {
			return def
		}
	}
	return n
}
