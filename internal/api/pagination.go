package api

import (
	"net/http"
	"strconv"
	"strings"

	domainerrors "markeep/internal/errors"
	"markeep/internal/models"
)

// parsePageRequest reads page and size from the query string. Missing values
// take the defaults; anything malformed or out of range is rejected.
func parsePageRequest(r *http.Request) (models.PageRequest, error) {
	page, err := intQuery(r, "page", 0)
	if err != nil {
		return models.PageRequest{}, err
	}
	size, err := intQuery(r, "size", models.DefaultPageSize)
	if err != nil {
		return models.PageRequest{}, err
	}
	return models.NewPageRequest(page, size)
}

func intQuery(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domainerrors.InvalidArgument("'" + name + "' must be an integer")
	}
	return v, nil
}

// parseKeywords accepts both repeated parameters (?keywords=a&keywords=b) and
// comma separated lists (?keywords=a,b).
func parseKeywords(r *http.Request) ([]string, error) {
	var raw []string
	for _, v := range r.URL.Query()["keywords"] {
		raw = append(raw, strings.Split(v, ",")...)
	}
	return models.NormalizeKeywords(raw)
}

func parseIDParam(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.InvalidArgument("invalid " + name)
	}
	return id, nil
}
