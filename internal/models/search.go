package models

import (
	"fmt"
	"strings"

	domainerrors "markeep/internal/errors"
)

const MaxKeywords = 10

// NormalizeKeywords trims the raw keywords, drops empty ones and removes
// case-insensitive duplicates, keeping the first spelling seen. The result is
// never nil.
func NormalizeKeywords(raw []string) ([]string, error) {
	keywords := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, k := range raw {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		folded := strings.ToLower(k)
		if _, ok := seen[folded]; ok {
			continue
		}
		seen[folded] = struct{}{}
		keywords = append(keywords, k)
	}

	if len(keywords) > MaxKeywords {
		return nil, domainerrors.InvalidArgument(fmt.Sprintf("at most %d keywords are allowed", MaxKeywords))
	}
	return keywords, nil
}
