// Package feed covers the social-feed side of the system: search queries,
// raw post preprocessing, and an HTTP source implementation. The engine core
// never imports it; feeds are a consumed collaborator.
package feed

import (
	"fmt"
	"strings"

	"feedwatch/errors"

	"github.com/go-playground/validator/v10"
)

const (
	minResults = 10
	maxResults = 100
)

var validate = validator.New()

// Query describes one feed search: keywords and/or hashtags OR-combined,
// with an optional ISO 639-1 language filter and a bounded result count.
type Query struct {
	Keywords []string `validate:"dive,min=1"`
	Hashtags []string `validate:"dive,min=1"`
	Lang     string   `validate:"omitempty,len=2"`
	Count    int      `validate:"min=0,max=100"`
}

func (q Query) Validate() error {
	if len(q.Keywords) == 0 && len(q.Hashtags) == 0 {
		return fmt.Errorf("%w: at least one keyword or hashtag is required", errors.ErrInvalidQuery)
	}
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidQuery, err)
	}
	return nil
}

// String renders the provider query: terms OR-joined, hashtags prefixed,
// language appended as a filter clause.
func (q Query) String() string {
	terms := make([]string, 0, len(q.Keywords)+len(q.Hashtags))
	terms = append(terms, q.Keywords...)
	for _, tag := range q.Hashtags {
		terms = append(terms, "#"+strings.TrimPrefix(tag, "#"))
	}

	joined := strings.Join(terms, " OR ")
	if q.Lang == "" {
		return joined
	}
	return fmt.Sprintf("(%s) lang:%s", joined, q.Lang)
}

// ClampCount bounds the requested result count to what the provider accepts.
func (q Query) ClampCount() int {
	switch {
	case q.Count < minResults:
		return minResults
	case q.Count > maxResults:
		return maxResults
	default:
		return q.Count
	}
}
