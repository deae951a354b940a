package todo

import "strings"

// Filter decides whether an item is visible.
type Filter func(Item) bool

// ParseQuery builds a filter from a search query. Every term must match:
//
//	word        text contains word (case-insensitive)
//	key:value   attribute key renders as value (case-insensitive)
//	is:status   status name, e.g. is:in-progress
//	@key        attribute key is truthy
//
// An empty query returns nil, which shows every item.
func ParseQuery(query string) Filter {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return nil
	}

	matchers := make([]Filter, 0, len(terms))
	for _, term := range terms {
		matchers = append(matchers, parseTerm(term))
	}

	return func(item Item) bool {
		for _, m := range matchers {
			if !m(item) {
				return false
			}
		}
		return true
	}
}

func parseTerm(term string) Filter {
	if strings.HasPrefix(term, "@") && len(term) > 1 {
		name := term[1:]
		return func(item Item) bool {
			v, ok := item.Attr(name)
			return ok && v.Truthy()
		}
	}

	if key, value, ok := strings.Cut(term, ":"); ok && key != "" && value != "" {
		if key == "is" {
			want, known := ParseStatus(value)
			return func(item Item) bool {
				return known && item.Status == want
			}
		}
		return func(item Item) bool {
			v, ok := item.Attr(key)
			return ok && strings.EqualFold(v.String(), value)
		}
	}

	needle := strings.ToLower(term)
	return func(item Item) bool {
		return strings.Contains(strings.ToLower(item.Text), needle)
	}
}
