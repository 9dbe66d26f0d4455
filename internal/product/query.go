package product

import (
	"net/url"
	"strings"

	"storefront/internal/validation"

	"github.com/shopspring/decimal"
)

// ParseListOptions reads minPrice, maxPrice, search, sortField and
// sortDirection. Unparseable prices are reported per field; the returned
// options still carry every filter that did parse.
func ParseListOptions(q url.Values) (ListOptions, error) {
	opts := ListOptions{
		Search:        strings.TrimSpace(q.Get("search")),
		SortField:     SortField(strings.ToLower(q.Get("sortField"))),
		SortDirection: SortDirection(strings.ToLower(q.Get("sortDirection"))),
	}

	fields := map[string]string{}
	for _, name := range []string{"minPrice", "maxPrice"} {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			fields[name] = "must be a number"
			continue
		}
		if name == "minPrice" {
			opts.MinPrice = &d
		} else {
			opts.MaxPrice = &d
		}
	}
	if len(fields) > 0 {
		return opts, &validation.Error{Fields: fields}
	}
	return opts, nil
}
