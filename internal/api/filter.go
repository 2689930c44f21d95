package api

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/iupui-soic/dhis2-android-sdk/models"
)

// Filter is one `field:operator:value` clause of a remote query. Multiple
// clauses sent in one request combine with logical AND.
type Filter struct {
	Field string
	Op    string
	Value string
}

func (f Filter) String() string {
	return f.Field + ":" + f.Op + ":" + f.Value
}

// GreaterThan builds a strictly-greater-than clause for timestamp fields,
// rendered in the wire timestamp format.
func GreaterThan(field string, t time.Time) Filter {
	return Filter{Field: field, Op: "gt", Value: models.FormatAPITime(t)}
}

// In builds a set-membership clause. Values are deduplicated and sorted:
// the clause has set semantics, so ordering and repetition carry no meaning.
func In(field string, values []string) Filter {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set[v] = struct{}{}
		}
	}

	unique := make([]string, 0, len(set))
	for v := range set {
		unique = append(unique, v)
	}
	sort.Strings(unique)

	return Filter{Field: field, Op: "in", Value: "[" + strings.Join(unique, ",") + "]"}
}

// filterValues renders filters as repeated `filter` query parameters.
func filterValues(filters []Filter) url.Values {
	values := url.Values{}
	for _, f := range filters {
		values.Add("filter", f.String())
	}
	return values
}
