package handler

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"tour-booking/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// reservedParams control paging and shape, they never filter.
var reservedParams = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

var comparisonParam = regexp.MustCompile(`^([A-Za-z0-9_.]+)\[(gte|gt|lte|lt)\]$`)

// ParseListQuery turns query parameters into a ListQuery.
//
//	difficulty=easy             equality
//	price[lt]=1500              comparison (gte, gt, lte, lt)
//	difficulty=easy&difficulty=medium   any of ($in)
//	sort=price,-ratingsAverage  ordering, "-" for descending
//	fields=name,price           projection
//	page=2&limit=10             paging
func ParseListQuery(params map[string][]string) *models.ListQuery {
	q := models.NewListQuery()

	for key, values := range params {
		if reservedParams[key] || len(values) == 0 {
			continue
		}

		if m := comparisonParam.FindStringSubmatch(key); m != nil {
			field, op := m[1], "$"+m[2]
			cond, _ := q.Filter[field].(bson.M)
			if cond == nil {
				cond = bson.M{}
			}
			cond[op] = coerce(values[len(values)-1])
			q.Filter[field] = cond
			continue
		}

		if len(values) == 1 {
			q.Filter[key] = coerce(values[0])
			continue
		}
		in := make(bson.A, 0, len(values))
		for _, v := range values {
			in = append(in, coerce(v))
		}
		q.Filter[key] = bson.M{"$in": in}
	}

	if sort := last(params["sort"]); sort != "" {
		q.Sort = parseSort(sort)
	}
	if fields := last(params["fields"]); fields != "" {
		q.Fields = splitList(fields)
	}
	if page, ok := positiveInt(last(params["page"])); ok {
		q.Page = page
	}
	if limit, ok := positiveInt(last(params["limit"])); ok {
		q.Limit = limit
	}

	return q
}

func parseSort(s string) bson.D {
	sort := bson.D{}
	for _, f := range splitList(s) {
		if name, ok := strings.CutPrefix(f, "-"); ok {
			sort = append(sort, bson.E{Key: name, Value: -1})
			continue
		}
		sort = append(sort, bson.E{Key: f, Value: 1})
	}
	return sort
}

// coerce converts a query value to the BSON type it most likely stands for.
func coerce(v string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(v); err == nil {
		return oid
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(v); err == nil && (v == "true" || v == "false") {
		return b
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return v
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func positiveInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func last(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}
