package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Paging defaults for list endpoints.
const (
	DefaultPage  = 1
	DefaultLimit = 100
	DefaultSort  = "-createdAt"
)

// ListQuery is a parsed list request: filter, ordering, projection and paging.
type ListQuery struct {
	Filter bson.M
	Sort   bson.D
	Fields []string
	Page   int64
	Limit  int64
}

// NewListQuery returns a query with the default sort and paging.
func NewListQuery() *ListQuery {
	return &ListQuery{
		Filter: bson.M{},
		Sort:   bson.D{{Key: "createdAt", Value: -1}},
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}
}

// Skip returns the number of documents to skip for the current page.
func (q *ListQuery) Skip() int64 {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// Projection returns the projection for Fields, or nil for all fields.
// A leading "-" excludes the field instead of including it.
func (q *ListQuery) Projection() bson.M {
	if len(q.Fields) == 0 {
		return nil
	}
	projection := bson.M{}
	for _, f := range q.Fields {
		if name, ok := strings.CutPrefix(f, "-"); ok {
			projection[name] = 0
			continue
		}
		projection[f] = 1
	}
	return projection
}
