// Package repository provides data access operations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	apperrors "tour-booking/internal/errors"
	"tour-booking/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the CRUD surface shared by every collection.
type Store[T any] interface {
	Create(ctx context.Context, doc *T) error
	FindByID(ctx context.Context, id primitive.ObjectID, populate bool) (*T, error)
	Find(ctx context.Context, q *models.ListQuery) ([]T, error)
	Replace(ctx context.Context, doc *T) error
	Delete(ctx context.Context, id primitive.ObjectID) (*T, error)
}

// documentPtr lets Repository call Document methods on *T.
type documentPtr[T any] interface {
	*T
	models.Document
}

// Lookup joins documents from another collection at read time.
type Lookup struct {
	From         string
	LocalField   string
	ForeignField string
	As           string
	// Single unwinds the joined array into one embedded document.
	Single bool
}

func (l Lookup) stages() []bson.D {
	stages := []bson.D{{{Key: "$lookup", Value: bson.M{
		"from":         l.From,
		"localField":   l.LocalField,
		"foreignField": l.ForeignField,
		"as":           l.As,
	}}}}
	if l.Single {
		stages = append(stages, bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$" + l.As,
			"preserveNullAndEmptyArrays": true,
		}}})
	}
	return stages
}

type repoConfig struct {
	baseFilter    bson.M
	lookups       []Lookup
	detailLookups []Lookup
}

// Option configures a Repository.
type Option func(*repoConfig)

// WithBaseFilter hides documents not matching filter from every read, update and delete.
func WithBaseFilter(filter bson.M) Option {
	return func(c *repoConfig) { c.baseFilter = filter }
}

// WithLookups populates references on every read.
func WithLookups(lookups ...Lookup) Option {
	return func(c *repoConfig) { c.lookups = append(c.lookups, lookups...) }
}

// WithDetailLookups populates references only when a single document is fetched with populate.
func WithDetailLookups(lookups ...Lookup) Option {
	return func(c *repoConfig) { c.detailLookups = append(c.detailLookups, lookups...) }
}

// Repository implements Store for one collection.
type Repository[T any, PT documentPtr[T]] struct {
	collection *mongo.Collection
	cfg        repoConfig
	now        func() time.Time
}

// NewRepository creates a Repository over the named collection.
func NewRepository[T any, PT documentPtr[T]](db *mongo.Database, collection string, opts ...Option) *Repository[T, PT] {
	r := &Repository[T, PT]{
		collection: db.Collection(collection),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&r.cfg)
	}
	return r
}

// Collection returns the underlying collection.
func (r *Repository[T, PT]) Collection() *mongo.Collection {
	return r.collection
}

// scoped combines filter with the base filter.
func (r *Repository[T, PT]) scoped(filter bson.M) bson.M {
	if len(r.cfg.baseFilter) == 0 {
		return filter
	}
	if len(filter) == 0 {
		return r.cfg.baseFilter
	}
	return bson.M{"$and": bson.A{r.cfg.baseFilter, filter}}
}

func clearPopulated(doc any) {
	if p, ok := doc.(models.Populated); ok {
		p.ClearPopulated()
	}
}

// Create inserts doc and sets its id and creation time.
func (r *Repository[T, PT]) Create(ctx context.Context, doc *T) error {
	d := PT(doc)
	clearPopulated(d)
	if d.GetCreatedAt().IsZero() {
		d.SetCreatedAt(r.now().UTC().Truncate(time.Millisecond))
	}

	result, err := r.collection.InsertOne(ctx, d)
	if err != nil {
		return err
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		d.SetID(id)
	}
	return nil
}

// FindByID finds a document by id, joining references when populate is set.
func (r *Repository[T, PT]) FindByID(ctx context.Context, id primitive.ObjectID, populate bool) (*T, error) {
	filter := r.scoped(bson.M{"_id": id})

	if !populate || len(r.cfg.lookups)+len(r.cfg.detailLookups) == 0 {
		var doc T
		if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, apperrors.ErrDocumentNotFound
			}
			return nil, err
		}
		return &doc, nil
	}

	pipeline := mongo.Pipeline{{{Key: "$match", Value: filter}}, {{Key: "$limit", Value: 1}}}
	for _, l := range append(append([]Lookup{}, r.cfg.lookups...), r.cfg.detailLookups...) {
		pipeline = append(pipeline, l.stages()...)
	}

	docs, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, apperrors.ErrDocumentNotFound
	}
	return &docs[0], nil
}

// FindOne returns the first document matching filter, without joins.
func (r *Repository[T, PT]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	if err := r.collection.FindOne(ctx, r.scoped(filter)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// Find runs a filtered, sorted, projected and paginated query.
func (r *Repository[T, PT]) Find(ctx context.Context, q *models.ListQuery) ([]T, error) {
	if q == nil {
		q = models.NewListQuery()
	}

	sort := q.Sort
	if len(sort) == 0 {
		sort = bson.D{{Key: "createdAt", Value: -1}}
	}
	if !hasKey(sort, "_id") {
		// Tie-break on _id so pages never overlap.
		sort = append(append(bson.D{}, sort...), bson.E{Key: "_id", Value: 1})
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: r.scoped(q.Filter)}},
		{{Key: "$sort", Value: sort}},
		{{Key: "$skip", Value: q.Skip()}},
	}
	if q.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: q.Limit}})
	}
	for _, l := range r.cfg.lookups {
		pipeline = append(pipeline, l.stages()...)
	}
	if projection := q.Projection(); projection != nil {
		pipeline = append(pipeline, bson.D{{Key: "$project", Value: projection}})
	}

	return r.aggregate(ctx, pipeline)
}

// FindAll returns every document matching filter, with joins, newest first.
func (r *Repository[T, PT]) FindAll(ctx context.Context, filter bson.M) ([]T, error) {
	q := models.NewListQuery()
	q.Filter = filter
	q.Limit = 0
	return r.Find(ctx, q)
}

// Replace overwrites the stored document with doc.
func (r *Repository[T, PT]) Replace(ctx context.Context, doc *T) error {
	d := PT(doc)
	clearPopulated(d)

	result, err := r.collection.ReplaceOne(ctx, r.scoped(bson.M{"_id": d.GetID()}), d)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

// UpdateFields sets the given fields on one document.
func (r *Repository[T, PT]) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	result, err := r.collection.UpdateOne(ctx, r.scoped(bson.M{"_id": id}), bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

// Delete removes a document and returns it.
func (r *Repository[T, PT]) Delete(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	err := r.collection.FindOneAndDelete(ctx, r.scoped(bson.M{"_id": id})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// Aggregate runs pipeline with the base filter applied and decodes into out.
// A leading $geoNear stage stays first.
func (r *Repository[T, PT]) Aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	cursor, err := r.collection.Aggregate(ctx, r.withBaseMatch(pipeline))
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, out)
}

func (r *Repository[T, PT]) withBaseMatch(pipeline mongo.Pipeline) mongo.Pipeline {
	if len(r.cfg.baseFilter) == 0 {
		return pipeline
	}
	match := bson.D{{Key: "$match", Value: r.cfg.baseFilter}}
	if len(pipeline) > 0 && len(pipeline[0]) > 0 && pipeline[0][0].Key == "$geoNear" {
		out := mongo.Pipeline{pipeline[0], match}
		return append(out, pipeline[1:]...)
	}
	return append(mongo.Pipeline{match}, pipeline...)
}

// aggregate runs a pipeline that already includes the base filter.
func (r *Repository[T, PT]) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]T, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline, options.Aggregate().SetAllowDiskUse(true))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	// Return empty slice instead of nil
	if docs == nil {
		docs = []T{}
	}

	return docs, nil
}

func hasKey(d bson.D, key string) bool {
	for _, e := range d {
		if e.Key == key {
			return true
		}
	}
	return false
}
