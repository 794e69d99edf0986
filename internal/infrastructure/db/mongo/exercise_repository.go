package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gymguider/fitness-api/internal/core/domain"
)

const exerciseCollection = "exercises"

type ExerciseRepository struct {
	store
}

func NewExerciseRepository(db *mongo.Database, timeout time.Duration) *ExerciseRepository {
	return &ExerciseRepository{store: newStore(db, exerciseCollection, timeout)}
}

type exerciseDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	MuscleGroup string             `bson:"muscle_group"`
	Type        string             `bson:"exercise_type"`
}

func newExerciseDocument(e *domain.Exercise) exerciseDocument {
	return exerciseDocument{
		Name:        e.Name,
		Description: e.Description,
		MuscleGroup: e.MuscleGroup,
		Type:        string(e.Type),
	}
}

func (d exerciseDocument) toDomain() *domain.Exercise {
	return &domain.Exercise{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		MuscleGroup: d.MuscleGroup,
		Type:        domain.ExerciseType(d.Type),
	}
}

func (r *ExerciseRepository) Create(ctx context.Context, e *domain.Exercise) (*domain.Exercise, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc := newExerciseDocument(e)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, mapError("exercise name already exists", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ExerciseRepository) FindByID(ctx context.Context, id string) (*domain.Exercise, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc exerciseDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapError("find exercise", err)
	}
	return doc.toDomain(), nil
}

func (r *ExerciseRepository) List(ctx context.Context) ([]*domain.Exercise, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, mapError("list exercises", err)
	}
	var docs []exerciseDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapError("list exercises", err)
	}

	out := make([]*domain.Exercise, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *ExerciseRepository) Replace(ctx context.Context, e *domain.Exercise) (*domain.Exercise, error) {
	oid, err := objectID(e.ID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc := newExerciseDocument(e)
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, mapError("exercise name already exists", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	return doc.toDomain(), nil
}

func (r *ExerciseRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mapError("delete exercise", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the unique name index on the catalogue.
func (r *ExerciseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
