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

const planCollection = "workout_plans"

type PlanRepository struct {
	store
}

func NewPlanRepository(db *mongo.Database, timeout time.Duration) *PlanRepository {
	return &PlanRepository{store: newStore(db, planCollection, timeout)}
}

type planDocument struct {
	ID        primitive.ObjectID    `bson:"_id,omitempty"`
	OwnerID   string                `bson:"user_id"`
	Title     string                `bson:"title"`
	Level     string                `bson:"level"`
	Exercises []domain.PlanExercise `bson:"exercises"`
	StartDate time.Time             `bson:"start_date"`
	EndDate   time.Time             `bson:"end_date"`
	CreatedAt time.Time             `bson:"created_at"`
}

func newPlanDocument(p *domain.WorkoutPlan) planDocument {
	return planDocument{
		OwnerID:   p.OwnerID,
		Title:     p.Title,
		Level:     string(p.Level),
		Exercises: p.Exercises,
		StartDate: p.StartDate.UTC(),
		EndDate:   p.EndDate.UTC(),
		CreatedAt: p.CreatedAt.UTC(),
	}
}

func (d planDocument) toDomain() *domain.WorkoutPlan {
	exercises := d.Exercises
	if exercises == nil {
		exercises = []domain.PlanExercise{}
	}
	return &domain.WorkoutPlan{
		ID:        d.ID.Hex(),
		OwnerID:   d.OwnerID,
		Title:     d.Title,
		Level:     domain.PlanLevel(d.Level),
		Exercises: exercises,
		StartDate: d.StartDate.UTC(),
		EndDate:   d.EndDate.UTC(),
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func (r *PlanRepository) Create(ctx context.Context, p *domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc := newPlanDocument(p)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, mapError("insert plan", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *PlanRepository) FindByID(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc planDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapError("find plan", err)
	}
	return doc.toDomain(), nil
}

// List returns plans newest first. An empty ownerID lists every plan.
func (r *PlanRepository) List(ctx context.Context, ownerID string) ([]*domain.WorkoutPlan, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if ownerID != "" {
		filter["user_id"] = ownerID
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, mapError("list plans", err)
	}
	var docs []planDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapError("list plans", err)
	}

	out := make([]*domain.WorkoutPlan, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *PlanRepository) Replace(ctx context.Context, p *domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	oid, err := objectID(p.ID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc := newPlanDocument(p)
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, mapError("replace plan", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	return doc.toDomain(), nil
}

func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mapError("delete plan", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the owner lookup index.
func (r *PlanRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
