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

const logCollection = "workout_logs"

type LogRepository struct {
	store
}

func NewLogRepository(db *mongo.Database, timeout time.Duration) *LogRepository {
	return &LogRepository{store: newStore(db, logCollection, timeout)}
}

type logDocument struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID             string             `bson:"user_id"`
	ExerciseID          string             `bson:"exercise_id"`
	ExerciseName        string             `bson:"exercise_name"`
	ExerciseDescription string             `bson:"exercise_description,omitempty"`
	Sets                int                `bson:"sets"`
	Reps                int                `bson:"reps"`
	Date                time.Time          `bson:"date"`
	DurationMinutes     int                `bson:"duration"`
	Notes               string             `bson:"notes,omitempty"`
	CreatedAt           time.Time          `bson:"created_at"`
}

func newLogDocument(l *domain.WorkoutLog) logDocument {
	return logDocument{
		OwnerID:             l.OwnerID,
		ExerciseID:          l.ExerciseID,
		ExerciseName:        l.ExerciseName,
		ExerciseDescription: l.ExerciseDescription,
		Sets:                l.Sets,
		Reps:                l.Reps,
		Date:                l.Date.UTC(),
		DurationMinutes:     l.DurationMinutes,
		Notes:               l.Notes,
		CreatedAt:           l.CreatedAt.UTC(),
	}
}

func (d logDocument) toDomain() *domain.WorkoutLog {
	return &domain.WorkoutLog{
		ID:                  d.ID.Hex(),
		OwnerID:             d.OwnerID,
		ExerciseID:          d.ExerciseID,
		ExerciseName:        d.ExerciseName,
		ExerciseDescription: d.ExerciseDescription,
		Sets:                d.Sets,
		Reps:                d.Reps,
		Date:                d.Date.UTC(),
		DurationMinutes:     d.DurationMinutes,
		Notes:               d.Notes,
		CreatedAt:           d.CreatedAt.UTC(),
	}
}

func (r *LogRepository) Create(ctx context.Context, l *domain.WorkoutLog) (*domain.WorkoutLog, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc := newLogDocument(l)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, mapError("insert log", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *LogRepository) FindByID(ctx context.Context, id string) (*domain.WorkoutLog, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc logDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapError("find log", err)
	}
	return doc.toDomain(), nil
}

// List returns logs newest date first. An empty ownerID lists every log.
func (r *LogRepository) List(ctx context.Context, ownerID string) ([]*domain.WorkoutLog, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if ownerID != "" {
		filter["user_id"] = ownerID
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, mapError("list logs", err)
	}
	var docs []logDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapError("list logs", err)
	}

	out := make([]*domain.WorkoutLog, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// Update applies patch with a single $set so concurrent patches to different
// fields do not overwrite each other.
func (r *LogRepository) Update(ctx context.Context, id string, patch domain.WorkoutLogPatch) (*domain.WorkoutLog, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if patch.DurationMinutes != nil {
		set["duration"] = *patch.DurationMinutes
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc logDocument
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		return nil, mapError("update log", err)
	}
	return doc.toDomain(), nil
}

func (r *LogRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mapError("delete log", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the owner/date lookup index.
func (r *LogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
	})
	return err
}
