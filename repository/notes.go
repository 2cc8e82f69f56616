package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dododo1295/keepnotes/apperr"
	"github.com/dododo1295/keepnotes/model"
	"github.com/dododo1295/keepnotes/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

type NotesRepo struct {
	MongoCollection *mongo.Collection
	Timeout         time.Duration
}

func GetNotesRepo(db *mongo.Database, collection string, timeout time.Duration) *NotesRepo {
	return &NotesRepo{
		MongoCollection: db.Collection(collection),
		Timeout:         timeout,
	}
}

func (r *NotesRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *NotesRepo) collectionName() string {
	return r.MongoCollection.Name()
}

// noteFilterToBSON mirrors model.NoteFilter.Matches. Clauses are joined with
// $and so contradictory filters match nothing instead of overwriting keys.
func noteFilterToBSON(f model.NoteFilter) bson.M {
	var clauses []bson.M
	if f.Archived != nil {
		clauses = append(clauses, bson.M{"archived": *f.Archived})
	}
	if f.Trashed != nil {
		if *f.Trashed {
			clauses = append(clauses, bson.M{"deleted_at": bson.M{"$ne": nil}})
		} else {
			clauses = append(clauses, bson.M{"deleted_at": nil})
		}
	}
	if f.DeletedAtOrBefore != nil {
		clauses = append(clauses, bson.M{"deleted_at": bson.M{"$ne": nil, "$lte": *f.DeletedAtOrBefore}})
	}

	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	default:
		return bson.M{"$and": clauses}
	}
}

func notePatchToBSON(p model.NotePatch, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if p.Archived != nil {
		set["archived"] = *p.Archived
	}
	if p.DeletedAt != nil {
		set["deleted_at"] = *p.DeletedAt
	}
	if p.ClearDeletedAt {
		set["deleted_at"] = nil
	}
	return bson.M{"$set": set}
}

// Insert stores a new note
func (r *NotesRepo) Insert(ctx context.Context, note *model.Note) error {
	timer := utils.TrackDBOperation("insert", r.collectionName())
	defer timer.ObserveDuration()

	if note == nil || strings.TrimSpace(note.ID) == "" {
		utils.TrackError("database", "invalid_note_data")
		return apperr.Validation("note id is required")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, note); err != nil {
		utils.TrackError("database", "note_insert_failed")
		return apperr.Storage(err, "failed to insert note")
	}
	return nil
}

// FindByID retrieves a specific note
func (r *NotesRepo) FindByID(ctx context.Context, id string) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", r.collectionName())
	defer timer.ObserveDuration()

	if strings.TrimSpace(id) == "" {
		return nil, apperr.Validation("note id is required")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var note model.Note
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Note not found")
		}
		utils.TrackError("database", "note_fetch_failed")
		return nil, apperr.Storage(err, "failed to fetch note")
	}
	return &note, nil
}

// Find lists notes matching the filter in creation order
func (r *NotesRepo) Find(ctx context.Context, filter model.NoteFilter) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", r.collectionName())
	defer timer.ObserveDuration()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.MongoCollection.Find(ctx, noteFilterToBSON(filter), opts)
	if err != nil {
		utils.TrackError("database", "note_find_failed")
		return nil, apperr.Storage(err, "failed to find notes")
	}
	defer cursor.Close(ctx)

	notes := []*model.Note{}
	if err = cursor.All(ctx, &notes); err != nil {
		utils.TrackError("database", "note_decode_failed")
		return nil, apperr.Storage(err, "failed to decode notes")
	}
	return notes, nil
}

// Update applies a guarded single-document update with FindOneAndUpdate so the
// check and the write cannot interleave with another writer.
func (r *NotesRepo) Update(ctx context.Context, id string, guard model.NoteFilter, patch model.NotePatch, now time.Time) (*model.Note, error) {
	timer := utils.TrackDBOperation("update", r.collectionName())
	defer timer.ObserveDuration()

	if strings.TrimSpace(id) == "" {
		return nil, apperr.Validation("note id is required")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.M{"_id": id}
	if !guard.IsEmpty() {
		filter = bson.M{"$and": []bson.M{{"_id": id}, noteFilterToBSON(guard)}}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var note model.Note
	err := r.MongoCollection.FindOneAndUpdate(ctx, filter, notePatchToBSON(patch, now), opts).Decode(&note)
	if err == nil {
		return &note, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		utils.TrackError("database", "note_update_failed")
		return nil, apperr.Storage(err, "failed to update note")
	}
	if guard.IsEmpty() {
		return nil, apperr.NotFound("Note not found")
	}

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		utils.TrackError("database", "note_count_failed")
		return nil, apperr.Storage(err, "failed to update note")
	}
	if count == 0 {
		return nil, apperr.NotFound("Note not found")
	}
	return nil, ErrPreconditionFailed
}

// DeleteMany permanently removes matching notes
func (r *NotesRepo) DeleteMany(ctx context.Context, filter model.NoteFilter) (int64, error) {
	timer := utils.TrackDBOperation("delete", r.collectionName())
	defer timer.ObserveDuration()

	if filter.IsEmpty() {
		return 0, apperr.Validation("refusing to delete notes without a filter")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.MongoCollection.DeleteMany(ctx, noteFilterToBSON(filter))
	if err != nil {
		utils.TrackError("database", "note_delete_failed")
		return 0, apperr.Storage(err, "failed to delete notes")
	}
	return result.DeletedCount, nil
}

func (r *NotesRepo) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.MongoCollection.Database().Client().Ping(ctx, nil); err != nil {
		return apperr.Storage(err, "failed to ping MongoDB")
	}
	return nil
}
