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

type RemindersRepo struct {
	MongoCollection *mongo.Collection
	Timeout         time.Duration
}

func GetRemindersRepo(db *mongo.Database, collection string, timeout time.Duration) *RemindersRepo {
	return &RemindersRepo{
		MongoCollection: db.Collection(collection),
		Timeout:         timeout,
	}
}

func (r *RemindersRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *RemindersRepo) Insert(ctx context.Context, reminder *model.Reminder) error {
	timer := utils.TrackDBOperation("insert", r.MongoCollection.Name())
	defer timer.ObserveDuration()

	if reminder == nil || strings.TrimSpace(reminder.ID) == "" {
		utils.TrackError("database", "invalid_reminder_data")
		return apperr.Validation("reminder id is required")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, reminder); err != nil {
		utils.TrackError("database", "reminder_insert_failed")
		return apperr.Storage(err, "failed to insert reminder")
	}
	return nil
}

func (r *RemindersRepo) FindByID(ctx context.Context, id string) (*model.Reminder, error) {
	timer := utils.TrackDBOperation("find", r.MongoCollection.Name())
	defer timer.ObserveDuration()

	if strings.TrimSpace(id) == "" {
		return nil, apperr.Validation("reminder id is required")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var reminder model.Reminder
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&reminder)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Reminder not found")
		}
		utils.TrackError("database", "reminder_fetch_failed")
		return nil, apperr.Storage(err, "failed to fetch reminder")
	}
	return &reminder, nil
}

func (r *RemindersRepo) FindAll(ctx context.Context) ([]*model.Reminder, error) {
	timer := utils.TrackDBOperation("find", r.MongoCollection.Name())
	defer timer.ObserveDuration()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "reminder_time", Value: 1},
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.TrackError("database", "reminder_find_failed")
		return nil, apperr.Storage(err, "failed to find reminders")
	}
	defer cursor.Close(ctx)

	reminders := []*model.Reminder{}
	if err = cursor.All(ctx, &reminders); err != nil {
		utils.TrackError("database", "reminder_decode_failed")
		return nil, apperr.Storage(err, "failed to decode reminders")
	}
	return reminders, nil
}

// ClampToNow runs the clamp as an update pipeline so the comparison with now
// happens inside the same atomic write as the persist.
func (r *RemindersRepo) ClampToNow(ctx context.Context, id string, now time.Time) (*model.Reminder, error) {
	timer := utils.TrackDBOperation("update", r.MongoCollection.Name())
	defer timer.ObserveDuration()

	if strings.TrimSpace(id) == "" {
		return nil, apperr.Validation("reminder id is required")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "reminder_time", Value: bson.D{{Key: "$max", Value: bson.A{"$reminder_time", now}}}},
			{Key: "updated_at", Value: now},
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var reminder model.Reminder
	err := r.MongoCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&reminder)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Reminder not found")
		}
		utils.TrackError("database", "reminder_update_failed")
		return nil, apperr.Storage(err, "failed to update reminder")
	}
	return &reminder, nil
}

func (r *RemindersRepo) Delete(ctx context.Context, id string) error {
	timer := utils.TrackDBOperation("delete", r.MongoCollection.Name())
	defer timer.ObserveDuration()

	if strings.TrimSpace(id) == "" {
		return apperr.Validation("reminder id is required")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.TrackError("database", "reminder_delete_failed")
		return apperr.Storage(err, "failed to delete reminder")
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound("Reminder not found")
	}
	return nil
}
