package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the indexes backing the note views, the retention
// sweep and the reminder ordering. CreateMany is idempotent for identical specs.
func SetupIndexes(ctx context.Context, db *mongo.Database, notesCollection, remindersCollection string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	noteIndexes := []mongo.IndexModel{
		// Active and archived views
		{
			Keys: bson.D{
				{Key: "archived", Value: 1},
				{Key: "deleted_at", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().
				SetName("notes_lifecycle_view"),
		},
		// Trash view and retention purge
		{
			Keys: bson.D{{Key: "deleted_at", Value: 1}},
			Options: options.Index().
				SetName("notes_deleted_at").
				SetPartialFilterExpression(bson.M{"deleted_at": bson.M{"$type": "date"}}),
		},
	}

	reminderIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "reminder_time", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().
				SetName("reminders_by_time"),
		},
	}

	if _, err := db.Collection(notesCollection).Indexes().CreateMany(ctx, noteIndexes); err != nil {
		return fmt.Errorf("failed to create notes indexes: %w", err)
	}

	if _, err := db.Collection(remindersCollection).Indexes().CreateMany(ctx, reminderIndexes); err != nil {
		return fmt.Errorf("failed to create reminders indexes: %w", err)
	}

	return nil
}
