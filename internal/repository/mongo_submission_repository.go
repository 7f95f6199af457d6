package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bamdigital/site-backend/internal/model"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const submissionCollection = "contact_submissions"

// MongoSubmissionRepository is the document-store implementation of
// SubmissionRepository, for deployments that keep submissions in MongoDB
// instead of Postgres.
type MongoSubmissionRepository struct {
	coll *mongo.Collection
}

// NewMongoClient connects to MongoDB and verifies connectivity.
func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return client, nil
}

// NewMongoSubmissionRepository creates a MongoSubmissionRepository using the
// contact_submissions collection of the given database.
func NewMongoSubmissionRepository(db *mongo.Database) *MongoSubmissionRepository {
	return &MongoSubmissionRepository{coll: db.Collection(submissionCollection)}
}

var _ SubmissionRepository = (*MongoSubmissionRepository)(nil)

// submissionDoc maps a ContactSubmission onto the collection schema.
type submissionDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Company   string        `bson:"company,omitempty"`
	Phone     string        `bson:"phone,omitempty"`
	Service   string        `bson:"service,omitempty"`
	Message   string        `bson:"message"`
	CreatedAt time.Time     `bson:"created_at"`
	Read      bool          `bson:"read"`
}

func (d *submissionDoc) toModel() *model.ContactSubmission {
	return &model.ContactSubmission{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Company:   d.Company,
		Phone:     d.Phone,
		Service:   d.Service,
		Message:   d.Message,
		CreatedAt: d.CreatedAt,
		Read:      d.Read,
	}
}

// Create inserts a new document, assigning the id and creation time.
func (r *MongoSubmissionRepository) Create(ctx context.Context, sub *model.ContactSubmission) error {
	if r.coll == nil {
		return ErrUnavailable
	}
	doc := submissionDoc{
		Name:      sub.Name,
		Email:     sub.Email,
		Company:   sub.Company,
		Phone:     sub.Phone,
		Service:   sub.Service,
		Message:   sub.Message,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Read:      false,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return classifyMongoError(err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	sub.ID = oid.Hex()
	sub.CreatedAt = doc.CreatedAt
	sub.Read = false
	return nil
}

// ListAll returns every submission, newest first.
func (r *MongoSubmissionRepository) ListAll(ctx context.Context) ([]*model.ContactSubmission, error) {
	if r.coll == nil {
		return nil, ErrUnavailable
	}
	cursor, err := r.coll.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, classifyMongoError(err)
	}
	defer cursor.Close(ctx)

	var subs []*model.ContactSubmission
	for cursor.Next(ctx) {
		var d submissionDoc
		if err := cursor.Decode(&d); err != nil {
			return nil, err
		}
		subs = append(subs, d.toModel())
	}
	return subs, cursor.Err()
}

// MarkRead sets read=true. MatchedCount distinguishes a missing document from
// an already-read one, so re-marking stays an idempotent success.
func (r *MongoSubmissionRepository) MarkRead(ctx context.Context, id string) error {
	if r.coll == nil {
		return ErrUnavailable
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return classifyMongoError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete permanently removes the submission.
func (r *MongoSubmissionRepository) Delete(ctx context.Context, id string) error {
	if r.coll == nil {
		return ErrUnavailable
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return classifyMongoError(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// classifyMongoError maps driver errors onto the repository taxonomy.
func classifyMongoError(err error) error {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		// 13 = Unauthorized
		if cmdErr.Code == 13 {
			return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
	}
	if errors.Is(err, mongo.ErrClientDisconnected) || mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
