// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/contesthub/server/models"
)

// Mongo implements Store on top of a MongoDB database.
type Mongo struct {
	client         *mongo.Client
	users          *mongo.Collection
	contests       *mongo.Collection
	participations *mongo.Collection
}

// Connect opens a client, verifies the connection, and binds the
// collections. The caller owns the returned handle and must Close it.
func Connect(ctx context.Context, uri, dbName string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	database := client.Database(dbName)
	return &Mongo{
		client:         client,
		users:          database.Collection("users"),
		contests:       database.Collection("contests"),
		participations: database.Collection("participations"),
	}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes the store relies on:
// one user per email, one participation per (userId, contestId).
// Safe to call on every startup.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	_, err = m.participations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "contestId", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_user_contest"),
	})
	if err != nil {
		return fmt.Errorf("participations index: %w", err)
	}

	_, err = m.contests.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("contests index: %w", err)
	}
	return nil
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

// Users

func (m *Mongo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := m.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (m *Mongo) InsertUser(ctx context.Context, u *models.User) (string, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	res, err := m.users.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return "", ErrDuplicate
	}
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (m *Mongo) SetUserRole(ctx context.Context, id string, role string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := m.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) DeleteUser(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := m.users.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) ListUsers(ctx context.Context) ([]models.User, error) {
	cur, err := m.users.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.User{}
	}
	return out, nil
}

// Contests

func (m *Mongo) InsertContest(ctx context.Context, c *models.Contest) (string, error) {
	if c.Status == "" {
		c.Status = models.StatusSubmitted
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	res, err := m.contests.InsertOne(ctx, c)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (m *Mongo) GetContest(ctx context.Context, id string) (*models.Contest, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var c models.Contest
	err = m.contests.FindOne(ctx, bson.M{"_id": oid}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (m *Mongo) UpdateSubmittedContest(ctx context.Context, id string, upd models.ContestUpdate) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	set := bson.M{
		"contestName":     upd.ContestName,
		"description":     upd.Description,
		"price":           upd.Price,
		"prizeMoney":      upd.PrizeMoney,
		"taskInstruction": upd.TaskInstruction,
		"selectedTag":     upd.SelectedTag,
		"deadline":        upd.Deadline,
		"email":           upd.Email,
	}
	if upd.Image != nil {
		set["image"] = upd.Image
		set["imageType"] = upd.ImageType
	}

	// Status-guarded: only a submitted contest can be edited, and a
	// missing identifier is a 404, never a fresh document.
	res, err := m.contests.UpdateOne(ctx,
		bson.M{"_id": oid, "status": models.StatusSubmitted},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) DeleteSubmittedContest(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := m.contests.DeleteOne(ctx, bson.M{"_id": oid, "status": models.StatusSubmitted})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) AppendComment(ctx context.Context, id string, comment string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := m.contests.UpdateOne(ctx,
		bson.M{"_id": oid, "status": models.StatusSubmitted},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ConfirmContest moves a submitted contest to confirmed in a single
// guarded update, so the document can never be lost mid-transition.
func (m *Mongo) ConfirmContest(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := m.contests.UpdateOne(ctx,
		bson.M{"_id": oid, "status": models.StatusSubmitted},
		bson.M{"$set": bson.M{"status": models.StatusConfirmed}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) ListContestsByStatus(ctx context.Context, statuses ...string) ([]models.Contest, error) {
	return m.findContests(ctx, bson.M{"status": bson.M{"$in": statuses}})
}

func (m *Mongo) ListContestsByCreator(ctx context.Context, email string, statuses ...string) ([]models.Contest, error) {
	return m.findContests(ctx, bson.M{"email": email, "status": bson.M{"$in": statuses}})
}

func (m *Mongo) ListContestsByIDs(ctx context.Context, ids []string) ([]models.Contest, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue // skip malformed references rather than failing the whole read
		}
		oids = append(oids, oid)
	}
	return m.findContests(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (m *Mongo) findContests(ctx context.Context, filter bson.M) ([]models.Contest, error) {
	cur, err := m.contests.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []models.Contest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Contest{}
	}
	return out, nil
}

// Participation

// AddParticipant inserts the participation record and increments the
// contest's participant counter. If the increment fails, the insert is
// compensated with a delete so the counter and the records cannot drift.
func (m *Mongo) AddParticipant(ctx context.Context, p *models.Participation) (string, error) {
	oid, err := objectID(p.ContestID)
	if err != nil {
		return "", err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	res, err := m.participations.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return "", ErrDuplicate
	}
	if err != nil {
		return "", err
	}
	insertedID := res.InsertedID.(primitive.ObjectID)

	upd, err := m.contests.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"participants": 1}})
	if err == nil && upd.MatchedCount == 0 {
		err = ErrNotFound
	}
	if err != nil {
		_, _ = m.participations.DeleteOne(ctx, bson.M{"_id": insertedID})
		return "", err
	}

	return insertedID.Hex(), nil
}

func (m *Mongo) SetSubmissionURL(ctx context.Context, contestID, userID, url string) error {
	res, err := m.participations.UpdateOne(ctx,
		bson.M{"contestId": contestID, "userId": userID},
		bson.M{"$set": bson.M{"submissionUrl": url}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeclareWinner closes a confirmed contest with the given winner and
// marks the matching participation. If the participation update fails,
// the contest write is compensated back to confirmed.
func (m *Mongo) DeclareWinner(ctx context.Context, contestID string, w models.Winner) error {
	oid, err := objectID(contestID)
	if err != nil {
		return err
	}

	res, err := m.contests.UpdateOne(ctx,
		bson.M{"_id": oid, "status": models.StatusConfirmed},
		bson.M{"$set": bson.M{"winner": w, "status": models.StatusClosed}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing contest from one in the wrong status.
		var c models.Contest
		ferr := m.contests.FindOne(ctx, bson.M{"_id": oid}).Decode(&c)
		if ferr == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		if ferr != nil {
			return ferr
		}
		return ErrWrongStatus
	}

	upd, err := m.participations.UpdateOne(ctx,
		bson.M{"contestId": contestID, "userId": w.UserID},
		bson.M{"$set": bson.M{"winner": true}},
	)
	if err == nil && upd.MatchedCount == 0 {
		err = ErrNotFound
	}
	if err != nil {
		_, _ = m.contests.UpdateOne(ctx, bson.M{"_id": oid},
			bson.M{"$set": bson.M{"status": models.StatusConfirmed}, "$unset": bson.M{"winner": ""}})
		return err
	}

	return nil
}

func (m *Mongo) ListParticipationsByEmail(ctx context.Context, email string) ([]models.Participation, error) {
	return m.findParticipations(ctx, bson.M{"email": email})
}

func (m *Mongo) ListParticipationsByContest(ctx context.Context, contestID string) ([]models.Participation, error) {
	return m.findParticipations(ctx, bson.M{"contestId": contestID})
}

func (m *Mongo) findParticipations(ctx context.Context, filter bson.M) ([]models.Participation, error) {
	cur, err := m.participations.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []models.Participation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Participation{}
	}
	return out, nil
}

func (m *Mongo) CountParticipationsByUser(ctx context.Context, userID string) (int64, error) {
	return m.participations.CountDocuments(ctx, bson.M{"userId": userID})
}

func (m *Mongo) CountWinsByUser(ctx context.Context, userID string) (int64, error) {
	return m.participations.CountDocuments(ctx, bson.M{"userId": userID, "winner": true})
}

func (m *Mongo) ListWonContests(ctx context.Context, userID string) ([]models.Contest, error) {
	return m.findContests(ctx, bson.M{"status": models.StatusClosed, "winner.userId": userID})
}
