package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/anchorplan/anchorplan/pkg/cache"
	"github.com/anchorplan/anchorplan/pkg/errors"
	"github.com/anchorplan/anchorplan/pkg/observability"
	"github.com/anchorplan/anchorplan/pkg/pipeline"
	"github.com/anchorplan/anchorplan/pkg/placement"
)

const (
	runsCollection = "runs"

	// connectTimeout bounds the initial connect and ping.
	connectTimeout = 5 * time.Second
)

// RunOptions is the subset of placement options worth archiving with a
// run. The full options struct carries runtime fields (logger, tuning
// profile) that do not belong in a document store.
type RunOptions struct {
	ScaleRatio     float64 `bson:"scale_ratio" json:"scale_ratio"`
	RadiusM        float64 `bson:"radius_m,omitempty" json:"radius_m,omitempty"`
	Shape          string  `bson:"shape,omitempty" json:"shape,omitempty"`
	TargetScope    string  `bson:"target_scope,omitempty" json:"target_scope,omitempty"`
	CoverageTarget float64 `bson:"coverage_target,omitempty" json:"coverage_target,omitempty"`
	MinSignal      float64 `bson:"min_signal,omitempty" json:"min_signal,omitempty"`
	SpacingFactor  float64 `bson:"spacing_factor,omitempty" json:"spacing_factor,omitempty"`
}

// RunRecord is one archived placement run.
type RunRecord struct {
	ID        string             `bson:"_id" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	PlanHash  string             `bson:"plan_hash" json:"plan_hash"`
	Options   RunOptions         `bson:"options" json:"options"`
	RoomCount int                `bson:"room_count" json:"room_count"`
	Anchors   []placement.Anchor `bson:"anchors" json:"anchors"`
	FromCache bool               `bson:"from_cache,omitempty" json:"from_cache,omitempty"`
}

// NewRunRecord builds an archive record for a completed pipeline run.
func NewRunRecord(res *pipeline.Result, opts placement.Options) *RunRecord {
	return &RunRecord{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		PlanHash:  res.PlanHash,
		Options: RunOptions{
			ScaleRatio:     opts.ScaleRatio,
			RadiusM:        opts.RadiusM,
			Shape:          opts.Shape,
			TargetScope:    string(opts.TargetScope),
			CoverageTarget: opts.CoverageTarget,
			MinSignal:      opts.MinSignal,
			SpacingFactor:  opts.SpacingFactor,
		},
		RoomCount: res.Stats.RoomCount,
		Anchors:   res.Anchors,
		FromCache: res.CacheInfo.PlacementHit,
	}
}

// RunStore archives placement runs in a MongoDB collection.
type RunStore struct {
	client *mongo.Client
	runs   *mongo.Collection
}

// NewRunStore connects to MongoDB and verifies the connection with a
// ping. The URI is never echoed in errors since it may embed
// credentials.
func NewRunStore(ctx context.Context, uri, db string) (*RunStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}

	st := &RunStore{
		client: client,
		runs:   client.Database(db).Collection(runsCollection),
	}
	st.ensureIndexes(ctx)
	return st, nil
}

// ensureIndexes creates the query indexes. Failures are reported through
// the store hooks but never block startup; queries still work unindexed.
func (st *RunStore) ensureIndexes(ctx context.Context) {
	ixCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	_, err := st.runs.Indexes().CreateMany(ixCtx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "plan_hash", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		observability.Store().OnStoreError(ctx, "index", err)
	}
}

// SaveRun inserts a record, retrying transient failures with backoff.
func (st *RunStore) SaveRun(ctx context.Context, rec *RunRecord) error {
	err := cache.RetryWithBackoff(ctx, func() error {
		_, err := st.runs.InsertOne(ctx, rec)
		if err != nil && (mongo.IsTimeout(err) || mongo.IsNetworkError(err)) {
			return cache.Retryable(err)
		}
		return err
	})
	if err != nil {
		observability.Store().OnStoreError(ctx, "save", err)
		return fmt.Errorf("save run %s: %w", rec.ID, err)
	}
	observability.Store().OnRunStored(ctx, rec.ID, len(rec.Anchors))
	return nil
}

// GetRun fetches one record by id.
func (st *RunStore) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	var rec RunRecord
	err := st.runs.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		observability.Store().OnRunFetched(ctx, id, false)
		return nil, errors.New(errors.ErrCodeRunNotFound, "run %s not found", id)
	}
	if err != nil {
		observability.Store().OnStoreError(ctx, "get", err)
		return nil, fmt.Errorf("fetch run %s: %w", id, err)
	}
	observability.Store().OnRunFetched(ctx, id, true)
	return &rec, nil
}

// RecentRuns returns up to limit records, newest first.
func (st *RunStore) RecentRuns(ctx context.Context, limit int64) ([]RunRecord, error) {
	cur, err := st.runs.Find(ctx, bson.D{}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit))
	if err != nil {
		observability.Store().OnStoreError(ctx, "list", err)
		return nil, fmt.Errorf("list runs: %w", err)
	}
	recs := make([]RunRecord, 0, limit)
	if err := cur.All(ctx, &recs); err != nil {
		observability.Store().OnStoreError(ctx, "list", err)
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return recs, nil
}

// Close disconnects from MongoDB.
func (st *RunStore) Close(ctx context.Context) error {
	return st.client.Disconnect(ctx)
}
