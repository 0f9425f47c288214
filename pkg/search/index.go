package search

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"podcast-insights/pkg/domain"
)

// Collection names inside the index database.
const (
	episodesCollection = "episodes"
	insightsCollection = "insights"
	segmentsCollection = "segments"
)

// Index is the MongoDB-backed search index for processed episodes. Episodes
// are stored whole in one collection; their insights and cleaned segments
// are additionally flattened into their own collections so category and text
// queries do not have to unwind episode documents.
type Index struct {
	mongoClient *mongo.Client
	database    *mongo.Database
	episodes    *mongo.Collection
	insights    *mongo.Collection
	segments    *mongo.Collection
}

// segmentDoc is the flattened cleaned-segment record in the segments
// collection.
type segmentDoc struct {
	VideoID     string  `bson:"video_id"`
	Index       int     `bson:"index"`
	Title       string  `bson:"title"`
	CleanedText string  `bson:"cleaned_text"`
	StartTime   float64 `bson:"start_time"`
	EndTime     float64 `bson:"end_time"`
	Speaker     string  `bson:"speaker,omitempty"`
}

// NewIndex creates an index client. Connectivity is verified in Connect.
func NewIndex(connectionString, databaseName string) *Index {
	clientOptions := options.Client().ApplyURI(connectionString)
	mongoClient, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		// Connect() reports the failure via the nil client check.
		return &Index{}
	}

	database := mongoClient.Database(databaseName)
	return &Index{
		mongoClient: mongoClient,
		database:    database,
		episodes:    database.Collection(episodesCollection),
		insights:    database.Collection(insightsCollection),
		segments:    database.Collection(segmentsCollection),
	}
}

// Connect verifies the MongoDB connection.
func (i *Index) Connect(ctx context.Context) error {
	if i.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return i.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection.
func (i *Index) Close(ctx context.Context) error {
	if i.mongoClient == nil {
		return nil
	}
	return i.mongoClient.Disconnect(ctx)
}

// IndexEpisode upserts the episode document and replaces its flattened
// insight documents. Reindexing the same episode is safe: the video ID is
// the identity in both collections.
func (i *Index) IndexEpisode(ctx context.Context, episode *domain.Episode) error {
	if i.episodes == nil {
		return fmt.Errorf("index not initialized")
	}

	videoID := episode.VideoInfo.VideoID
	if videoID == "" {
		return fmt.Errorf("episode has no video ID")
	}

	filter := bson.M{"video_info.video_id": videoID}
	update := bson.M{"$set": episode}
	opts := options.Update().SetUpsert(true)
	if _, err := i.episodes.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("upsert episode %s: %w", videoID, err)
	}

	if _, err := i.insights.DeleteMany(ctx, bson.M{"video_id": videoID}); err != nil {
		return fmt.Errorf("clear insights for %s: %w", videoID, err)
	}
	if len(episode.Insights) > 0 {
		docs := make([]interface{}, 0, len(episode.Insights))
		for _, insight := range episode.Insights {
			docs = append(docs, insight)
		}
		if _, err := i.insights.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("insert insights for %s: %w", videoID, err)
		}
	}

	if _, err := i.segments.DeleteMany(ctx, bson.M{"video_id": videoID}); err != nil {
		return fmt.Errorf("clear segments for %s: %w", videoID, err)
	}
	if len(episode.CleanedSegments) > 0 {
		docs := make([]interface{}, 0, len(episode.CleanedSegments))
		for idx, segment := range episode.CleanedSegments {
			docs = append(docs, segmentDoc{
				VideoID:     videoID,
				Index:       idx,
				Title:       segment.Title,
				CleanedText: segment.CleanedText,
				StartTime:   segment.StartTime,
				EndTime:     segment.EndTime,
				Speaker:     segment.Speaker,
			})
		}
		if _, err := i.segments.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("insert segments for %s: %w", videoID, err)
		}
	}
	return nil
}

// ProcessedVideoIDs returns the set of video IDs already present in the
// index, used to skip episodes on reruns.
func (i *Index) ProcessedVideoIDs(ctx context.Context) (map[string]bool, error) {
	if i.episodes == nil {
		return nil, fmt.Errorf("index not initialized")
	}

	projection := options.Find().SetProjection(bson.M{"video_info.video_id": 1, "_id": 0})
	cursor, err := i.episodes.Find(ctx, bson.M{}, projection)
	if err != nil {
		return nil, fmt.Errorf("query indexed episodes: %w", err)
	}
	defer cursor.Close(ctx)

	ids := make(map[string]bool)
	for cursor.Next(ctx) {
		var result struct {
			VideoInfo struct {
				VideoID string `bson:"video_id"`
			} `bson:"video_info"`
		}
		if err := cursor.Decode(&result); err != nil {
			continue
		}
		if result.VideoInfo.VideoID != "" {
			ids[result.VideoInfo.VideoID] = true
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return ids, nil
}

// Episode returns one indexed episode by video ID.
func (i *Index) Episode(ctx context.Context, videoID string) (*domain.Episode, error) {
	if i.episodes == nil {
		return nil, fmt.Errorf("index not initialized")
	}

	var episode domain.Episode
	err := i.episodes.FindOne(ctx, bson.M{"video_info.video_id": videoID}).Decode(&episode)
	if err != nil {
		return nil, fmt.Errorf("load episode %s: %w", videoID, err)
	}
	return &episode, nil
}

// AllEpisodes streams every indexed episode, used by the Postgres archiver.
func (i *Index) AllEpisodes(ctx context.Context) ([]domain.Episode, error) {
	if i.episodes == nil {
		return nil, fmt.Errorf("index not initialized")
	}

	cursor, err := i.episodes.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("query episodes: %w", err)
	}
	defer cursor.Close(ctx)

	var episodes []domain.Episode
	if err := cursor.All(ctx, &episodes); err != nil {
		return nil, fmt.Errorf("decode episodes: %w", err)
	}
	return episodes, nil
}
