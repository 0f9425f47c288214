package search

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"podcast-insights/pkg/domain"
)

// Query describes an insight lookup. Zero fields are unconstrained; Text
// matches case-insensitively against insight titles and content.
type Query struct {
	Category string
	VideoID  string
	Tag      string
	Text     string
	Limit    int64
}

// FindInsights runs a query against the flattened insights collection.
// Results come back ordered by video and start time so insights from one
// episode read in airing order.
func (i *Index) FindInsights(ctx context.Context, q Query) ([]domain.Insight, error) {
	if i.insights == nil {
		return nil, fmt.Errorf("index not initialized")
	}

	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.VideoID != "" {
		filter["video_id"] = q.VideoID
	}
	if q.Tag != "" {
		filter["tags"] = q.Tag
	}
	if q.Text != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(q.Text), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"content": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "video_id", Value: 1},
		{Key: "start_time", Value: 1},
	})
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := i.insights.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query insights: %w", err)
	}
	defer cursor.Close(ctx)

	var insights []domain.Insight
	if err := cursor.All(ctx, &insights); err != nil {
		return nil, fmt.Errorf("decode insights: %w", err)
	}
	return insights, nil
}

// SegmentHit is one cleaned-segment match from the segments collection.
type SegmentHit struct {
	VideoID     string  `bson:"video_id"`
	Index       int     `bson:"index"`
	Title       string  `bson:"title"`
	CleanedText string  `bson:"cleaned_text"`
	StartTime   float64 `bson:"start_time"`
	EndTime     float64 `bson:"end_time"`
	Speaker     string  `bson:"speaker,omitempty"`
}

// FindSegments searches cleaned segment titles and text, optionally limited
// to one episode. Results come back in transcript order per episode.
func (i *Index) FindSegments(ctx context.Context, videoID, text string, limit int64) ([]SegmentHit, error) {
	if i.segments == nil {
		return nil, fmt.Errorf("index not initialized")
	}

	filter := bson.M{}
	if videoID != "" {
		filter["video_id"] = videoID
	}
	if text != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(text), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"cleaned_text": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "video_id", Value: 1},
		{Key: "index", Value: 1},
	})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := i.segments.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query segments: %w", err)
	}
	defer cursor.Close(ctx)

	var hits []SegmentHit
	if err := cursor.All(ctx, &hits); err != nil {
		return nil, fmt.Errorf("decode segments: %w", err)
	}
	return hits, nil
}

// CountByCategory aggregates insight counts per category across the index.
func (i *Index) CountByCategory(ctx context.Context) (map[string]int, error) {
	if i.insights == nil {
		return nil, fmt.Errorf("index not initialized")
	}

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   "$category",
			"count": bson.M{"$sum": 1},
		}},
	}
	cursor, err := i.insights.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate categories: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int)
	for cursor.Next(ctx) {
		var row struct {
			Category string `bson:"_id"`
			Count    int    `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			continue
		}
		counts[row.Category] = row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return counts, nil
}
