package mongo

import (
	"context"
	"strings"
	"time"

	"github.com/sngm3741/team-mood-services/api/internal/public/application"
	"github.com/sngm3741/team-mood-services/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MoodRepository は気分記録を MongoDB で扱う実装リポジトリ。
type MoodRepository struct {
	moods *mongo.Collection
}

// NewMoodRepository は moods コレクションを束縛したリポジトリを構築する。
func NewMoodRepository(db *mongo.Database, moodCollection string) *MoodRepository {
	return &MoodRepository{moods: db.Collection(moodCollection)}
}

// Create は気分記録を追加し、採番された ID と確定した createdAt をドメインへ反映する。
func (r *MoodRepository) Create(ctx context.Context, mood *domain.Mood) error {
	companyID, err := primitive.ObjectIDFromHex(strings.TrimSpace(mood.CompanyID))
	if err != nil {
		return err
	}

	createdAt := mood.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := MoodDocument{
		ID:        primitive.NewObjectID(),
		CompanyID: companyID,
		Mood:      mood.Value.String(),
		Comment:   mood.Comment,
		Source:    mood.Source.String(),
		CreatedAt: createdAt,
	}
	if userID := strings.TrimSpace(mood.UserID); userID != "" {
		objectID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return err
		}
		doc.UserID = &objectID
	}

	if _, err := r.moods.InsertOne(ctx, doc); err != nil {
		return err
	}

	mood.ID = doc.ID.Hex()
	mood.CreatedAt = doc.CreatedAt
	return nil
}

// FindByID は記録 ID から単一の気分記録を取得する。該当なしは nil を返す。
func (r *MoodRepository) FindByID(ctx context.Context, id string) (*domain.Mood, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, nil
	}

	var doc MoodDocument
	err = r.moods.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	mood := mapMoodDocument(doc)
	return &mood, nil
}

// Find は会社・期間条件を Mongo クエリへ落とし込み、createdAt 降順の1ページ分を返す。
func (r *MoodRepository) Find(ctx context.Context, filter application.MoodFilter, paging domain.Paging) ([]domain.Mood, error) {
	mongoFilter, err := buildMoodFilter(filter)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(paging.Offset())).
		SetLimit(int64(domain.MoodsPerPage))

	cursor, err := r.moods.Find(ctx, mongoFilter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	moods := make([]domain.Mood, 0, domain.MoodsPerPage)
	for cursor.Next(ctx) {
		var doc MoodDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		moods = append(moods, mapMoodDocument(doc))
	}
	return moods, cursor.Err()
}

// Count は Find と同じ絞り込み条件で総件数を数える。
func (r *MoodRepository) Count(ctx context.Context, filter application.MoodFilter) (int64, error) {
	mongoFilter, err := buildMoodFilter(filter)
	if err != nil {
		return 0, err
	}
	return r.moods.CountDocuments(ctx, mongoFilter)
}

// GroupByUser はユーザー別に気分値を投稿順で集める。
// createdAt 昇順で $push するため、集計側の同数タイブレークが再現可能になる。
func (r *MoodRepository) GroupByUser(ctx context.Context, filter application.MoodFilter) ([]domain.UserMoodEntries, error) {
	mongoFilter, err := buildMoodFilter(filter)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: mongoFilter}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$user",
			"moods": bson.M{"$push": "$mood"},
		}}},
	}

	cursor, err := r.moods.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	grouped := make([]domain.UserMoodEntries, 0)
	for cursor.Next(ctx) {
		var row struct {
			UserID primitive.ObjectID `bson:"_id"`
			Moods  []string           `bson:"moods"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		moods := make([]domain.MoodValue, 0, len(row.Moods))
		for _, value := range row.Moods {
			moods = append(moods, domain.MoodValue(value))
		}
		grouped = append(grouped, domain.UserMoodEntries{
			UserID: row.UserID.Hex(),
			Moods:  moods,
		})
	}
	return grouped, cursor.Err()
}

// buildMoodFilter は MoodFilter を bson.M へ変換する。
func buildMoodFilter(filter application.MoodFilter) (bson.M, error) {
	companyID, err := primitive.ObjectIDFromHex(strings.TrimSpace(filter.CompanyID))
	if err != nil {
		return nil, err
	}

	mongoFilter := bson.M{"company": companyID}
	if filter.RequireUser {
		mongoFilter["user"] = bson.M{"$exists": true}
	}
	if start, end, ok := filter.DateRange.Bounds(); ok {
		mongoFilter["createdAt"] = bson.M{"$gte": start, "$lte": end}
	}
	return mongoFilter, nil
}

// mapMoodDocument は Mongo ドキュメントをドメイン Mood へ変換する。
func mapMoodDocument(doc MoodDocument) domain.Mood {
	mood := domain.Mood{
		ID:        doc.ID.Hex(),
		CompanyID: doc.CompanyID.Hex(),
		Value:     domain.MoodValue(doc.Mood),
		Comment:   doc.Comment,
		Source:    domain.MoodSource(doc.Source),
		CreatedAt: doc.CreatedAt,
	}
	if doc.UserID != nil {
		mood.UserID = doc.UserID.Hex()
	}
	return mood
}
