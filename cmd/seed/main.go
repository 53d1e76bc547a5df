package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

type seedOptions struct {
	mongoURI        string
	database        string
	companyCount    int
	usersPerCompany int
	moodsPerUser    int
	password        string
	dropCollections bool
	randomSeed      int64
}

type collections struct {
	companies string
	users     string
	moods     string
	pending   string
}

type companyDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Domain    string             `bson:"domain"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	CompanyID    primitive.ObjectID `bson:"company"`
	Enabled      bool               `bson:"enabled"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

type moodDocument struct {
	ID        primitive.ObjectID  `bson:"_id"`
	CompanyID primitive.ObjectID  `bson:"company"`
	UserID    *primitive.ObjectID `bson:"user,omitempty"`
	Mood      string              `bson:"mood"`
	Comment   string              `bson:"comment"`
	Source    string              `bson:"from"`
	CreatedAt time.Time           `bson:"createdAt"`
}

var moodValues = []string{"anger", "sadness", "fear", "tired", "normal", "calm", "joy", "love"}

var moodSources = []string{"web", "web", "web", "android", "ios", "slack"}

var sampleComments = []string{
	"今日はチームのリリースがうまくいった",
	"会議が多くて集中できなかった",
	"新しいメンバーのオンボーディングが楽しい",
	"障害対応で一日が終わった",
	"ペアプロで学びが多かった",
	"リファクタリングが捗って気分がいい",
	"締め切り前でそわそわしている",
	"ふりかえりで良い改善案が出た",
}

var companyNames = []string{"Nearsoft", "Acme Systems", "Hoshino Works", "Delta Forge", "Kumo Labs", "Pixel Garden"}

func main() {
	_ = godotenv.Load()

	opts := parseFlags()
	cols := collections{
		companies: "companies",
		users:     "users",
		moods:     "moods",
		pending:   "pendingUsers",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	clientOptions := options.Client().ApplyURI(opts.mongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("MongoDB 切断時にエラー: %v", err)
		}
	}()

	db := client.Database(opts.database)
	rng := rand.New(rand.NewSource(opts.randomSeed))

	if opts.dropCollections {
		for _, name := range []string{cols.companies, cols.users, cols.moods, cols.pending} {
			if err := db.Collection(name).Drop(ctx); err != nil {
				log.Fatalf("コレクション %s の削除に失敗: %v", name, err)
			}
		}
		log.Printf("既存コレクションを削除しました")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(opts.password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("パスワードハッシュの生成に失敗: %v", err)
	}

	companies := buildCompanies(opts.companyCount, rng)
	if _, err := db.Collection(cols.companies).InsertMany(ctx, toAny(companies)); err != nil {
		log.Fatalf("会社の投入に失敗: %v", err)
	}
	log.Printf("会社を %d 件投入しました", len(companies))

	// 会社ごとのユーザー・気分投入は独立しているため並列化する。
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(4)
	for i, company := range companies {
		company := company
		seed := opts.randomSeed + int64(i+1)
		group.Go(func() error {
			return seedCompany(groupCtx, db, cols, company, opts, string(passwordHash), rand.New(rand.NewSource(seed)))
		})
	}
	if err := group.Wait(); err != nil {
		log.Fatalf("シードに失敗: %v", err)
	}

	log.Printf("シード完了: companies=%d usersPerCompany=%d moodsPerUser=%d", opts.companyCount, opts.usersPerCompany, opts.moodsPerUser)
}

func parseFlags() seedOptions {
	opts := seedOptions{}
	flag.StringVar(&opts.mongoURI, "mongo-uri", envOrDefault("MONGO_URI", "mongodb://localhost:27017"), "MongoDB 接続URI")
	flag.StringVar(&opts.database, "db", envOrDefault("MONGO_DB", "team-mood"), "データベース名")
	flag.IntVar(&opts.companyCount, "companies", 3, "投入する会社数")
	flag.IntVar(&opts.usersPerCompany, "users", 10, "会社あたりのユーザー数")
	flag.IntVar(&opts.moodsPerUser, "moods", 20, "ユーザーあたりの気分記録数")
	flag.StringVar(&opts.password, "password", "password123", "シードユーザーの共通パスワード")
	flag.BoolVar(&opts.dropCollections, "drop", false, "投入前に既存コレクションを削除する")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "乱数シード")
	flag.Parse()

	if opts.companyCount < 1 || opts.usersPerCompany < 1 || opts.moodsPerUser < 0 {
		log.Fatal("companies / users は1以上、moods は0以上を指定してください")
	}
	return opts
}

func buildCompanies(count int, rng *rand.Rand) []companyDocument {
	now := time.Now().UTC()
	companies := make([]companyDocument, 0, count)
	for i := 0; i < count; i++ {
		name := companyNames[i%len(companyNames)]
		if i >= len(companyNames) {
			name = fmt.Sprintf("%s %d", name, i/len(companyNames)+1)
		}
		domain := "@" + strings.ReplaceAll(strings.ToLower(name), " ", "-") + ".com"
		companies = append(companies, companyDocument{
			ID:        primitive.NewObjectID(),
			Name:      name,
			Domain:    domain,
			CreatedAt: now.AddDate(0, 0, -rng.Intn(365)),
		})
	}
	return companies
}

// seedCompany は1社分のユーザーと気分記録を投入する。
func seedCompany(ctx context.Context, db *mongo.Database, cols collections, company companyDocument, opts seedOptions, passwordHash string, rng *rand.Rand) error {
	now := time.Now().UTC()

	users := make([]userDocument, 0, opts.usersPerCompany)
	for i := 0; i < opts.usersPerCompany; i++ {
		email := fmt.Sprintf("user%02d%s", i+1, company.Domain)
		users = append(users, userDocument{
			ID:           primitive.NewObjectID(),
			Email:        email,
			PasswordHash: passwordHash,
			CompanyID:    company.ID,
			// 1割程度は無効ユーザーとして残し、集計時の母数差を再現する。
			Enabled:   rng.Intn(10) != 0,
			CreatedAt: now.AddDate(0, 0, -rng.Intn(180)),
		})
	}
	if _, err := db.Collection(cols.users).InsertMany(ctx, toAny(users)); err != nil {
		return fmt.Errorf("会社 %s のユーザー投入に失敗: %w", company.Name, err)
	}

	moods := make([]moodDocument, 0, opts.usersPerCompany*opts.moodsPerUser)
	for _, user := range users {
		for i := 0; i < opts.moodsPerUser; i++ {
			doc := moodDocument{
				ID:        primitive.NewObjectID(),
				CompanyID: company.ID,
				Mood:      moodValues[rng.Intn(len(moodValues))],
				Comment:   sampleComments[rng.Intn(len(sampleComments))],
				Source:    moodSources[rng.Intn(len(moodSources))],
				CreatedAt: now.Add(-time.Duration(rng.Intn(90*24)) * time.Hour),
			}
			// 一部は匿名投稿としてユーザー参照を持たせない。
			if rng.Intn(8) != 0 {
				userID := user.ID
				doc.UserID = &userID
			}
			moods = append(moods, doc)
		}
	}
	if len(moods) > 0 {
		if _, err := db.Collection(cols.moods).InsertMany(ctx, toAny(moods)); err != nil {
			return fmt.Errorf("会社 %s の気分記録投入に失敗: %w", company.Name, err)
		}
	}

	log.Printf("会社 %s: users=%d moods=%d", company.Name, len(users), len(moods))
	return nil
}

func toAny[T any](items []T) []any {
	result := make([]any, 0, len(items))
	for _, item := range items {
		result = append(result, item)
	}
	return result
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
