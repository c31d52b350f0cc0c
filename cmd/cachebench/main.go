package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/d60-Lab/minipost/internal/cache"
	"github.com/d60-Lab/minipost/internal/model"
	"github.com/d60-Lab/minipost/internal/repository"
	"github.com/d60-Lab/minipost/internal/service"
)

func main() {
	ctx := context.Background()

	// Use PostgreSQL for realistic testing
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=postgres port=5434 sslmode=disable"
	}

	db := must(gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true}))

	// Clean up existing test data
	mustDo(db.Exec("DROP TABLE IF EXISTS posts CASCADE").Error)
	mustDo(db.Exec("DROP TABLE IF EXISTS users CASCADE").Error)
	mustDo(db.AutoMigrate(&model.User{}, &model.Post{}))

	const (
		userCount    = 3
		postsPerUser = 5000
		requests     = 9000
		cacheTTL     = 300 * time.Second
	)

	fmt.Println("Setting up test data...")
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	owners := make([]uint64, userCount)
	for i := 0; i < userCount; i++ {
		u := &model.User{Email: fmt.Sprintf("user%d@example.com", i), PasswordHash: "secret"}
		mustDo(userRepo.Create(ctx, u))
		owners[i] = u.ID

		posts := make([]model.Post, postsPerUser)
		for j := range posts {
			posts[j] = model.Post{Text: fmt.Sprintf("post %d of user %d", j, i), OwnerID: u.ID}
		}
		mustDo(db.CreateInBatches(&posts, 1000).Error)
	}
	fmt.Printf("Test data ready: %d users x %d posts\n", userCount, postsPerUser)

	// Use real Redis
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6380"
	}
	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis at %s: %v", redisAddr, err))
	}

	postCache := cache.NewPostCache(client, cacheTTL)
	svc := service.NewPostService(postRepo, postCache, true)

	// Randomised request stream over the three owners
	rnd := rand.New(rand.NewSource(42))
	reqOwners := make([]uint64, requests)
	for i := range reqOwners {
		reqOwners[i] = owners[rnd.Intn(len(owners))]
	}

	noCache := runScenario(ctx, reqOwners, func(ctx context.Context, owner uint64) error {
		_, err := postRepo.ListByOwner(ctx, owner)
		return err
	})

	client.FlushAll(ctx)
	postCache.ResetCounters()
	readThrough := runScenario(ctx, reqOwners, func(ctx context.Context, owner uint64) error {
		_, err := svc.List(ctx, owner)
		return err
	})
	hits, misses := postCache.Counters()

	fmt.Printf("\nPost list latency (%d req across %d users, PostgreSQL + Redis)\n", requests, userCount)
	fmt.Printf("%-14s avg=%v p95=%v p99=%v\n", "No cache",
		avg(noCache), pct(noCache, 0.95), pct(noCache, 0.99))
	fmt.Printf("%-14s avg=%v p95=%v p99=%v cache_hits=%d cache_misses=%d\n", "Read-through",
		avg(readThrough), pct(readThrough, 0.95), pct(readThrough, 0.99), hits, misses)
}

func runScenario(ctx context.Context, owners []uint64, call func(context.Context, uint64) error) []time.Duration {
	fmt.Print("  Running benchmark...")
	out := make([]time.Duration, 0, len(owners))
	for _, owner := range owners {
		start := time.Now()
		if err := call(ctx, owner); err != nil {
			panic(err)
		}
		out = append(out, time.Since(start))
	}
	fmt.Println(" done")
	return out
}

func avg(vs []time.Duration) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range vs {
		sum += v
	}
	return sum / time.Duration(len(vs))
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), vs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}
