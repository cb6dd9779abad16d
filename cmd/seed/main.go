// seed 从清洗好的数据目录向数据库批量装载行数据。
// 上游的原始数据过滤不在本仓库范围内，这里只消费已经成形的
// movies.tsv / studios.tsv / people.tsv / principals.tsv / users.csv / reviews.csv。
// 影评、收藏、获奖等合成数据在这里随机生成后经装载面写入。
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/user/filmdb/internal/config"
	"github.com/user/filmdb/internal/loader"
	"github.com/user/filmdb/internal/model"
	"github.com/user/filmdb/internal/repository"
)

// awardNames 合成奖项清单
var awardNames = []string{
	"Academy Award Best Picture", "Academy Award Best Director",
	"Golden Globe Best Drama", "Golden Globe Best Comedy",
	"BAFTA Best Film", "Cannes Palme d'Or",
	"Berlin Golden Bear", "Venice Golden Lion",
}

var directingStyles = []string{
	"Realism", "Surrealism", "Documentary-style", "Experimental",
	"Character-driven", "Action-heavy", "Fantasy-oriented", "Minimalist",
}

var writingStyles = []string{
	"Dialogue-focused", "Non-linear narrative", "Character-driven writing",
	"High-concept storytelling", "Comedy writing", "Dark drama", "Thriller style",
}

func main() {
	dataDir := flag.String("data", "filtered_data", "清洗后数据文件所在目录")
	reviewLimit := flag.Int("reviews", 5000, "合成影评条数上限")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	cfg := config.Load()
	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("初始化表结构失败: %v", err)
	}

	repos := repository.NewRepositories(db)
	ld := loader.New(repos)
	ctx := context.Background()

	// ==================== 电影 ====================
	log.Println("装载电影...")
	movieRows, err := readDelimited(filepath.Join(*dataDir, "movies.tsv"), '\t')
	if err != nil {
		log.Fatalf("读取 movies.tsv 失败: %v", err)
	}
	if len(movieRows) == 0 {
		log.Fatalf("movies.tsv 没有数据行，后续装载都依赖电影，终止")
	}

	var movies []model.Movie
	var genreLinks []loader.GenreLink
	for _, row := range movieRows {
		startYear := atoiDefault(row["startYear"], 0)
		m := model.Movie{
			MovieID:        row["tconst"],
			PrimaryTitle:   row["primaryTitle"],
			OriginalTitle:  defaultStr(row["originalTitle"], row["primaryTitle"]),
			TitleType:      row["titleType"],
			StartYear:      startYear,
			RuntimeMinutes: atoiDefault(row["runtimeMinutes"], 120),
			ReleaseYear:    startYear,
		}
		movies = append(movies, m)

		// 只取首个类型，与数据源的裁剪规则一致
		if g := strings.TrimSpace(strings.Split(row["genres"], ",")[0]); g != "" {
			genreLinks = append(genreLinks, loader.GenreLink{MovieID: m.MovieID, GenreName: g})
		}
	}
	if err := ld.LoadMovies(movies); err != nil {
		log.Fatalf("装载电影失败: %v", err)
	}
	log.Printf("已装载 %d 部电影", len(movies))

	// ==================== 制片厂 ====================
	log.Println("装载制片厂...")
	studioRows, err := readDelimited(filepath.Join(*dataDir, "studios.tsv"), '\t')
	if err != nil {
		log.Fatalf("读取 studios.tsv 失败: %v", err)
	}
	var studios []model.Studio
	for _, row := range studioRows {
		studios = append(studios, model.Studio{
			Name:        row["name"],
			Country:     row["country"],
			City:        row["city"],
			FoundedYear: atoiDefault(row["foundedYear"], 0),
		})
	}
	if len(studios) == 0 {
		log.Fatalf("studios.tsv 没有数据行，人物与出品关联无从生成，终止")
	}
	if err := ld.LoadStudios(studios); err != nil {
		log.Fatalf("装载制片厂失败: %v", err)
	}

	// ==================== 人物 ====================
	log.Println("装载人物...")
	peopleRows, err := readDelimited(filepath.Join(*dataDir, "people.tsv"), '\t')
	if err != nil {
		log.Fatalf("读取 people.tsv 失败: %v", err)
	}
	var people []model.Person
	for _, row := range peopleRows {
		studioID := studios[rand.IntN(len(studios))].StudioID
		people = append(people, model.Person{
			PersonID:        row["nconst"],
			PrimaryName:     row["primaryName"],
			BirthYear:       atoiPtr(row["birthYear"]),
			DeathYear:       atoiPtr(row["deathYear"]),
			Professions:     splitList(row["primaryProfession"]),
			CurrentStudioID: &studioID,
		})
	}
	if err := ld.LoadPeople(people); err != nil {
		log.Fatalf("装载人物失败: %v", err)
	}

	// ==================== 角色事实 ====================
	log.Println("装载角色...")
	principalRows, err := readDelimited(filepath.Join(*dataDir, "principals.tsv"), '\t')
	if err != nil {
		log.Fatalf("读取 principals.tsv 失败: %v", err)
	}
	var principals []loader.Principal
	for _, row := range principalRows {
		movieID := row["tconst"]
		principals = append(principals, loader.Principal{
			MovieID:   movieID,
			PersonID:  row["nconst"],
			Category:  row["category"],
			FanCount:  rand.IntN(3001),
			Style:     styleFor(row["category"]),
			BestKnown: &movieID,
		})
	}
	if err := ld.LoadPrincipals(principals); err != nil {
		log.Fatalf("装载角色失败: %v", err)
	}

	// ==================== 类型 ====================
	log.Println("装载类型...")
	if err := ld.LoadGenreLinks(genreLinks); err != nil {
		log.Fatalf("装载类型失败: %v", err)
	}

	// ==================== 奖项与用户（互不依赖，并发装载） ====================
	log.Println("装载奖项与用户...")
	awards := make([]model.Award, len(awardNames))
	for i, name := range awardNames {
		awards[i] = model.Award{Name: name}
	}
	users, err := readUsers(filepath.Join(*dataDir, "users.csv"))
	if err != nil {
		log.Fatalf("读取 users.csv 失败: %v", err)
	}
	if len(users) == 0 {
		log.Fatalf("users.csv 没有用户，影评与收藏无从生成，终止")
	}
	if err := ld.LoadBase(ctx, awards, users); err != nil {
		log.Fatalf("装载奖项/用户失败: %v", err)
	}

	// ==================== 出品与获奖（合成） ====================
	log.Println("装载出品与获奖记录...")
	var produced []model.ProducedBy
	var wins []model.WinsAward
	for _, m := range movies {
		produced = append(produced, model.ProducedBy{
			MovieID:  m.MovieID,
			StudioID: studios[rand.IntN(len(studios))].StudioID,
		})
		if m.StartYear > 0 && m.StartYear <= 2025 && rand.Float64() < 0.25 {
			wins = append(wins, model.WinsAward{
				MovieID: m.MovieID,
				AwardID: awards[rand.IntN(len(awards))].AwardID,
				Year:    m.StartYear + rand.IntN(2026-m.StartYear),
			})
		}
	}
	if err := ld.LoadProducedBy(produced); err != nil {
		log.Fatalf("装载出品关联失败: %v", err)
	}
	if err := ld.LoadAwardWins(wins); err != nil {
		log.Fatalf("装载获奖记录失败: %v", err)
	}

	// ==================== 合成影评 ====================
	log.Println("装载影评...")
	contents, err := readReviewTexts(filepath.Join(*dataDir, "reviews.csv"), *reviewLimit)
	if err != nil {
		log.Fatalf("读取 reviews.csv 失败: %v", err)
	}
	var reviews []model.Review
	for _, content := range contents {
		reviews = append(reviews, model.Review{
			UserID:   users[rand.IntN(len(users))].UserID,
			MovieID:  movies[rand.IntN(len(movies))].MovieID,
			PostTime: randomTime(2019, 2024),
			Content:  content,
			Rating:   1 + rand.IntN(10),
		})
	}
	if err := ld.LoadReviews(reviews); err != nil {
		log.Fatalf("装载影评失败: %v", err)
	}

	// ==================== 合成收藏 ====================
	log.Println("装载收藏...")
	var favorites []model.Favorite
	for _, u := range users {
		count := 5 + rand.IntN(26)
		if count > len(movies) {
			count = len(movies)
		}
		for _, idx := range rand.Perm(len(movies))[:count] {
			favorites = append(favorites, model.Favorite{UserID: u.UserID, MovieID: movies[idx].MovieID})
		}
	}
	if err := ld.LoadFavorites(favorites); err != nil {
		log.Fatalf("装载收藏失败: %v", err)
	}

	log.Println("数据装载完成")
}

// readDelimited 读取带表头的分隔文件，返回列名到值的映射行
func readDelimited(path string, comma rune) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) && rec[i] != `\N` {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// readUsers 用户文件每行一个用户名
func readUsers(path string) ([]model.User, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	var users []model.User
	for _, rec := range records {
		if len(rec) > 0 && rec[0] != "" {
			users = append(users, model.User{UserName: rec[0]})
		}
	}
	return users, nil
}

// readReviewTexts 影评语料（review,sentiment），最多取 limit 条
func readReviewTexts(path string, limit int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var texts []string
	for _, idx := range rand.Perm(len(records)) {
		if len(texts) >= limit {
			break
		}
		if len(records[idx]) > 0 {
			texts = append(texts, strings.ReplaceAll(records[idx][0], "<br />", " "))
		}
	}
	return texts, nil
}

func styleFor(category string) string {
	switch category {
	case "director":
		return directingStyles[rand.IntN(len(directingStyles))]
	case "writer":
		return writingStyles[rand.IntN(len(writingStyles))]
	default:
		return ""
	}
}

func randomTime(startYear, endYear int) time.Time {
	start := time.Date(startYear, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, 12, 31, 0, 0, 0, 0, time.UTC)
	return start.Add(time.Duration(rand.Int64N(int64(end.Sub(start)))))
}

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSuffix(s, ".0")); err == nil {
		return v
	}
	return def
}

func atoiPtr(s string) *int {
	if v, err := strconv.Atoi(strings.TrimSuffix(s, ".0")); err == nil {
		return &v
	}
	return nil
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
