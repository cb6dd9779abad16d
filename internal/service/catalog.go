package service

import (
	"time"

	"github.com/user/filmdb/internal/model"
	"github.com/user/filmdb/internal/repository"
	"github.com/user/filmdb/internal/utils"
	"golang.org/x/sync/singleflight"
)

// Catalog 查询目录门面：十二个只读参数化查询的统一入口。
// 名称解析与查询本体分离：标题→movie_id 走 LRU 缓存，导演/用户/类型的
// 存在性判定走全局 TTL 缓存（实体装载后不可变，正面结论可安全复用）；
// 两个聚合查询用 singleflight 合并并发的同参调用，结果本身每次现算。
type Catalog struct {
	repos    *repository.Repositories
	titleIDs *utils.LookupCache[string]
	sf       singleflight.Group
}

// NewCatalog 创建查询目录
func NewCatalog(repos *repository.Repositories) *Catalog {
	return &Catalog{
		repos:    repos,
		titleIDs: utils.NewLookupCache[string](1024, time.Hour),
	}
}

// 存在性判定的缓存有效期。装载后实体只增不删，TTL 只是兜底。
const existsTTL = 10 * time.Minute

// resolveMovieID 标题解析，命中缓存时跳过数据库。
// 只缓存成功且唯一的解析结果，NotFound/歧义每次都重新判定。
func (s *Catalog) resolveMovieID(title string) (string, error) {
	if id, ok := s.titleIDs.Get(title); ok {
		return id, nil
	}
	movie, err := s.repos.Movie.ResolveTitle(title)
	if err != nil {
		return "", err
	}
	s.titleIDs.Set(title, movie.MovieID)
	return movie.MovieID, nil
}

// directorExists 导演名的存在性判定。只记正面结论：
// 查无此人每次都重新判定，避免装载间隙的否定结果粘住。
func (s *Catalog) directorExists(name string) (bool, error) {
	key := "exists:director:" + name
	if _, ok := utils.CacheGet(key); ok {
		return true, nil
	}
	ok, err := s.repos.Person.DirectorExists(name)
	if err != nil || !ok {
		return false, err
	}
	utils.CacheSet(key, true, existsTTL)
	return true, nil
}

// userExists 用户名的存在性判定，缓存策略同上
func (s *Catalog) userExists(userName string) (bool, error) {
	key := "exists:user:" + userName
	if _, ok := utils.CacheGet(key); ok {
		return true, nil
	}
	ok, err := s.repos.User.ExistsByName(userName)
	if err != nil || !ok {
		return false, err
	}
	utils.CacheSet(key, true, existsTTL)
	return true, nil
}

// genreExists 类型名的存在性判定，缓存策略同上
func (s *Catalog) genreExists(genreName string) (bool, error) {
	key := "exists:genre:" + genreName
	if _, ok := utils.CacheGet(key); ok {
		return true, nil
	}
	genre, err := s.repos.Genre.FindByName(genreName)
	if err != nil || genre == nil {
		return false, err
	}
	utils.CacheSet(key, true, existsTTL)
	return true, nil
}

// SciFiAfterYear Q1：某年之后的科幻电影
func (s *Catalog) SciFiAfterYear(minYear int) ([]repository.SciFiMovie, error) {
	return s.repos.Movie.SciFiAfterYear(minYear)
}

// CastOfMovie Q2：某部电影的演员表
func (s *Catalog) CastOfMovie(title string) ([]repository.CastMember, error) {
	movieID, err := s.resolveMovieID(title)
	if err != nil {
		return nil, err
	}
	return s.repos.Person.ListCast(movieID)
}

// ReviewsForMovie Q3：某部电影的全部影评
func (s *Catalog) ReviewsForMovie(title string) ([]repository.ReviewRow, error) {
	movieID, err := s.resolveMovieID(title)
	if err != nil {
		return nil, err
	}
	return s.repos.Review.ListByMovie(movieID)
}

// MoviesByDirector Q4：某位导演名下的电影。
// 名字一个导演都解析不到时返回 NotFoundError，重名导演取并集。
func (s *Catalog) MoviesByDirector(name string) ([]model.Movie, error) {
	ok, err := s.directorExists(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &repository.NotFoundError{Kind: "director", Value: name}
	}
	return s.repos.Person.MoviesByDirector(name)
}

// AvgRatingByStudio Q5：某制片厂出品电影的平均评分
func (s *Catalog) AvgRatingByStudio(name string) ([]repository.StudioRating, error) {
	// 并发的同参聚合只算一次
	v, err, _ := s.sf.Do("studio_avg:"+name, func() (interface{}, error) {
		return s.repos.Studio.AvgRatingByStudio(name)
	})
	if err != nil {
		return nil, err
	}
	return v.([]repository.StudioRating), nil
}

// AwardWinners Q6：奖项名包含关键词的获奖电影
func (s *Catalog) AwardWinners(keyword string) ([]repository.AwardWin, error) {
	return s.repos.Movie.AwardWinners(keyword)
}

// ActorsInStudiosFoundedBefore Q7：与老牌制片厂有出演关联的演员
func (s *Catalog) ActorsInStudiosFoundedBefore(cutoffYear int) ([]repository.StudioActor, error) {
	return s.repos.Person.ActorsInStudiosFoundedBefore(cutoffYear)
}

// WritersForDirector Q8：给某位导演的电影写过剧本的编剧
func (s *Catalog) WritersForDirector(name string) ([]repository.DirectorWriter, error) {
	ok, err := s.directorExists(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &repository.NotFoundError{Kind: "director", Value: name}
	}
	return s.repos.Person.WritersForDirector(name)
}

// FavoritesOfUser Q9：某用户收藏的电影。
// 用户名解析不到时返回 NotFoundError；收藏为空是合法的空序列。
func (s *Catalog) FavoritesOfUser(userName string) ([]repository.FavoriteMovie, error) {
	ok, err := s.userExists(userName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &repository.NotFoundError{Kind: "user", Value: userName}
	}
	return s.repos.User.FavoritesOfUser(userName)
}

// TopRatedInGenre Q10：某类型平均评分前 10 的电影。
// 类型名解析不到时返回 NotFoundError；排名本身每次现算。
func (s *Catalog) TopRatedInGenre(genreName string) ([]repository.RatedMovie, error) {
	ok, err := s.genreExists(genreName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &repository.NotFoundError{Kind: "genre", Value: genreName}
	}
	v, err, _ := s.sf.Do("top_rated:"+genreName, func() (interface{}, error) {
		return s.repos.Review.TopRatedInGenre(genreName)
	})
	if err != nil {
		return nil, err
	}
	return v.([]repository.RatedMovie), nil
}

// LongMovies Q11：时长超过阈值的电影
func (s *Catalog) LongMovies(minRuntime int) ([]model.Movie, error) {
	return s.repos.Movie.LongMovies(minRuntime)
}

// ActorsBornIn Q12：某一年出生的演员
func (s *Catalog) ActorsBornIn(birthYear int) ([]repository.BornActor, error) {
	return s.repos.Person.ActorsBornIn(birthYear)
}

// RolesOf 角色探测：某人持有哪些角色能力
func (s *Catalog) RolesOf(personID string) (model.RoleSet, error) {
	return s.repos.Person.RolesOf(personID)
}
