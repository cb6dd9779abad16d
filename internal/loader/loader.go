// Package loader 是批量装载面：接收上游清洗好的行数据并写入存储层。
// 行内容的合法性由 §完整性约束兜底——外键缺失、关联重复、取值越界
// 都会以 repository 的错误分类返回，不做静默跳过。
package loader

import (
	"context"

	"github.com/user/filmdb/internal/model"
	"github.com/user/filmdb/internal/repository"
	"golang.org/x/sync/errgroup"
)

// Loader 批量装载器
type Loader struct {
	repos *repository.Repositories
}

// New 创建装载器
func New(repos *repository.Repositories) *Loader {
	return &Loader{repos: repos}
}

// LoadMovies 装载电影
func (l *Loader) LoadMovies(movies []model.Movie) error {
	return l.repos.Movie.CreateBatch(movies)
}

// LoadStudios 装载制片厂
func (l *Loader) LoadStudios(studios []model.Studio) error {
	return l.repos.Studio.CreateBatch(studios)
}

// LoadPeople 装载人物基表
func (l *Loader) LoadPeople(people []model.Person) error {
	return l.repos.Person.CreateBatch(people)
}

// LoadBase 并发装载互不依赖的基础实体流（奖项、用户）。
// 二者没有外键牵连，装载顺序无关紧要。
func (l *Loader) LoadBase(ctx context.Context, awards []model.Award, users []model.User) error {
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		for i := range awards {
			if err := l.repos.Award.Create(&awards[i]); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		return l.repos.User.CreateBatch(users)
	})
	return g.Wait()
}

// Principal 一条"谁以什么身份参与了哪部电影"的事实行。
// 角色属性（粉丝数、风格、代表作）由上游生成器随行给出。
type Principal struct {
	MovieID   string
	PersonID  string
	Category  string // actor / actress / director / writer
	FanCount  int
	Style     string
	BestKnown *string
}

// LoadPrincipals 装载角色事实：某人首次以某身份出现时挂接能力记录，
// 之后只追加参与关联。一人多角色合法且互不影响。
func (l *Loader) LoadPrincipals(rows []Principal) error {
	actors := map[string]bool{}
	directors := map[string]bool{}
	writers := map[string]bool{}

	for _, row := range rows {
		switch row.Category {
		case "actor", "actress":
			if !actors[row.PersonID] {
				if err := l.repos.Person.AttachActor(&model.Actor{
					PersonID: row.PersonID,
					FanCount: row.FanCount,
				}); err != nil {
					return err
				}
				actors[row.PersonID] = true
			}
			if err := l.repos.Person.LinkActsIn(&model.ActsIn{
				MovieID: row.MovieID, PersonID: row.PersonID,
			}); err != nil {
				return err
			}
		case "director":
			if !directors[row.PersonID] {
				if err := l.repos.Person.AttachDirector(&model.Director{
					PersonID:         row.PersonID,
					DirectingStyle:   row.Style,
					BestKnownMovieID: row.BestKnown,
				}); err != nil {
					return err
				}
				directors[row.PersonID] = true
			}
			if err := l.repos.Person.LinkDirects(&model.Directs{
				MovieID: row.MovieID, PersonID: row.PersonID,
			}); err != nil {
				return err
			}
		case "writer":
			if !writers[row.PersonID] {
				if err := l.repos.Person.AttachWriter(&model.Writer{
					PersonID:         row.PersonID,
					WritingStyle:     row.Style,
					BestKnownMovieID: row.BestKnown,
				}); err != nil {
					return err
				}
				writers[row.PersonID] = true
			}
			if err := l.repos.Person.LinkWritesScript(&model.WritesScriptFor{
				MovieID: row.MovieID, PersonID: row.PersonID,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// GenreLink 一条"电影属于某类型"的事实行，类型按名称给出
type GenreLink struct {
	MovieID   string
	GenreName string
}

// LoadGenreLinks 装载类型与电影-类型关联。类型首次出现时创建，
// name 的唯一约束保证不会产生重复类型。
func (l *Loader) LoadGenreLinks(rows []GenreLink) error {
	ids := map[string]int{}

	for _, row := range rows {
		id, ok := ids[row.GenreName]
		if !ok {
			g, err := l.repos.Genre.FindByName(row.GenreName)
			if err != nil {
				return err
			}
			if g == nil {
				g = &model.Genre{Name: row.GenreName}
				if err := l.repos.Genre.Create(g); err != nil {
					return err
				}
			}
			id = g.GenreID
			ids[row.GenreName] = id
		}
		if err := l.repos.Genre.Link(&model.HasGenre{MovieID: row.MovieID, GenreID: id}); err != nil {
			return err
		}
	}
	return nil
}

// LoadProducedBy 装载电影-制片厂关联
func (l *Loader) LoadProducedBy(rows []model.ProducedBy) error {
	for i := range rows {
		if err := l.repos.Movie.LinkStudio(&rows[i]); err != nil {
			return err
		}
	}
	return nil
}

// LoadAwardWins 装载获奖记录
func (l *Loader) LoadAwardWins(rows []model.WinsAward) error {
	for i := range rows {
		if err := l.repos.Award.Link(&rows[i]); err != nil {
			return err
		}
	}
	return nil
}

// LoadFavorites 装载收藏
func (l *Loader) LoadFavorites(rows []model.Favorite) error {
	for i := range rows {
		if err := l.repos.User.AddFavorite(&rows[i]); err != nil {
			return err
		}
	}
	return nil
}

// LoadReviews 装载合成影评
func (l *Loader) LoadReviews(rows []model.Review) error {
	for i := range rows {
		if err := l.repos.Review.Insert(&rows[i]); err != nil {
			return err
		}
	}
	return nil
}
