package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/user/filmdb/internal/model"
	"gorm.io/gorm"
)

type PersonRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// Create 写入人物基表，professions 是 text[] 列，走 pq.Array
func (r *PersonRepository) Create(p *model.Person) error {
	err := r.db.Exec(`
		INSERT INTO people (person_id, primary_name, birth_year, death_year, professions, current_studio_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.PersonID, p.PrimaryName, p.BirthYear, p.DeathYear,
		pq.Array(p.Professions), p.CurrentStudioID).Error
	return translate(err)
}

// CreateBatch 批量写入人物基表
func (r *PersonRepository) CreateBatch(people []model.Person) error {
	for i := range people {
		if err := r.Create(&people[i]); err != nil {
			return err
		}
	}
	return nil
}

// FindByID 根据 person_id 查找人物，未找到时返回 (nil, nil)
func (r *PersonRepository) FindByID(personID string) (*model.Person, error) {
	var p model.Person
	row := r.db.Raw(`
		SELECT person_id, primary_name, birth_year, death_year, professions, current_studio_id
		FROM people
		WHERE person_id = ?`, personID).Row()
	err := row.Scan(&p.PersonID, &p.PrimaryName, &p.BirthYear, &p.DeathYear,
		pq.Array(&p.Professions), &p.CurrentStudioID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate(err)
	}
	return &p, nil
}

// ==================== 子类型（ISA）解析 ====================
// 演员/导演/编剧不是 Person 上的类型标签，而是各自独立的能力表。
// "某人持有哪些角色"靠对三张表按同一主键逐一探测回答。

// RolesOf 探测某人持有的角色集合；人物本身不存在时返回 NotFoundError
func (r *PersonRepository) RolesOf(personID string) (model.RoleSet, error) {
	var roles model.RoleSet

	p, err := r.FindByID(personID)
	if err != nil {
		return roles, err
	}
	if p == nil {
		return roles, &NotFoundError{Kind: "person", Value: personID}
	}

	err = r.db.Raw(`
		SELECT EXISTS (SELECT 1 FROM actors    WHERE person_id = ?) AS actor,
		       EXISTS (SELECT 1 FROM directors WHERE person_id = ?) AS director,
		       EXISTS (SELECT 1 FROM writers   WHERE person_id = ?) AS writer`,
		personID, personID, personID).Scan(&roles).Error
	if err != nil {
		return roles, translate(err)
	}
	return roles, nil
}

// AttachActor 给人物挂接演员能力。人物不存在报 ReferentialError，
// 能力已存在报 DuplicateAssociationError（主键即 person_id）。
func (r *PersonRepository) AttachActor(a *model.Actor) error {
	err := r.db.Exec(`INSERT INTO actors (person_id, fan_count) VALUES (?, ?)`,
		a.PersonID, a.FanCount).Error
	return translate(err)
}

// AttachDirector 挂接导演能力，best_known_movie_id 非空时必须指向已存在电影
func (r *PersonRepository) AttachDirector(d *model.Director) error {
	err := r.db.Exec(`
		INSERT INTO directors (person_id, directing_style, best_known_movie_id)
		VALUES (?, ?, ?)`,
		d.PersonID, d.DirectingStyle, d.BestKnownMovieID).Error
	return translate(err)
}

// AttachWriter 挂接编剧能力
func (r *PersonRepository) AttachWriter(w *model.Writer) error {
	err := r.db.Exec(`
		INSERT INTO writers (person_id, writing_style, best_known_movie_id)
		VALUES (?, ?, ?)`,
		w.PersonID, w.WritingStyle, w.BestKnownMovieID).Error
	return translate(err)
}

// LinkActsIn 建立出演关联，要求演员能力记录已存在
func (r *PersonRepository) LinkActsIn(ai *model.ActsIn) error {
	err := r.db.Exec(`INSERT INTO acts_in (movie_id, person_id) VALUES (?, ?)`,
		ai.MovieID, ai.PersonID).Error
	return translate(err)
}

// LinkDirects 建立执导关联
func (r *PersonRepository) LinkDirects(d *model.Directs) error {
	err := r.db.Exec(`INSERT INTO directs (movie_id, person_id) VALUES (?, ?)`,
		d.MovieID, d.PersonID).Error
	return translate(err)
}

// LinkWritesScript 建立编剧关联
func (r *PersonRepository) LinkWritesScript(w *model.WritesScriptFor) error {
	err := r.db.Exec(`INSERT INTO writes_script_for (movie_id, person_id) VALUES (?, ?)`,
		w.MovieID, w.PersonID).Error
	return translate(err)
}

// ==================== 人物相关查询 ====================

// CastMember Q2 结果行
type CastMember struct {
	PersonID    string `json:"person_id" db:"person_id"`
	PrimaryName string `json:"primary_name" db:"primary_name"`
	FanCount    int    `json:"fan_count" db:"fan_count"`
}

// ListCast Q2：某部电影的演员表（标题解析由调用方先行完成）。
// 没有演员时返回空序列，这与"电影不存在"是两种不同的结果。
func (r *PersonRepository) ListCast(movieID string) ([]CastMember, error) {
	var rows []CastMember
	err := r.db.Raw(`
		SELECT DISTINCT p.person_id, p.primary_name, a.fan_count
		FROM acts_in ai
		JOIN actors a ON a.person_id = ai.person_id
		JOIN people p ON p.person_id = a.person_id
		WHERE ai.movie_id = ?
		ORDER BY p.primary_name ASC`, movieID).Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// DirectorExists 名称是否能解析到至少一位导演。
// 人物装载后不可变，正面结论可以被调用方安全记忆。
func (r *PersonRepository) DirectorExists(name string) (bool, error) {
	var count int64
	err := r.db.Raw(`
		SELECT COUNT(*)
		FROM people p
		JOIN directors d ON d.person_id = p.person_id
		WHERE p.primary_name = ?`, name).Scan(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// MoviesByDirector Q4：某位导演名下的电影，重名导演取并集。
// 导演名的存在性判定由调用方先行完成，这里零行返回空序列。
func (r *PersonRepository) MoviesByDirector(name string) ([]model.Movie, error) {
	var rows []model.Movie
	err := r.db.Raw(`
		SELECT DISTINCT m.movie_id, m.primary_title, m.original_title, m.title_type,
		       m.start_year, m.runtime_minutes, m.release_year
		FROM people p
		JOIN directors d ON d.person_id = p.person_id
		JOIN directs di ON di.person_id = d.person_id
		JOIN movies m ON m.movie_id = di.movie_id
		WHERE p.primary_name = ?
		ORDER BY m.start_year ASC, m.primary_title ASC`, name).Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// StudioActor Q7 结果行
type StudioActor struct {
	PersonID    string `json:"person_id" db:"person_id"`
	PrimaryName string `json:"primary_name" db:"primary_name"`
	StudioName  string `json:"studio_name" db:"studio_name"`
	FoundedYear int    `json:"founded_year" db:"founded_year"`
}

// ActorsInStudiosFoundedBefore Q7：出演过老牌制片厂（创立年份早于 cutoff）
// 出品电影的演员。路径是 acts_in → movies → produced_by → studios。
func (r *PersonRepository) ActorsInStudiosFoundedBefore(cutoffYear int) ([]StudioActor, error) {
	var rows []StudioActor
	err := r.db.Raw(`
		SELECT DISTINCT p.person_id, p.primary_name,
		       s.name AS studio_name, s.founded_year
		FROM people p
		JOIN actors a ON a.person_id = p.person_id
		JOIN acts_in ai ON ai.person_id = a.person_id
		JOIN produced_by pb ON pb.movie_id = ai.movie_id
		JOIN studios s ON s.studio_id = pb.studio_id
		WHERE s.founded_year < ?
		ORDER BY s.founded_year ASC, p.primary_name ASC`, cutoffYear).Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// DirectorWriter Q8 结果行
type DirectorWriter struct {
	PersonID    string `json:"person_id" db:"person_id"`
	PrimaryName string `json:"primary_name" db:"primary_name"`
}

// WritersForDirector Q8：给某位导演的电影写过剧本的编剧（去重）。
// 与 Q4 一致，导演名的存在性判定由调用方先行完成。
func (r *PersonRepository) WritersForDirector(name string) ([]DirectorWriter, error) {
	var rows []DirectorWriter
	err := r.db.Raw(`
		SELECT DISTINCT pw.person_id, pw.primary_name
		FROM people pd
		JOIN directors d ON d.person_id = pd.person_id
		JOIN directs di ON di.person_id = d.person_id
		JOIN writes_script_for wsf ON wsf.movie_id = di.movie_id
		JOIN people pw ON pw.person_id = wsf.person_id
		WHERE pd.primary_name = ?
		ORDER BY pw.primary_name ASC`, name).Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// BornActor Q12 结果行
type BornActor struct {
	PersonID    string         `json:"person_id" db:"person_id"`
	PrimaryName string         `json:"primary_name" db:"primary_name"`
	BirthYear   int            `json:"birth_year" db:"birth_year"`
	Professions pq.StringArray `json:"professions" db:"professions" gorm:"type:text[]"`
}

// ActorsBornIn Q12：某一年出生、持有演员角色的人物。
// 这是纯过滤查询，没有解析步骤，零命中返回空序列。
func (r *PersonRepository) ActorsBornIn(birthYear int) ([]BornActor, error) {
	var rows []BornActor
	err := r.db.Raw(`
		SELECT p.person_id, p.primary_name, p.birth_year, p.professions
		FROM people p
		JOIN actors a ON a.person_id = p.person_id
		WHERE p.birth_year = ?
		ORDER BY p.primary_name ASC`, birthYear).Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}
