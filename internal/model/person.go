package model

// Person 人物基表。演员/导演/编剧是按同一 person_id 挂接的能力记录（ISA），
// 一个人可以同时持有多种角色，互不排斥。
type Person struct {
	PersonID        string   `json:"person_id" db:"person_id" gorm:"primaryKey"`
	PrimaryName     string   `json:"primary_name" db:"primary_name"`
	BirthYear       *int     `json:"birth_year" db:"birth_year"`
	DeathYear       *int     `json:"death_year" db:"death_year"`
	Professions     []string `json:"professions" db:"professions" gorm:"-"` // text[]，读写走 pq.Array
	CurrentStudioID *int     `json:"current_studio_id" db:"current_studio_id"`
}

// Actor 演员能力记录
type Actor struct {
	PersonID string `json:"person_id" db:"person_id" gorm:"primaryKey"`
	FanCount int    `json:"fan_count" db:"fan_count"`
}

// Director 导演能力记录，best_known_movie_id 可空，非空时必须指向已存在电影
type Director struct {
	PersonID         string  `json:"person_id" db:"person_id" gorm:"primaryKey"`
	DirectingStyle   string  `json:"directing_style" db:"directing_style"`
	BestKnownMovieID *string `json:"best_known_movie_id" db:"best_known_movie_id"`
}

// Writer 编剧能力记录
type Writer struct {
	PersonID         string  `json:"person_id" db:"person_id" gorm:"primaryKey"`
	WritingStyle     string  `json:"writing_style" db:"writing_style"`
	BestKnownMovieID *string `json:"best_known_movie_id" db:"best_known_movie_id"`
}

// RoleSet 某个人持有的角色集合，通过逐表探测得到
type RoleSet struct {
	Actor    bool `json:"actor"`
	Director bool `json:"director"`
	Writer   bool `json:"writer"`
}

// List 返回持有的角色名列表
func (r RoleSet) List() []string {
	var roles []string
	if r.Actor {
		roles = append(roles, "actor")
	}
	if r.Director {
		roles = append(roles, "director")
	}
	if r.Writer {
		roles = append(roles, "writer")
	}
	return roles
}

// ActsIn 出演关联
type ActsIn struct {
	MovieID  string `json:"movie_id" db:"movie_id" gorm:"primaryKey"`
	PersonID string `json:"person_id" db:"person_id" gorm:"primaryKey"`
}

func (ActsIn) TableName() string { return "acts_in" }

// Directs 执导关联
type Directs struct {
	MovieID  string `json:"movie_id" db:"movie_id" gorm:"primaryKey"`
	PersonID string `json:"person_id" db:"person_id" gorm:"primaryKey"`
}

func (Directs) TableName() string { return "directs" }

// WritesScriptFor 编剧关联
type WritesScriptFor struct {
	MovieID  string `json:"movie_id" db:"movie_id" gorm:"primaryKey"`
	PersonID string `json:"person_id" db:"person_id" gorm:"primaryKey"`
}

func (WritesScriptFor) TableName() string { return "writes_script_for" }
