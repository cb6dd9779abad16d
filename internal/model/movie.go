package model

// Movie 电影模型（IMDb 元数据，movie_id 为外部稳定主键，入库后不可变）
type Movie struct {
	MovieID        string `json:"movie_id" db:"movie_id" gorm:"primaryKey"`
	PrimaryTitle   string `json:"primary_title" db:"primary_title"`
	OriginalTitle  string `json:"original_title" db:"original_title"`
	TitleType      string `json:"title_type" db:"title_type"`
	StartYear      int    `json:"start_year" db:"start_year"`
	RuntimeMinutes int    `json:"runtime_minutes" db:"runtime_minutes"`
	ReleaseYear    int    `json:"release_year" db:"release_year"`
}

// Studio 制片厂
type Studio struct {
	StudioID    int    `json:"studio_id" db:"studio_id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" db:"name"`
	Country     string `json:"country" db:"country"`
	City        string `json:"city" db:"city"`
	FoundedYear int    `json:"founded_year" db:"founded_year"`
}

// Genre 类型（name 全库唯一）
type Genre struct {
	GenreID int    `json:"genre_id" db:"genre_id" gorm:"primaryKey;autoIncrement"`
	Name    string `json:"name" db:"name" gorm:"unique"`
}

// Award 奖项
type Award struct {
	AwardID int    `json:"award_id" db:"award_id" gorm:"primaryKey;autoIncrement"`
	Name    string `json:"name" db:"name"`
}

// HasGenre 电影-类型关联（复合主键，无独立标识）
type HasGenre struct {
	MovieID string `json:"movie_id" db:"movie_id" gorm:"primaryKey"`
	GenreID int    `json:"genre_id" db:"genre_id" gorm:"primaryKey"`
}

func (HasGenre) TableName() string { return "has_genre" }

// ProducedBy 电影-制片厂关联
type ProducedBy struct {
	MovieID  string `json:"movie_id" db:"movie_id" gorm:"primaryKey"`
	StudioID int    `json:"studio_id" db:"studio_id" gorm:"primaryKey"`
}

func (ProducedBy) TableName() string { return "produced_by" }

// WinsAward 电影获奖记录（关联上带获奖年份）
type WinsAward struct {
	MovieID string `json:"movie_id" db:"movie_id" gorm:"primaryKey"`
	AwardID int    `json:"award_id" db:"award_id" gorm:"primaryKey"`
	Year    int    `json:"year" db:"year"`
}

func (WinsAward) TableName() string { return "wins_award" }
