package repository

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 初始化数据库连接
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// Repositories 仓库集合
type Repositories struct {
	DB     *gorm.DB
	Movie  *MovieRepository
	Person *PersonRepository
	Studio *StudioRepository
	Genre  *GenreRepository
	Award  *AwardRepository
	Review *ReviewRepository
	User   *UserRepository
}

// NewRepositories 创建仓库集合。传入事务句柄时得到的是事务作用域内的仓库集合。
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:     db,
		Movie:  NewMovieRepository(db),
		Person: NewPersonRepository(db),
		Studio: NewStudioRepository(db),
		Genre:  NewGenreRepository(db),
		Award:  NewAwardRepository(db),
		Review: NewReviewRepository(db),
		User:   NewUserRepository(db),
	}
}
