package inmemdb

import (
	"context"
	"sort"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/news"
)

type newsRepository struct {
	db *DB
}

var _ news.Repository = (*newsRepository)(nil) // interface compliance check

func NewNewsRepository(db *DB) *newsRepository {
	return &newsRepository{db: db}
}

func (repo *newsRepository) QueryPosts(_ context.Context, filter news.QueryFilter, _ ...core.DBExecutor) ([]news.Post, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	posts := repo.db.posts.filter(func(p news.Post) bool {
		return filter.Status == "" || p.Status == filter.Status
	})
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if filter.ByPublication {
			if a.PublishedOn.Valid != b.PublishedOn.Valid {
				return a.PublishedOn.Valid
			}
			return newerFirst(a.PublishedOn.Time, b.PublishedOn.Time, a.ID, b.ID)
		}
		return newerFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return posts, nil
}

func (repo *newsRepository) GetPost(_ context.Context, id int64, _ ...core.DBExecutor) (news.Post, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	post, ok := repo.db.posts.get(id)
	if !ok {
		return news.Post{}, news.ErrNotFound
	}
	return post, nil
}

func (repo *newsRepository) CreatePost(_ context.Context, post news.Post, _ ...core.DBExecutor) (int64, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	return repo.db.posts.insert(post), nil
}

func (repo *newsRepository) UpdatePost(_ context.Context, post news.Post, _ ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if !repo.db.posts.replace(post.ID, post) {
		return news.ErrNotFound
	}
	return nil
}
