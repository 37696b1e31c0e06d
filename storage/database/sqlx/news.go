package sqlxrepos

import (
	"context"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/news"
)

const newsFrom = `
SELECT n.id, n.titulo, n.contenido, n.imagen_url, n.estado, n.fecha_publicacion, n.fecha_creacion, n.fecha_actualizacion
FROM noticias n`

var newsColumns = []string{
	"titulo", "contenido", "imagen_url", "estado", "fecha_publicacion", "fecha_creacion", "fecha_actualizacion",
}

type newsRepository struct {
	crud[news.Post]
}

var _ news.Repository = (*newsRepository)(nil) // interface compliance check

func NewNewsRepository(db core.DBExecutor) *newsRepository {
	return &newsRepository{crud[news.Post]{
		db:       db,
		table:    "noticias",
		from:     newsFrom,
		name:     "news post",
		notFound: news.ErrNotFound,
	}}
}

func (repo newsRepository) QueryPosts(ctx context.Context, filter news.QueryFilter, exec ...core.DBExecutor) ([]news.Post, error) {
	cond := newWhere()
	if filter.Status != "" {
		cond = cond.add("n.estado = ?", filter.Status)
	}
	orderBy := "n.fecha_creacion DESC, n.id DESC"
	if filter.ByPublication {
		orderBy = "n.fecha_publicacion DESC NULLS LAST, n.id DESC"
	}
	return repo.list(ctx, exec, cond, orderBy)
}

func (repo newsRepository) GetPost(ctx context.Context, id int64, exec ...core.DBExecutor) (news.Post, error) {
	return repo.getByID(ctx, exec, "n", id)
}

func (repo newsRepository) CreatePost(ctx context.Context, post news.Post, exec ...core.DBExecutor) (int64, error) {
	return repo.insert(ctx, exec, post, newsColumns...)
}

func (repo newsRepository) UpdatePost(ctx context.Context, post news.Post, exec ...core.DBExecutor) error {
	return repo.update(ctx, exec, post, newsColumns...)
}
