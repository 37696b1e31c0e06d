package news

import (
	"context"

	"github.com/mundoacuatico/backend/core"
)

var (
	// errors
	ErrNotFound        = core.NewNotFoundError("Noticia no encontrada")
	ErrArchivedPublish = core.NewConflictError("Una noticia archivada no puede publicarse")

	// Archivado is terminal
	transitions = core.Transitions[Status]{
		StatusDraft:     {StatusPublished, StatusArchived},
		StatusPublished: {StatusArchived},
	}
)

type (
	Repository interface {
		QueryPosts(ctx context.Context, filter QueryFilter, exec ...core.DBExecutor) ([]Post, error)
		GetPost(ctx context.Context, id int64, exec ...core.DBExecutor) (Post, error)
		CreatePost(ctx context.Context, post Post, exec ...core.DBExecutor) (int64, error)
		UpdatePost(ctx context.Context, post Post, exec ...core.DBExecutor) error
	}

	Service struct {
		repo      Repository
		validator *core.Validator
	}
)

func NewService(repo Repository, validator *core.Validator) *Service {
	return &Service{repo: repo, validator: validator}
}

// ListPublished lists published posts, newest publication first.
func (svc *Service) ListPublished(ctx context.Context) ([]Post, error) {
	return svc.repo.QueryPosts(ctx, QueryFilter{Status: StatusPublished, ByPublication: true})
}

// ListAll lists every post, newest first.
func (svc *Service) ListAll(ctx context.Context) ([]Post, error) {
	return svc.repo.QueryPosts(ctx, QueryFilter{})
}

func (svc *Service) ListByStatus(ctx context.Context, status string) ([]Post, error) {
	st, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return svc.repo.QueryPosts(ctx, QueryFilter{Status: st})
}

// Get returns any post to staff, published ones only otherwise.
func (svc *Service) Get(ctx context.Context, id int64, staff bool) (Post, error) {
	post, err := svc.repo.GetPost(ctx, id)
	if err != nil {
		return Post{}, err
	}
	if !staff && !post.IsPublished() {
		return Post{}, ErrNotFound
	}
	return post, nil
}

func (svc *Service) Create(ctx context.Context, np NewPost) (Post, error) {
	np.Clean()
	if err := np.Validate(svc.validator); err != nil {
		return Post{}, err
	}

	id, err := svc.repo.CreatePost(ctx, Post{
		Title:       np.Title,
		Body:        np.Body,
		ImageURL:    np.ImageURL,
		Status:      np.Status,
		PublishedOn: np.PublishedOn,
		CreatedAt:   core.NowFunc().UTC(),
	})
	if err != nil {
		return Post{}, err
	}
	return svc.repo.GetPost(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int64, up UpdatePost) (Post, error) {
	orig, err := svc.repo.GetPost(ctx, id)
	if err != nil {
		return Post{}, err
	}
	up.Clean(orig)
	if err = up.Validate(svc.validator); err != nil {
		return Post{}, err
	}
	if err = transitions.Check(orig.Status, up.Status); err != nil {
		return Post{}, err
	}

	post := orig
	post.Title = up.Title
	post.Body = up.Body
	post.ImageURL = up.ImageURL
	post.Status = up.Status
	post.PublishedOn = up.PublishedOn
	return svc.save(ctx, post)
}

// Delete archives the post. Archiving is final.
func (svc *Service) Delete(ctx context.Context, id int64) (Post, error) {
	post, err := svc.repo.GetPost(ctx, id)
	if err != nil {
		return Post{}, err
	}
	if post.Status == StatusArchived {
		return post, nil
	}
	post.Status = StatusArchived
	return svc.save(ctx, post)
}

// Publish publishes a draft. Publishing an already published post changes nothing (its date is kept).
func (svc *Service) Publish(ctx context.Context, id int64, pp PublishPost) (Post, error) {
	post, err := svc.repo.GetPost(ctx, id)
	if err != nil {
		return Post{}, err
	}

	switch post.Status {
	case StatusArchived:
		return Post{}, ErrArchivedPublish
	case StatusPublished:
		return post, nil
	}

	if err = svc.validator.Struct(publishable{Title: post.Title, Body: post.Body}); err != nil {
		return Post{}, err
	}

	post.Status = StatusPublished
	post.PublishedOn = pp.PublishedOn
	if !post.PublishedOn.Valid {
		post.PublishedOn = core.Today()
	}
	return svc.save(ctx, post)
}

func (svc *Service) save(ctx context.Context, post Post) (Post, error) {
	post.UpdatedAt.SetValid(core.NowFunc().UTC())
	if err := svc.repo.UpdatePost(ctx, post); err != nil {
		return Post{}, err
	}
	return svc.repo.GetPost(ctx, post.ID)
}
