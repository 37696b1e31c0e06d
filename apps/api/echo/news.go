package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mundoacuatico/backend/core/news"
)

type newsApi struct {
	svc *news.Service
}

func registerNewsAPI(g *echo.Group, svc *news.Service, public, editor []echo.MiddlewareFunc) {
	api := newsApi{svc: svc}

	g.GET("", api.queryPublished, public...)
	g.GET("/:id", api.retrieve, public...)
	g.GET("/todas", api.query, editor...)
	g.GET("/estado/:estado", api.queryByStatus, editor...)
	g.POST("/agregar", api.create, editor...)
	g.PUT("/editar/:id", api.update, editor...)
	g.PUT("/publicar/:id", api.publish, editor...)
	g.DELETE("/eliminar/:id", api.destroy, editor...)
}

func (api newsApi) queryPublished(ctx echo.Context) error {
	posts, err := api.svc.ListPublished(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying published news")
	}
	return ctx.JSON(http.StatusOK, posts)
}

func (api newsApi) query(ctx echo.Context) error {
	posts, err := api.svc.ListAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying news")
	}
	return ctx.JSON(http.StatusOK, posts)
}

func (api newsApi) queryByStatus(ctx echo.Context) error {
	posts, err := api.svc.ListByStatus(ctx.Request().Context(), ctx.Param("estado"))
	if err != nil {
		return errors.Wrap(err, "querying news by status")
	}
	return ctx.JSON(http.StatusOK, posts)
}

// retrieve returns any post to staff, published ones only otherwise.
func (api newsApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx, "id", news.ErrNotFound)
	if err != nil {
		return err
	}
	post, err := api.svc.Get(ctx.Request().Context(), id, isStaff(ctx))
	if err != nil {
		return errors.Wrap(err, "finding news post")
	}
	return ctx.JSON(http.StatusOK, post)
}

func (api newsApi) create(ctx echo.Context) error {
	var data news.NewPost
	if err := bind(ctx, &data); err != nil {
		return err
	}
	post, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating news post")
	}
	return ctx.JSON(http.StatusCreated, post)
}

func (api newsApi) update(ctx echo.Context) error {
	id, err := paramID(ctx, "id", news.ErrNotFound)
	if err != nil {
		return err
	}
	var data news.UpdatePost
	if err = bind(ctx, &data); err != nil {
		return err
	}
	post, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating news post")
	}
	return ctx.JSON(http.StatusOK, post)
}

func (api newsApi) publish(ctx echo.Context) error {
	id, err := paramID(ctx, "id", news.ErrNotFound)
	if err != nil {
		return err
	}
	var data news.PublishPost
	if err = bind(ctx, &data); err != nil {
		return err
	}
	post, err := api.svc.Publish(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "publishing news post")
	}
	return ctx.JSON(http.StatusOK, post)
}

func (api newsApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx, "id", news.ErrNotFound)
	if err != nil {
		return err
	}
	post, err := api.svc.Delete(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "archiving news post")
	}
	return ctx.JSON(http.StatusOK, post)
}
