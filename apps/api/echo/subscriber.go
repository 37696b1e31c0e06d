package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mundoacuatico/backend/core/subscriber"
)

type subscriberApi struct {
	svc *subscriber.Service
}

// registerSubscriberAPI registers the subscriber endpoints. g is admin only.
func registerSubscriberAPI(g *echo.Group, svc *subscriber.Service) {
	api := subscriberApi{svc: svc}

	g.GET("", api.query)
	g.GET("/:id", api.retrieve)
	g.GET("/estado/:estado", api.queryByStatus)
	g.POST("/agregar", api.create)
	g.PUT("/editar/:id", api.update)
	g.DELETE("/eliminar/:id", api.destroy)
}

func (api subscriberApi) query(ctx echo.Context) error {
	subs, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying subscribers")
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api subscriberApi) queryByStatus(ctx echo.Context) error {
	subs, err := api.svc.ListByStatus(ctx.Request().Context(), ctx.Param("estado"))
	if err != nil {
		return errors.Wrap(err, "querying subscribers by status")
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api subscriberApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx, "id", subscriber.ErrNotFound)
	if err != nil {
		return err
	}
	sub, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding subscriber")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api subscriberApi) create(ctx echo.Context) error {
	var data subscriber.NewSubscriber
	if err := bind(ctx, &data); err != nil {
		return err
	}
	sub, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating subscriber")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api subscriberApi) update(ctx echo.Context) error {
	id, err := paramID(ctx, "id", subscriber.ErrNotFound)
	if err != nil {
		return err
	}
	var data subscriber.UpdateSubscriber
	if err = bind(ctx, &data); err != nil {
		return err
	}
	sub, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating subscriber")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api subscriberApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx, "id", subscriber.ErrNotFound)
	if err != nil {
		return err
	}
	sub, err := api.svc.Delete(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "deactivating subscriber")
	}
	return ctx.JSON(http.StatusOK, sub)
}
