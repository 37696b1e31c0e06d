package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mundoacuatico/backend/core/activity"
)

type activityApi struct {
	svc *activity.Service
}

func registerActivityAPI(g *echo.Group, svc *activity.Service, public, admin []echo.MiddlewareFunc) {
	api := activityApi{svc: svc}

	g.GET("", api.query, public...)
	g.GET("/:id", api.retrieve, public...)
	g.POST("/agregar", api.create, admin...)
	g.PUT("/editar/:id", api.update, admin...)
	g.DELETE("/eliminar/:id", api.destroy, admin...)
}

func (api activityApi) query(ctx echo.Context) error {
	acts, err := api.svc.List(ctx.Request().Context(), isStaff(ctx))
	if err != nil {
		return errors.Wrap(err, "querying activities")
	}
	return ctx.JSON(http.StatusOK, acts)
}

func (api activityApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx, "id", activity.ErrNotFound)
	if err != nil {
		return err
	}
	act, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding activity")
	}
	return ctx.JSON(http.StatusOK, act)
}

func (api activityApi) create(ctx echo.Context) error {
	var data activity.NewActivity
	if err := bind(ctx, &data); err != nil {
		return err
	}
	act, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating activity")
	}
	return ctx.JSON(http.StatusCreated, act)
}

func (api activityApi) update(ctx echo.Context) error {
	id, err := paramID(ctx, "id", activity.ErrNotFound)
	if err != nil {
		return err
	}
	var data activity.UpdateActivity
	if err = bind(ctx, &data); err != nil {
		return err
	}
	act, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating activity")
	}
	return ctx.JSON(http.StatusOK, act)
}

func (api activityApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx, "id", activity.ErrNotFound)
	if err != nil {
		return err
	}
	act, err := api.svc.Delete(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "deactivating activity")
	}
	return ctx.JSON(http.StatusOK, act)
}
