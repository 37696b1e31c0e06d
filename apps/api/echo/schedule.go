package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mundoacuatico/backend/core/activity"
	"github.com/mundoacuatico/backend/core/schedule"
)

type scheduleApi struct {
	svc *schedule.Service
}

func registerScheduleAPI(g *echo.Group, svc *schedule.Service, public, admin []echo.MiddlewareFunc) {
	api := scheduleApi{svc: svc}

	g.GET("", api.query, public...)
	g.GET("/:id", api.retrieve, public...)
	g.GET("/actividad/:actividad_id", api.queryByActivity, public...)
	g.POST("/agregar", api.create, admin...)
	g.PUT("/editar/:id", api.update, admin...)
	g.DELETE("/eliminar/:id", api.destroy, admin...)
}

func (api scheduleApi) query(ctx echo.Context) error {
	schs, err := api.svc.List(ctx.Request().Context(), isStaff(ctx))
	if err != nil {
		return errors.Wrap(err, "querying schedules")
	}
	return ctx.JSON(http.StatusOK, schs)
}

func (api scheduleApi) queryByActivity(ctx echo.Context) error {
	actID, err := paramID(ctx, "actividad_id", activity.ErrNotFound)
	if err != nil {
		return err
	}
	schs, err := api.svc.ListByActivity(ctx.Request().Context(), actID)
	if err != nil {
		return errors.Wrap(err, "querying activity schedules")
	}
	return ctx.JSON(http.StatusOK, schs)
}

func (api scheduleApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx, "id", schedule.ErrNotFound)
	if err != nil {
		return err
	}
	sch, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding schedule")
	}
	return ctx.JSON(http.StatusOK, sch)
}

func (api scheduleApi) create(ctx echo.Context) error {
	var data schedule.NewSchedule
	if err := bind(ctx, &data); err != nil {
		return err
	}
	sch, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating schedule")
	}
	return ctx.JSON(http.StatusCreated, sch)
}

func (api scheduleApi) update(ctx echo.Context) error {
	id, err := paramID(ctx, "id", schedule.ErrNotFound)
	if err != nil {
		return err
	}
	var data schedule.UpdateSchedule
	if err = bind(ctx, &data); err != nil {
		return err
	}
	sch, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating schedule")
	}
	return ctx.JSON(http.StatusOK, sch)
}

func (api scheduleApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx, "id", schedule.ErrNotFound)
	if err != nil {
		return err
	}
	sch, err := api.svc.Delete(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "deactivating schedule")
	}
	return ctx.JSON(http.StatusOK, sch)
}
