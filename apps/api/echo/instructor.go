package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mundoacuatico/backend/core/instructor"
)

type instructorApi struct {
	svc *instructor.Service
}

func registerInstructorAPI(g *echo.Group, svc *instructor.Service, public, admin []echo.MiddlewareFunc) {
	api := instructorApi{svc: svc}

	g.GET("", api.query, public...)
	g.GET("/:id", api.retrieve, public...)
	g.POST("/agregar", api.create, admin...)
	g.PUT("/editar/:id", api.update, admin...)
	g.DELETE("/eliminar/:id", api.destroy, admin...)
}

func (api instructorApi) query(ctx echo.Context) error {
	insts, err := api.svc.List(ctx.Request().Context(), isStaff(ctx))
	if err != nil {
		return errors.Wrap(err, "querying instructors")
	}
	return ctx.JSON(http.StatusOK, insts)
}

func (api instructorApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx, "id", instructor.ErrNotFound)
	if err != nil {
		return err
	}
	inst, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding instructor")
	}
	return ctx.JSON(http.StatusOK, inst)
}

func (api instructorApi) create(ctx echo.Context) error {
	var data instructor.NewInstructor
	if err := bind(ctx, &data); err != nil {
		return err
	}
	inst, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating instructor")
	}
	return ctx.JSON(http.StatusCreated, inst)
}

func (api instructorApi) update(ctx echo.Context) error {
	id, err := paramID(ctx, "id", instructor.ErrNotFound)
	if err != nil {
		return err
	}
	var data instructor.UpdateInstructor
	if err = bind(ctx, &data); err != nil {
		return err
	}
	inst, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating instructor")
	}
	return ctx.JSON(http.StatusOK, inst)
}

func (api instructorApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx, "id", instructor.ErrNotFound)
	if err != nil {
		return err
	}
	inst, err := api.svc.Delete(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "deactivating instructor")
	}
	return ctx.JSON(http.StatusOK, inst)
}
