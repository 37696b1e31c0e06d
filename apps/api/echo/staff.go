package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mundoacuatico/backend/core/staff"
)

type staffApi struct {
	svc *staff.Service
}

func registerStaffAPI(g *echo.Group, srv *Server, staffOnly, admin []echo.MiddlewareFunc) {
	api := staffApi{svc: srv.deps.StaffSvc}

	// un-authed endpoints
	g.POST("/login", srv.login)

	// authed endpoints
	g.POST("/token-refresh", srv.refreshToken, staffOnly...)
	g.GET("", api.query, admin...)
	g.GET("/:id", api.retrieve, admin...)
	g.POST("/agregar", api.create, admin...)
	g.PUT("/editar/:id", api.update, admin...)
	g.DELETE("/eliminar/:id", api.destroy, admin...)
}

func (api staffApi) query(ctx echo.Context) error {
	users, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying staff users")
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api staffApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx, "id", staff.ErrNotFound)
	if err != nil {
		return err
	}
	usr, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding staff user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api staffApi) create(ctx echo.Context) error {
	var data staff.NewUser
	if err := bind(ctx, &data); err != nil {
		return err
	}
	usr, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating staff user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api staffApi) update(ctx echo.Context) error {
	id, err := paramID(ctx, "id", staff.ErrNotFound)
	if err != nil {
		return err
	}
	var data staff.UpdateUser
	if err = bind(ctx, &data); err != nil {
		return err
	}
	actor, _ := getContextUser(ctx)
	usr, err := api.svc.Update(ctx.Request().Context(), id, data, actor.ID)
	if err != nil {
		return errors.Wrap(err, "updating staff user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api staffApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx, "id", staff.ErrNotFound)
	if err != nil {
		return err
	}
	actor, _ := getContextUser(ctx)
	usr, err := api.svc.Delete(ctx.Request().Context(), id, actor.ID)
	if err != nil {
		return errors.Wrap(err, "deactivating staff user")
	}
	return ctx.JSON(http.StatusOK, usr)
}
