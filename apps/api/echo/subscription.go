package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mundoacuatico/backend/core/subscriber"
	"github.com/mundoacuatico/backend/core/subscription"
)

type subscriptionApi struct {
	svc *subscription.Service
}

// registerSubscriptionAPI registers the subscription endpoints. g is admin only.
func registerSubscriptionAPI(g *echo.Group, svc *subscription.Service) {
	api := subscriptionApi{svc: svc}

	g.GET("", api.query)
	g.GET("/:id", api.retrieve)
	g.GET("/suscriptor/:suscriptor_id", api.queryBySubscriber)
	g.GET("/estado/:estado", api.queryByStatus)
	g.POST("/agregar", api.create)
	g.PUT("/editar/:id", api.update)
	g.PUT("/pago/:id", api.recordPayment)
	g.DELETE("/eliminar/:id", api.destroy)
}

func (api subscriptionApi) query(ctx echo.Context) error {
	subs, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying subscriptions")
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api subscriptionApi) queryBySubscriber(ctx echo.Context) error {
	subID, err := paramID(ctx, "suscriptor_id", subscriber.ErrNotFound)
	if err != nil {
		return err
	}
	subs, err := api.svc.ListBySubscriber(ctx.Request().Context(), subID)
	if err != nil {
		return errors.Wrap(err, "querying subscriber subscriptions")
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api subscriptionApi) queryByStatus(ctx echo.Context) error {
	subs, err := api.svc.ListByStatus(ctx.Request().Context(), ctx.Param("estado"))
	if err != nil {
		return errors.Wrap(err, "querying subscriptions by status")
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api subscriptionApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx, "id", subscription.ErrNotFound)
	if err != nil {
		return err
	}
	sub, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding subscription")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api subscriptionApi) create(ctx echo.Context) error {
	var data subscription.NewSubscription
	if err := bind(ctx, &data); err != nil {
		return err
	}
	sub, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating subscription")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api subscriptionApi) update(ctx echo.Context) error {
	id, err := paramID(ctx, "id", subscription.ErrNotFound)
	if err != nil {
		return err
	}
	var data subscription.UpdateSubscription
	if err = bind(ctx, &data); err != nil {
		return err
	}
	sub, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating subscription")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api subscriptionApi) recordPayment(ctx echo.Context) error {
	id, err := paramID(ctx, "id", subscription.ErrNotFound)
	if err != nil {
		return err
	}
	var data subscription.Payment
	if err = bind(ctx, &data); err != nil {
		return err
	}
	sub, err := api.svc.RecordPayment(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "recording payment")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api subscriptionApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx, "id", subscription.ErrNotFound)
	if err != nil {
		return err
	}
	sub, err := api.svc.Delete(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "cancelling subscription")
	}
	return ctx.JSON(http.StatusOK, sub)
}
