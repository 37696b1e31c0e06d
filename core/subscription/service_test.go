package subscription_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/activity"
	"github.com/mundoacuatico/backend/core/instructor"
	"github.com/mundoacuatico/backend/core/subscriber"
	"github.com/mundoacuatico/backend/core/subscription"
	"github.com/mundoacuatico/backend/tests"
)

func strPtr(s string) *string { return &s }

func TestService_seats(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos()
	svc := subscription.NewService(repos.Subscriptions, repos.Tx, core.NewValidator())

	swim := testutil.CreateActivity(t, repos.Activities, "Natación", 8000, activity.StatusActive)
	inst := testutil.CreateInstructor(t, repos.Instructors, "Ana", "", instructor.StatusActive)
	small := testutil.CreateSchedule(t, repos.Schedules, swim.ID, inst.ID, "Lunes", "08:00", 1, true)
	other := testutil.CreateSchedule(t, repos.Schedules, swim.ID, inst.ID, "Martes", "08:00", 1, true)
	closed := testutil.CreateSchedule(t, repos.Schedules, swim.ID, inst.ID, "Jueves", "08:00", 5, false)

	mateo := testutil.CreateSubscriber(t, repos.Subscribers, "Mateo", "mateo@test.com", subscriber.StatusActive)
	lucia := testutil.CreateSubscriber(t, repos.Subscribers, "Lucía", "lucia@test.com", subscriber.StatusActive)
	sofia := testutil.CreateSubscriber(t, repos.Subscribers, "Sofía", "sofia@test.com", subscriber.StatusActive)

	a := testutil.CreateSubscription(t, repos.Subscriptions, mateo.ID, small.ID, subscription.StatusActive)
	b := testutil.CreateSubscription(t, repos.Subscriptions, lucia.ID, other.ID, subscription.StatusActive)
	c := testutil.CreateSubscription(t, repos.Subscriptions, sofia.ID, small.ID, subscription.StatusPending)

	update := func(id int64, us subscription.UpdateSubscription) error {
		_, err := svc.Update(ctx, id, us)
		return err
	}

	// moving to another schedule takes a seat there
	assert.ErrorIs(t, update(a.ID, subscription.UpdateSubscription{ScheduleID: core.NewInt(other.ID)}), subscription.ErrNoCapacity)
	assert.ErrorIs(t, update(a.ID, subscription.UpdateSubscription{ScheduleID: core.NewInt(closed.ID)}), subscription.ErrScheduleInactive)
	assert.ErrorIs(t, update(a.ID, subscription.UpdateSubscription{ScheduleID: core.NewInt(999)}), subscription.ErrScheduleNotFound)

	// staying put never needs a free seat
	got, err := svc.Update(ctx, a.ID, subscription.UpdateSubscription{Notes: strPtr(" Trae gorra ")})
	require.NoError(t, err)
	assert.Equal(t, small.ID, got.ScheduleID)
	assert.Equal(t, "Trae gorra", got.Notes)

	// a pending subscription only takes its seat once activated
	assert.ErrorIs(t, update(c.ID, subscription.UpdateSubscription{Status: subscription.StatusActive}), subscription.ErrNoCapacity)

	got, err = svc.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusCancelled, got.Status)

	require.NoError(t, update(c.ID, subscription.UpdateSubscription{Status: subscription.StatusActive}))
	assert.ErrorIs(t, update(a.ID, subscription.UpdateSubscription{Status: subscription.StatusActive}), subscription.ErrNoCapacity)

	// an overdue subscription frees its seat, and needs it back to be reactivated
	require.NoError(t, update(b.ID, subscription.UpdateSubscription{Status: subscription.StatusOverdue}))
	taker, err := svc.Create(ctx, subscription.NewSubscription{SubscriberID: core.NewInt(mateo.ID), ScheduleID: core.NewInt(other.ID), MonthlyAmount: core.NewAmount(8000)})
	require.NoError(t, err)
	assert.ErrorIs(t, update(b.ID, subscription.UpdateSubscription{Status: subscription.StatusActive}), subscription.ErrNoCapacity)

	// so does paying
	_, err = svc.RecordPayment(ctx, b.ID, subscription.Payment{LastPayment: core.Today()})
	assert.ErrorIs(t, err, subscription.ErrNoCapacity)

	_, err = svc.Delete(ctx, taker.ID)
	require.NoError(t, err)
	got, err = svc.RecordPayment(ctx, b.ID, subscription.Payment{LastPayment: core.Today()})
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusActive, got.Status)
	assert.Equal(t, subscription.PaymentCash, got.PaymentMethod)
	assert.Equal(t, core.Today(), got.LastPayment)
}

func TestService_create(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos()
	svc := subscription.NewService(repos.Subscriptions, repos.Tx, core.NewValidator())

	swim := testutil.CreateActivity(t, repos.Activities, "Natación", 8000, activity.StatusActive)
	inst := testutil.CreateInstructor(t, repos.Instructors, "Ana", "", instructor.StatusActive)
	sch := testutil.CreateSchedule(t, repos.Schedules, swim.ID, inst.ID, "Lunes", "08:00", 5, true)
	mateo := testutil.CreateSubscriber(t, repos.Subscribers, "Mateo", "mateo@test.com", subscriber.StatusActive)

	_, err := svc.Create(ctx, subscription.NewSubscription{SubscriberID: core.NewInt(999), ScheduleID: core.NewInt(sch.ID), MonthlyAmount: core.NewAmount(8000)})
	require.True(t, core.IsValidation(err), err)
	assert.Equal(t, []string{"El suscriptor seleccionado no existe"}, err.(*core.ValidationError).Messages())

	_, err = svc.Create(ctx, subscription.NewSubscription{SubscriberID: core.NewInt(mateo.ID), ScheduleID: core.NewInt(sch.ID)})
	require.True(t, core.IsValidation(err), err)
	assert.Equal(t, []string{"monto_mensual es obligatorio"}, err.(*core.ValidationError).Messages())

	_, err = svc.Create(ctx, subscription.NewSubscription{SubscriberID: core.NewInt(mateo.ID), ScheduleID: core.NewInt(sch.ID), Status: subscription.StatusOverdue, MonthlyAmount: core.NewAmount(8000)})
	assert.True(t, core.IsValidation(err), err)

	got, err := svc.Create(ctx, subscription.NewSubscription{SubscriberID: core.NewInt(mateo.ID), ScheduleID: core.NewInt(sch.ID), MonthlyAmount: core.NewAmount(0), Notes: "  "})
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusActive, got.Status)
	assert.Equal(t, subscription.PaymentCash, got.PaymentMethod)
	assert.Equal(t, 0.0, got.MonthlyAmount)
	assert.Equal(t, "Mateo", got.SubscriberName)
	assert.Equal(t, "Natación", got.ActivityName)
	assert.Equal(t, "Ana", got.InstructorName)
	assert.False(t, got.LastPayment.Valid)
}
