package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/activity"
	"github.com/mundoacuatico/backend/core/instructor"
	"github.com/mundoacuatico/backend/core/news"
	"github.com/mundoacuatico/backend/core/schedule"
	"github.com/mundoacuatico/backend/core/staff"
	"github.com/mundoacuatico/backend/core/subscriber"
	"github.com/mundoacuatico/backend/core/subscription"
	"github.com/mundoacuatico/backend/storage/database/inmem"
)

// Conf returns a TEST configuration.
func Conf() *core.Config {
	return &core.Config{
		AppName:   "Mundo Acuático",
		Env:       "TEST",
		TestMode:  true,
		SecretKey: "test-secret",
		Server: core.ServerConfig{
			MaxInFlight:               10,
			MaxQueue:                  100,
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 24 * time.Hour,
			DisableReqLogs:            true,
		},
	}
}

// Repos are the repositories of a fresh in-memory store.
type Repos struct {
	Activities    activity.Repository
	Instructors   instructor.Repository
	Schedules     schedule.Repository
	Subscribers   subscriber.Repository
	Subscriptions subscription.Repository
	News          news.Repository
	Staff         staff.Repository
	Tx            core.Transactor
}

func NewRepos() Repos {
	db := inmemdb.Open()
	return Repos{
		Activities:    inmemdb.NewActivityRepository(db),
		Instructors:   inmemdb.NewInstructorRepository(db),
		Schedules:     inmemdb.NewScheduleRepository(db),
		Subscribers:   inmemdb.NewSubscriberRepository(db),
		Subscriptions: inmemdb.NewSubscriptionRepository(db),
		News:          inmemdb.NewNewsRepository(db),
		Staff:         inmemdb.NewStaffRepository(db),
		Tx:            inmemdb.NewTransactor(db),
	}
}

func stamp(createdAt []time.Time) time.Time {
	if len(createdAt) > 0 {
		return createdAt[0].UTC()
	}
	return time.Now().UTC()
}

func CreateStaff(t *testing.T, repo staff.Repository, uname, pwd string, role staff.Role, active bool) staff.User {
	usr := staff.User{
		Username:  uname,
		Name:      "Staff " + uname,
		Role:      role,
		Status:    staff.StatusActive,
		CreatedAt: stamp(nil),
	}
	if !active {
		usr.Status = staff.StatusInactive
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateStaff() failed: %v", err)
		}
	}
	id, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateStaff() failed: %v", err)
	}
	usr, err = repo.GetUser(context.Background(), id)
	if err != nil {
		t.Fatalf("CreateStaff() failed: %v", err)
	}
	return usr
}

func CreateActivity(t *testing.T, repo activity.Repository, name string, price float64, status activity.Status, createdAt ...time.Time) activity.Activity {
	id, err := repo.CreateActivity(context.Background(), activity.Activity{
		Name:         name,
		MonthlyPrice: price,
		Status:       status,
		CreatedAt:    stamp(createdAt),
	})
	if err != nil {
		t.Fatalf("CreateActivity() failed: %v", err)
	}
	act, err := repo.GetActivity(context.Background(), id)
	if err != nil {
		t.Fatalf("CreateActivity() failed: %v", err)
	}
	return act
}

func CreateInstructor(t *testing.T, repo instructor.Repository, name, email string, status instructor.Status, createdAt ...time.Time) instructor.Instructor {
	id, err := repo.CreateInstructor(context.Background(), instructor.Instructor{
		Name:      name,
		Specialty: instructor.DefaultSpecialty,
		Phone:     "1122334455",
		Email:     null.NewString(email, email != ""),
		Shift:     instructor.ShiftMorning,
		Status:    status,
		CreatedAt: stamp(createdAt),
	})
	if err != nil {
		t.Fatalf("CreateInstructor() failed: %v", err)
	}
	inst, err := repo.GetInstructor(context.Background(), id)
	if err != nil {
		t.Fatalf("CreateInstructor() failed: %v", err)
	}
	return inst
}

func CreateSchedule(t *testing.T, repo schedule.Repository, activityID, instructorID int64, days, start string, capacity int, active bool) schedule.Schedule {
	end := core.NormalizeClock(start)
	if tm, err := time.Parse("15:04:05", end); err == nil {
		end = tm.Add(time.Hour).Format("15:04:05")
	}
	id, err := repo.CreateSchedule(context.Background(), schedule.Schedule{
		ActivityID:   activityID,
		InstructorID: instructorID,
		Days:         days,
		StartTime:    core.NormalizeClock(start),
		EndTime:      end,
		Capacity:     capacity,
		Active:       active,
		CreatedAt:    stamp(nil),
	})
	if err != nil {
		t.Fatalf("CreateSchedule() failed: %v", err)
	}
	sch, err := repo.GetSchedule(context.Background(), id)
	if err != nil {
		t.Fatalf("CreateSchedule() failed: %v", err)
	}
	return sch
}

func CreateSubscriber(t *testing.T, repo subscriber.Repository, name, email string, status subscriber.Status) subscriber.Subscriber {
	birth, _ := core.ParseDate("1990-05-10")
	id, err := repo.CreateSubscriber(context.Background(), subscriber.Subscriber{
		Name:      name,
		Email:     email,
		Phone:     "1122334455",
		BirthDate: birth,
		Status:    status,
		CreatedAt: stamp(nil),
	})
	if err != nil {
		t.Fatalf("CreateSubscriber() failed: %v", err)
	}
	sub, err := repo.GetSubscriber(context.Background(), id)
	if err != nil {
		t.Fatalf("CreateSubscriber() failed: %v", err)
	}
	return sub
}

func CreateSubscription(t *testing.T, repo subscription.Repository, subscriberID, scheduleID int64, status subscription.Status, createdAt ...time.Time) subscription.Subscription {
	id, err := repo.CreateSubscription(context.Background(), subscription.Subscription{
		SubscriberID:  subscriberID,
		ScheduleID:    scheduleID,
		Status:        status,
		MonthlyAmount: 5000,
		PaymentMethod: subscription.PaymentCash,
		CreatedAt:     stamp(createdAt),
	})
	if err != nil {
		t.Fatalf("CreateSubscription() failed: %v", err)
	}
	sub, err := repo.GetSubscription(context.Background(), id)
	if err != nil {
		t.Fatalf("CreateSubscription() failed: %v", err)
	}
	return sub
}

func CreatePost(t *testing.T, repo news.Repository, title string, status news.Status, publishedOn core.Date, createdAt ...time.Time) news.Post {
	id, err := repo.CreatePost(context.Background(), news.Post{
		Title:       title,
		Body:        "Contenido de la noticia " + title,
		Status:      status,
		PublishedOn: publishedOn,
		CreatedAt:   stamp(createdAt),
	})
	if err != nil {
		t.Fatalf("CreatePost() failed: %v", err)
	}
	post, err := repo.GetPost(context.Background(), id)
	if err != nil {
		t.Fatalf("CreatePost() failed: %v", err)
	}
	return post
}
