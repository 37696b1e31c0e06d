package inmemdb

import (
	"sort"
	"strings"

	"github.com/mundoacuatico/backend/core/activity"
	"github.com/mundoacuatico/backend/core/instructor"
	"github.com/mundoacuatico/backend/core/schedule"
	"github.com/mundoacuatico/backend/core/subscriber"
	"github.com/mundoacuatico/backend/core/subscription"
)

// The helpers below fill read-only fields the way the SQL joins do. Callers hold db.mutex.

func (db *DB) takenSeats(scheduleID int64) int {
	var n int
	for _, s := range db.subscriptions.rows {
		if s.ScheduleID == scheduleID && s.Status == subscription.StatusActive {
			n++
		}
	}
	return n
}

func (db *DB) joinActivity(act activity.Activity) activity.Activity {
	act.ScheduleCount, act.SubscriptionCount = 0, 0
	for _, sch := range db.schedules.rows {
		if sch.ActivityID == act.ID && sch.Active {
			act.ScheduleCount++
			act.SubscriptionCount += db.takenSeats(sch.ID)
		}
	}
	return act
}

func (db *DB) joinInstructor(inst instructor.Instructor) instructor.Instructor {
	inst.ScheduleCount = 0
	names := make(map[string]struct{})
	for _, sch := range db.schedules.rows {
		if sch.InstructorID != inst.ID || !sch.Active {
			continue
		}
		inst.ScheduleCount++
		if act, ok := db.activities.get(sch.ActivityID); ok && act.IsActive() {
			names[act.Name] = struct{}{}
		}
	}
	inst.Activities = strings.Join(sortedKeys(names), ", ")
	return inst
}

func (db *DB) joinSchedule(sch schedule.Schedule) schedule.Schedule {
	if act, ok := db.activities.get(sch.ActivityID); ok {
		sch.ActivityName = act.Name
	}
	if inst, ok := db.instructors.get(sch.InstructorID); ok {
		sch.InstructorName = inst.Name
	}
	sch.Subscriptions = db.takenSeats(sch.ID)
	sch.AvailableSeats = sch.Capacity - sch.Subscriptions
	return sch
}

func (db *DB) joinSubscriber(sub subscriber.Subscriber) subscriber.Subscriber {
	var items []string
	for _, s := range db.subscriptions.rows {
		if s.SubscriberID != sub.ID || s.Status != subscription.StatusActive {
			continue
		}
		sch, ok := db.schedules.get(s.ScheduleID)
		if !ok {
			continue
		}
		sch = db.joinSchedule(sch)
		items = append(items, sch.ActivityName+" - "+sch.Days+" "+hhmm(sch.StartTime)+"-"+hhmm(sch.EndTime))
	}
	sort.Strings(items)
	sub.SubscribedActivities = strings.Join(items, "; ")
	return sub
}

func (db *DB) joinSubscription(s subscription.Subscription) subscription.Subscription {
	if sub, ok := db.subscribers.get(s.SubscriberID); ok {
		s.SubscriberName = sub.Name
		s.SubscriberEmail = sub.Email
		s.SubscriberPhone = sub.Phone
	}
	if sch, ok := db.schedules.get(s.ScheduleID); ok {
		sch = db.joinSchedule(sch)
		s.ActivityName = sch.ActivityName
		s.Days = sch.Days
		s.StartTime = sch.StartTime
		s.EndTime = sch.EndTime
		s.InstructorName = sch.InstructorName
	}
	return s
}

func hhmm(clock string) string {
	if len(clock) > 5 {
		return clock[:5]
	}
	return clock
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
