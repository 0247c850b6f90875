package formservice

import (
	"context"
	"time"

	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/entity"
)

var _ output.ServicePort = (*MeetingSchedulerService)(nil)

const StartLayout = "2006-01-02T15:04:05"

type MeetingSchedulerService struct {
	hook output.WebhookPort
	url  string
}

func NewMeetingSchedulerService(hook output.WebhookPort, url string) *MeetingSchedulerService {
	return &MeetingSchedulerService{hook: hook, url: url}
}

func (s *MeetingSchedulerService) Descriptor() entity.Descriptor {
	return entity.Descriptor{
		ID:          entity.ServiceMeetingScheduler,
		DisplayName: "Meeting Scheduler",
		Description: "Books an online meeting through an automation webhook.",
		Icon:        "📅",
	}
}

func (s *MeetingSchedulerService) Fields() []entity.FieldSpec {
	return []entity.FieldSpec{
		{Name: "title", Label: "Meeting title", Kind: entity.FieldText, Required: true},
		{Name: "date", Label: "Date", Kind: entity.FieldDate, Required: true},
		{Name: "time", Label: "Start time", Kind: entity.FieldTime, Required: true},
		{
			Name: "duration", Label: "Duration (minutes)", Kind: entity.FieldInt,
			Min: entity.Bound(15), Max: entity.Bound(240), Step: 15, Default: "60",
		},
		{Name: "email", Label: "Email (optional)", Kind: entity.FieldEmail},
	}
}

func (s *MeetingSchedulerService) Execute(ctx context.Context, in entity.Input) entity.Outcome {
	v, verr := validate(s.Fields(), in)
	if verr != nil {
		return verr
	}

	out := postWebhook(ctx, s.hook, s.url, meetingPayload(v), "Meeting scheduled")
	if success, ok := out.(*entity.Success); ok && !success.Structured() {
		success.Message = "Meeting scheduled, but no meeting details were returned"
	}
	return out
}

func meetingPayload(v values) map[string]any {
	date, clock := v.clock("date"), v.clock("time")
	start := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)

	payload := map[string]any{
		"title":            v.str("title"),
		"start_datetime":   start.Format(StartLayout),
		"duration_minutes": v.integer("duration"),
	}
	if v.has("email") {
		payload["email"] = v.str("email")
	}
	return payload
}
