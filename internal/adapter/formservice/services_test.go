package formservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hookURL = "https://hooks.example.test/abc"

var models = []string{"gpt-4", "gpt-3.5-turbo"}

func meetingInput() entity.Input {
	return entity.NewInput(map[string]string{
		"title":    "Sync",
		"date":     "2025-06-01",
		"time":     "10:00",
		"duration": "60",
	})
}

func TestAllServices_MissingRequiredFieldMakesNoCall(t *testing.T) {
	llm := &fakeLLM{response: "unused"}
	hook := &fakeWebhook{}
	norm := &fakeNormalizer{}
	capt := &fakeCaptioner{}

	tests := []struct {
		svc   output.ServicePort
		field string
	}{
		{NewTextGenerationService(llm, "sys", models, "gpt-3.5-turbo"), "prompt"},
		{NewSentimentAnalysisService(llm, "sys", "gpt-3.5-turbo"), "text"},
		{NewImageCaptionService(norm, capt), "image"},
		{NewMeetingSchedulerService(hook, hookURL), "title"},
		{NewVideoSummaryService(hook, hookURL), "youtube_url"},
		{NewSocialPostService(hook, hookURL), "keyword"},
	}

	for _, tt := range tests {
		t.Run(string(tt.svc.Descriptor().ID), func(t *testing.T) {
			out := tt.svc.Execute(context.Background(), entity.NewInput(nil))

			verr, ok := out.(*entity.ValidationError)
			require.True(t, ok, "expected validation error, got %T", out)
			assert.Equal(t, tt.field, verr.Field)
			assert.Contains(t, verr.Message, tt.field)
		})
	}

	assert.Zero(t, llm.calls)
	assert.Zero(t, hook.calls)
	assert.Zero(t, norm.calls)
	assert.Zero(t, capt.calls)
}

func TestTextGeneration_BuildsCompletionRequest(t *testing.T) {
	llm := &fakeLLM{response: "# Title\n\nGenerated body"}
	svc := NewTextGenerationService(llm, "You are a helpful assistant.", models, "gpt-3.5-turbo")

	out := svc.Execute(context.Background(), entity.NewInput(map[string]string{"prompt": "Write a haiku"}))

	success, ok := out.(*entity.Success)
	require.True(t, ok)
	assert.Equal(t, entity.ContentTypePlain, success.ContentType)
	assert.Equal(t, "# Title\n\nGenerated body", success.Raw)

	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, "gpt-3.5-turbo", llm.lastReq.Model)
	assert.Equal(t, 500, llm.lastReq.MaxTokens)
	require.Len(t, llm.lastReq.Messages, 2)
	assert.Equal(t, entity.RoleSystem, llm.lastReq.Messages[0].Role)
	assert.Equal(t, entity.Message{Role: entity.RoleUser, Content: "Write a haiku"}, llm.lastReq.Messages[1])
}

func TestTextGeneration_TokenBounds(t *testing.T) {
	llm := &fakeLLM{response: "ok"}
	svc := NewTextGenerationService(llm, "sys", models, "gpt-3.5-turbo")

	for _, n := range []string{"49", "2001"} {
		out := svc.Execute(context.Background(), entity.NewInput(map[string]string{"prompt": "p", "max_tokens": n}))
		verr, ok := out.(*entity.ValidationError)
		require.True(t, ok)
		assert.Equal(t, "max_tokens", verr.Field)
	}
	assert.Zero(t, llm.calls)

	out := svc.Execute(context.Background(), entity.NewInput(map[string]string{"prompt": "p", "max_tokens": "2000", "model": "gpt-4"}))
	require.IsType(t, &entity.Success{}, out)
	assert.Equal(t, 2000, llm.lastReq.MaxTokens)
	assert.Equal(t, "gpt-4", llm.lastReq.Model)
}

func TestTextGeneration_TransportFailure(t *testing.T) {
	llm := &fakeLLM{err: &entity.TransportError{StatusCode: 429, Message: "rate limited", RawBody: "slow down"}}
	svc := NewTextGenerationService(llm, "sys", models, "gpt-3.5-turbo")

	out := svc.Execute(context.Background(), entity.NewInput(map[string]string{"prompt": "p"}))

	terr, ok := out.(*entity.TransportError)
	require.True(t, ok)
	assert.Equal(t, 429, terr.StatusCode)
	assert.Equal(t, "slow down", terr.RawBody)
}

func TestSentiment_StructuredResponse(t *testing.T) {
	llm := &fakeLLM{response: `{"score": 7, "sentiment": "Positive", "explanation": "upbeat tone"}`}
	svc := NewSentimentAnalysisService(llm, "sys", "gpt-3.5-turbo")

	out := svc.Execute(context.Background(), entity.NewInput(map[string]string{"text": "I love this"}))

	success, ok := out.(*entity.Success)
	require.True(t, ok)
	assert.True(t, success.Structured())
	assert.Equal(t, "positive", success.Fields["sentiment"])
	assert.Equal(t, 7.0, success.Fields["score"])
	assert.Equal(t, "upbeat tone", success.Fields["explanation"])
	assert.Equal(t, "gpt-3.5-turbo", llm.lastReq.Model)
	assert.Zero(t, llm.lastReq.MaxTokens)
}

func TestSentiment_DefaultsAndClamping(t *testing.T) {
	llm := &fakeLLM{response: "Here you go:\n```json\n{\"score\": 42}\n```"}
	svc := NewSentimentAnalysisService(llm, "sys", "gpt-3.5-turbo")

	out := svc.Execute(context.Background(), entity.NewInput(map[string]string{"text": "meh"}))

	success := out.(*entity.Success)
	assert.Equal(t, SentimentNeutral, success.Fields["sentiment"])
	assert.Equal(t, 10.0, success.Fields["score"])
	assert.Equal(t, defaultSentimentExplain, success.Fields["explanation"])
}

func TestSentiment_UnparseableFallsBackToRawText(t *testing.T) {
	llm := &fakeLLM{response: "The text feels mostly positive."}
	svc := NewSentimentAnalysisService(llm, "sys", "gpt-3.5-turbo")

	out := svc.Execute(context.Background(), entity.NewInput(map[string]string{"text": "nice"}))

	success, ok := out.(*entity.Success)
	require.True(t, ok)
	assert.Equal(t, entity.ContentTypePlain, success.ContentType)
	assert.Equal(t, "The text feels mostly positive.", success.Raw)
	assert.Nil(t, success.Fields)
}

func TestImageCaption_Success(t *testing.T) {
	norm := &fakeNormalizer{}
	capt := &fakeCaptioner{caption: "A quiet forest."}
	svc := NewImageCaptionService(norm, capt)

	in := entity.NewInput(nil)
	in.Files["image"] = []byte("fake-bytes")
	out := svc.Execute(context.Background(), in)

	success, ok := out.(*entity.Success)
	require.True(t, ok)
	assert.Equal(t, "A quiet forest.", success.Raw)
	assert.Equal(t, 1, norm.calls)
	assert.Equal(t, 1, capt.calls)
}

func TestImageCaption_UnsupportedImageIsValidationError(t *testing.T) {
	norm := &fakeNormalizer{err: errors.New("unsupported image type image/gif")}
	capt := &fakeCaptioner{}
	svc := NewImageCaptionService(norm, capt)

	in := entity.NewInput(nil)
	in.Files["image"] = []byte("GIF89a")
	out := svc.Execute(context.Background(), in)

	verr, ok := out.(*entity.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "image", verr.Field)
	assert.Zero(t, capt.calls)
}

func TestImageCaption_CaptionerFailure(t *testing.T) {
	capt := &fakeCaptioner{err: errNetwork}
	svc := NewImageCaptionService(&fakeNormalizer{}, capt)

	in := entity.NewInput(nil)
	in.Files["image"] = []byte("x")
	out := svc.Execute(context.Background(), in)

	terr, ok := out.(*entity.TransportError)
	require.True(t, ok)
	assert.Zero(t, terr.StatusCode)
	assert.Contains(t, terr.Message, "connection refused")
}

func TestMeeting_EndToEndSuccess(t *testing.T) {
	hook := &fakeWebhook{status: 200, contentType: "application/json", body: `{"join_url":"https://x"}`}
	svc := NewMeetingSchedulerService(hook, hookURL)

	out := svc.Execute(context.Background(), meetingInput())

	assert.Equal(t, hookURL, hook.lastURL)
	assert.Equal(t, map[string]any{
		"title":            "Sync",
		"start_datetime":   "2025-06-01T10:00:00",
		"duration_minutes": 60,
	}, hook.lastPayload)

	success, ok := out.(*entity.Success)
	require.True(t, ok)
	joinURL, ok := success.StringField("join_url")
	require.True(t, ok)
	assert.Equal(t, "https://x", joinURL)
	assert.Equal(t, "Meeting scheduled", success.Message)
}

func TestMeeting_OptionalEmailIncludedOnlyWhenGiven(t *testing.T) {
	hook := &fakeWebhook{body: "{}"}
	svc := NewMeetingSchedulerService(hook, hookURL)

	in := meetingInput()
	in.Values["email"] = "  "
	svc.Execute(context.Background(), in)
	assert.NotContains(t, hook.lastPayload, "email")

	in.Values["email"] = "team@example.com"
	svc.Execute(context.Background(), in)
	assert.Equal(t, "team@example.com", hook.lastPayload["email"])
}

func TestMeeting_DurationBounds(t *testing.T) {
	hook := &fakeWebhook{}
	svc := NewMeetingSchedulerService(hook, hookURL)

	for _, d := range []string{"14", "241", "abc"} {
		in := meetingInput()
		in.Values["duration"] = d
		out := svc.Execute(context.Background(), in)
		verr, ok := out.(*entity.ValidationError)
		require.True(t, ok, d)
		assert.Equal(t, "duration", verr.Field)
	}
	assert.Zero(t, hook.calls)
}

func TestMeeting_NonJSONReplyStillSucceeds(t *testing.T) {
	hook := &fakeWebhook{body: "Accepted"}
	svc := NewMeetingSchedulerService(hook, hookURL)

	out := svc.Execute(context.Background(), meetingInput())

	success, ok := out.(*entity.Success)
	require.True(t, ok)
	assert.Equal(t, entity.ContentTypePlain, success.ContentType)
	assert.Contains(t, success.Message, "no meeting details")
}

func TestMeeting_ServerErrorIsTransportError(t *testing.T) {
	hook := &fakeWebhook{status: 500, body: "server error"}
	svc := NewMeetingSchedulerService(hook, hookURL)

	out := svc.Execute(context.Background(), meetingInput())

	terr, ok := out.(*entity.TransportError)
	require.True(t, ok)
	assert.Equal(t, 500, terr.StatusCode)
	assert.Equal(t, "server error", terr.RawBody)
	assert.Equal(t, 1, hook.calls)
}

func TestWebhookServices_OnlyStatus200IsAccepted(t *testing.T) {
	hook := &fakeWebhook{status: 202, body: `{"queued":true}`}
	svc := NewSocialPostService(hook, hookURL)

	out := svc.Execute(context.Background(), entity.NewInput(map[string]string{"keyword": "go"}))

	terr, ok := out.(*entity.TransportError)
	require.True(t, ok)
	assert.Equal(t, 202, terr.StatusCode)
}

func TestWebhookServices_NetworkFailure(t *testing.T) {
	hook := &fakeWebhook{err: errNetwork}
	svc := NewVideoSummaryService(hook, hookURL)

	out := svc.Execute(context.Background(), entity.NewInput(map[string]string{"youtube_url": "https://youtu.be/dQw4w9WgXcQ"}))

	terr, ok := out.(*entity.TransportError)
	require.True(t, ok)
	assert.Zero(t, terr.StatusCode)
	assert.Equal(t, 1, hook.calls)
}

func TestWebhookServices_EchoRoundTrip(t *testing.T) {
	withEmail := meetingInput()
	withEmail.Values["email"] = "a@example.com"

	meeting := func(h output.WebhookPort) output.ServicePort { return NewMeetingSchedulerService(h, hookURL) }

	tests := []struct {
		name   string
		newSvc func(output.WebhookPort) output.ServicePort
		in     entity.Input
	}{
		{"meeting", meeting, meetingInput()},
		{"meeting with email", meeting, withEmail},
		{
			"video",
			func(h output.WebhookPort) output.ServicePort { return NewVideoSummaryService(h, hookURL) },
			entity.NewInput(map[string]string{"youtube_url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}),
		},
		{
			"social",
			func(h output.WebhookPort) output.ServicePort { return NewSocialPostService(h, hookURL) },
			entity.NewInput(map[string]string{"keyword": "gopher"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook := &fakeWebhook{echo: true}
			svc := tt.newSvc(hook)

			out := svc.Execute(context.Background(), tt.in)

			success, ok := out.(*entity.Success)
			require.True(t, ok)
			require.True(t, success.Structured())
			assert.Equal(t, hook.lastPayload, success.Sent)
			require.Len(t, success.Fields, len(hook.lastPayload))
			for k, want := range hook.lastPayload {
				assert.Equal(t, fmt.Sprint(want), fmt.Sprint(success.Fields[k]), k)
			}

			sent, err := json.Marshal(hook.lastPayload)
			require.NoError(t, err)
			assert.JSONEq(t, string(sent), success.Raw)
		})
	}
}

func TestVideoSummary_URLValidation(t *testing.T) {
	hook := &fakeWebhook{body: "ok"}
	svc := NewVideoSummaryService(hook, hookURL)

	valid := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"http://youtube.com/watch?v=dQw4w9WgXcQ&t=10",
		"youtu.be/dQw4w9WgXcQ",
	}
	for _, u := range valid {
		out := svc.Execute(context.Background(), entity.NewInput(map[string]string{"youtube_url": u}))
		assert.IsType(t, &entity.Success{}, out, u)
		assert.Equal(t, map[string]any{"youtubeURL": u}, hook.lastPayload)
	}

	invalid := []string{
		"https://vimeo.com/12345",
		"https://www.youtube.com/watch?v=short",
		"see https://youtu.be/dQw4w9WgXcQ",
	}
	for _, u := range invalid {
		out := svc.Execute(context.Background(), entity.NewInput(map[string]string{"youtube_url": u}))
		verr, ok := out.(*entity.ValidationError)
		require.True(t, ok, u)
		assert.Equal(t, "youtube_url", verr.Field)
	}
	assert.Equal(t, len(valid), hook.calls)
}

func TestVideoSummary_HTMLReply(t *testing.T) {
	page := "<!DOCTYPE html><html><body><h1>Summary</h1></body></html>"
	hook := &fakeWebhook{body: page, contentType: "text/plain"}
	svc := NewVideoSummaryService(hook, hookURL)

	out := svc.Execute(context.Background(), entity.NewInput(map[string]string{"youtube_url": "https://youtu.be/dQw4w9WgXcQ"}))

	success, ok := out.(*entity.Success)
	require.True(t, ok)
	assert.Equal(t, entity.ContentTypeHTML, success.ContentType)
	assert.Equal(t, page, success.Raw)
}

func TestSocialPost_EchoesSentPayload(t *testing.T) {
	hook := &fakeWebhook{body: "plain text"}
	svc := NewSocialPostService(hook, hookURL)

	out := svc.Execute(context.Background(), entity.NewInput(map[string]string{"keyword": "  spring sale "}))

	success, ok := out.(*entity.Success)
	require.True(t, ok)
	assert.Equal(t, entity.ContentTypePlain, success.ContentType)
	assert.Equal(t, map[string]any{"keyword": "spring sale"}, success.Sent)
}
