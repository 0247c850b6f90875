package entity

type ServiceID string

const (
	ServiceTextGeneration    ServiceID = "text-generation"
	ServiceImageCaption      ServiceID = "image-caption"
	ServiceSentimentAnalysis ServiceID = "sentiment-analysis"
	ServiceMeetingScheduler  ServiceID = "meeting-scheduler"
	ServiceVideoSummary      ServiceID = "video-summary"
	ServiceSocialPost        ServiceID = "social-post"
)

func (id ServiceID) String() string {
	return string(id)
}

// Descriptor is the display identity of a registered service.
type Descriptor struct {
	ID          ServiceID `json:"id"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

func (d Descriptor) Title() string {
	if d.Icon == "" {
		return d.DisplayName
	}
	return d.Icon + " " + d.DisplayName
}
