package tracker

import "github.com/Jyotindra-21/cartelpowersystem25-sub002/pkg/useragent"

// Classifier turns a raw user-agent string into the client facts stored on a
// visitor record. Implementations must be deterministic and must degrade to
// "unknown" values rather than fail; a mainstream browser must never be
// classified as a bot.
type Classifier interface {
	Classify(userAgent string) ClientInfo
}

// uaClassifier is the default classifier backed by the in-tree user-agent
// parser.
type uaClassifier struct{}

// NewClassifier returns the default user-agent classifier.
func NewClassifier() Classifier {
	return uaClassifier{}
}

func (uaClassifier) Classify(ua string) ClientInfo {
	parsed := useragent.Parse(ua)

	return ClientInfo{
		Browser: Software{Name: parsed.Browser.Name, Version: parsed.Browser.Version},
		OS:      Software{Name: parsed.OS.Name, Version: parsed.OS.Version},
		Type:    parsed.DeviceType,
		IsBot:   parsed.Bot,
	}
}
