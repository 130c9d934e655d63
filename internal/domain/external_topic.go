package domain

import "time"

// ExternalTopic is an externally hosted learning resource advertised to
// a company's users. Title and URL are both optional.
type ExternalTopic struct {
	ID        string
	CompanyID string
	Title     *string
	URL       *string
	IsActive  bool
	CreatedAt time.Time
}

// DisplayTitle returns the topic title or a placeholder when unset.
func (t ExternalTopic) DisplayTitle() string {
	if t.Title == nil || *t.Title == "" {
		return "No Topic"
	}
	return *t.Title
}
