package types

import "log/slog"

type (
	ProjectID    string
	APIKey       string
	RunID        string
	WebhookToken string
)

// Version is overwritten by ldflags at release build.
var Version = "dev"

// UserAgent is sent with every request to Crowdin.
func UserAgent() string {
	return "l10nsync/" + Version
}

func (x APIKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x APIKey) String() string {
	return "***********"
}

func (x WebhookToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}
