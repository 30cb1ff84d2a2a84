package domain

type Project struct {
	ID            string
	Name          string
	WebhookURL    string
	WebhookSecret string
	LiveAPIKey    string
	SandboxAPIKey string
	Credentials   DarajaCredentials
}

// ProjectStore is the external credentials store. Keys are environment-scoped, so
// resolving one also fixes the environment of every transaction it creates.
type ProjectStore interface {
	ResolveAPIKey(apiKey string) (*Project, Environment, error)
	GetProjectByID(projectID string) (*Project, error)
}
