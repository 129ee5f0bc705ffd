package ports

// CredentialSource locates the gateway address and API key the statusline
// host is configured with. Both report false when unset.
type CredentialSource interface {
	BaseURL() (string, bool)
	APIKey() (string, bool)
}
