// Package constants holds shared domain-level constants.
package constants

const (
	// EnvDevelop marks the local development environment.
	EnvDevelop = "develop"

	// PubSubProviderLocal publishes enrichment events over local HTTP push.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle publishes enrichment events to Google Pub/Sub.
	PubSubProviderGoogle = "google"
)
