package common

const (
	// CallerContextKey is the echo context key holding the authenticated identity.
	CallerContextKey = "Caller"

	RoutingKeyEventAdded    = "registry.event.added"
	RoutingKeyVoteSubmitted = "registry.vote.submitted"

	RegistryRowID = 1
)
