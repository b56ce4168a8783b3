package domain

// PodIdentity is what the page reports about where it was rendered.
type PodIdentity struct {
	// Hostname is the OS hostname of the serving process (the pod name
	// under Kubernetes).
	Hostname string
	// NodeName is the configured NODE_NAME, verbatim.
	NodeName string
}
