package domain

// Capability is the authorization level resolved by the authentication
// collaborator before a request reaches the core.
type Capability string

const (
	CapabilityOwner      Capability = "owner"
	CapabilityPrivileged Capability = "privileged"
)

// Actor identifies the caller of a core operation.
type Actor struct {
	UserID     string
	Capability Capability
}

func (a Actor) Privileged() bool {
	return a.Capability == CapabilityPrivileged
}

// CanAccess reports whether the actor may touch a resource owned by ownerID.
func (a Actor) CanAccess(ownerID string) bool {
	return a.Privileged() || a.UserID == ownerID
}
