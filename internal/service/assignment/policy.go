// internal/service/assignment/policy.go
package assignment

import (
	"backdesk-service/internal/domain/assignment"
	"backdesk-service/internal/domain/assistant"
)

// Permission tokens consulted by the policy. Roles map to token sets in a
// closed table loaded once at startup; the policy itself never branches on
// role names.
const (
	PermClaim           = "customer:claim"
	PermAssign          = "customer:assign"
	PermReassign        = "customer:reassign"
	PermTransfer        = "customer:transfer"
	PermUnassign        = "customer:unassign"
	PermReadAny         = "customer:read-any"
	PermReadOwn         = "customer:read-own"
	PermUpdateAny       = "customer:update-any"
	PermUpdateOwn       = "customer:update-own"
	PermReceiveTransfer = "customer:receive-transfer"
)

// Denial reasons surfaced alongside a Forbidden result.
const (
	ReasonRoleNotPermitted      = "RoleNotPermitted"
	ReasonInsufficientPrivilege = "InsufficientPrivilege"
	ReasonNotResourceOwner      = "NotResourceOwner"
)

// Decision is the outcome of a policy check. Never an error: denials are
// values so the façade can format a 403 uniformly.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

// Policy evaluates (role, action, resource ownership) against a static
// role→permission-token table.
type Policy struct {
	grants map[string]map[string]bool
}

// DefaultGrants is the closed role/permission table. Claim is the assistant's
// self-service path; direct assign is admin-only; unassign, reassign and
// transfer belong to supervisors, managers and admins.
func DefaultGrants() map[string][]string {
	return map[string][]string{
		assistant.RoleAdmin: {
			PermAssign, PermReassign, PermTransfer, PermUnassign,
			PermReadAny, PermUpdateAny,
		},
		assistant.RoleSupervisor: {
			PermReassign, PermTransfer, PermUnassign,
		},
		assistant.RoleManager: {
			PermReassign, PermTransfer, PermUnassign,
		},
		assistant.RoleAssistant: {
			PermClaim, PermReadOwn, PermUpdateOwn, PermReceiveTransfer,
		},
	}
}

// NewPolicy builds a policy from a role→token table.
func NewPolicy(grants map[string][]string) *Policy {
	p := &Policy{grants: make(map[string]map[string]bool, len(grants))}
	for role, tokens := range grants {
		set := make(map[string]bool, len(tokens))
		for _, t := range tokens {
			set[t] = true
		}
		p.grants[role] = set
	}
	return p
}

// NewDefaultPolicy builds the policy over DefaultGrants.
func NewDefaultPolicy() *Policy {
	return NewPolicy(DefaultGrants())
}

func (p *Policy) has(role, token string) bool {
	return p.grants[role][token]
}

// CheckTransition decides whether a role may request the given transition.
// The active-account requirement for claim is checked separately against the
// directory; this function is pure.
func (p *Policy) CheckTransition(role string, action assignment.Action) Decision {
	switch action {
	case assignment.ActionClaim:
		if p.has(role, PermClaim) {
			return allow()
		}
		return deny(ReasonRoleNotPermitted)
	case assignment.ActionUnassign:
		if p.has(role, PermUnassign) {
			return allow()
		}
		return deny(ReasonInsufficientPrivilege)
	case assignment.ActionTransfer:
		if p.has(role, PermTransfer) {
			return allow()
		}
		return deny(ReasonInsufficientPrivilege)
	case assignment.ActionReassign:
		if p.has(role, PermReassign) {
			return allow()
		}
		return deny(ReasonInsufficientPrivilege)
	case assignment.ActionAssign:
		if p.has(role, PermAssign) {
			return allow()
		}
		return deny(ReasonInsufficientPrivilege)
	}
	return deny(ReasonRoleNotPermitted)
}

// CheckRead decides read access to a customer-scoped record. Admins read
// anything; assistants read only customers they own.
func (p *Policy) CheckRead(role string, isResourceOwner bool) Decision {
	if p.has(role, PermReadAny) {
		return allow()
	}
	if p.has(role, PermReadOwn) {
		if isResourceOwner {
			return allow()
		}
		return deny(ReasonNotResourceOwner)
	}
	return deny(ReasonRoleNotPermitted)
}

// CheckUpdate decides update access to a customer-scoped record.
func (p *Policy) CheckUpdate(role string, isResourceOwner bool) Decision {
	if p.has(role, PermUpdateAny) {
		return allow()
	}
	if p.has(role, PermUpdateOwn) {
		if isResourceOwner {
			return allow()
		}
		return deny(ReasonNotResourceOwner)
	}
	return deny(ReasonRoleNotPermitted)
}

// CheckHistory decides access to the cross-customer audit query surface.
func (p *Policy) CheckHistory(role string) Decision {
	if p.has(role, PermReassign) || p.has(role, PermReadAny) {
		return allow()
	}
	return deny(ReasonInsufficientPrivilege)
}
