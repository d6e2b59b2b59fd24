package assignment

import (
	"testing"

	"backdesk-service/internal/domain/assignment"
	"backdesk-service/internal/domain/assistant"

	"github.com/stretchr/testify/assert"
)

func TestCheckTransitionGrid(t *testing.T) {
	p := NewDefaultPolicy()

	tests := []struct {
		name    string
		role    string
		action  assignment.Action
		allowed bool
		reason  string
	}{
		{"assistant claims", assistant.RoleAssistant, assignment.ActionClaim, true, ""},
		{"admin cannot claim", assistant.RoleAdmin, assignment.ActionClaim, false, ReasonRoleNotPermitted},
		{"customer cannot claim", assistant.RoleCustomer, assignment.ActionClaim, false, ReasonRoleNotPermitted},

		{"admin assigns", assistant.RoleAdmin, assignment.ActionAssign, true, ""},
		{"supervisor cannot assign", assistant.RoleSupervisor, assignment.ActionAssign, false, ReasonInsufficientPrivilege},
		{"assistant cannot assign", assistant.RoleAssistant, assignment.ActionAssign, false, ReasonInsufficientPrivilege},

		{"supervisor reassigns", assistant.RoleSupervisor, assignment.ActionReassign, true, ""},
		{"manager reassigns", assistant.RoleManager, assignment.ActionReassign, true, ""},
		{"admin reassigns", assistant.RoleAdmin, assignment.ActionReassign, true, ""},
		{"assistant cannot reassign", assistant.RoleAssistant, assignment.ActionReassign, false, ReasonInsufficientPrivilege},

		{"manager transfers", assistant.RoleManager, assignment.ActionTransfer, true, ""},
		{"customer cannot transfer", assistant.RoleCustomer, assignment.ActionTransfer, false, ReasonInsufficientPrivilege},

		{"supervisor unassigns", assistant.RoleSupervisor, assignment.ActionUnassign, true, ""},
		{"assistant cannot unassign", assistant.RoleAssistant, assignment.ActionUnassign, false, ReasonInsufficientPrivilege},

		{"unknown role denied", "intern", assignment.ActionClaim, false, ReasonRoleNotPermitted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := p.CheckTransition(tt.role, tt.action)
			assert.Equal(t, tt.allowed, d.Allowed)
			if !tt.allowed {
				assert.Equal(t, tt.reason, d.Reason)
			}
		})
	}
}

func TestCheckRead(t *testing.T) {
	p := NewDefaultPolicy()

	d := p.CheckRead(assistant.RoleAdmin, false)
	assert.True(t, d.Allowed)

	d = p.CheckRead(assistant.RoleAssistant, true)
	assert.True(t, d.Allowed)

	d = p.CheckRead(assistant.RoleAssistant, false)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNotResourceOwner, d.Reason)

	d = p.CheckRead(assistant.RoleCustomer, true)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonRoleNotPermitted, d.Reason)
}

func TestCheckUpdate(t *testing.T) {
	p := NewDefaultPolicy()

	assert.True(t, p.CheckUpdate(assistant.RoleAdmin, false).Allowed)
	assert.True(t, p.CheckUpdate(assistant.RoleAssistant, true).Allowed)

	d := p.CheckUpdate(assistant.RoleAssistant, false)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNotResourceOwner, d.Reason)
}

func TestCheckHistory(t *testing.T) {
	p := NewDefaultPolicy()

	assert.True(t, p.CheckHistory(assistant.RoleAdmin).Allowed)
	assert.True(t, p.CheckHistory(assistant.RoleSupervisor).Allowed)
	assert.True(t, p.CheckHistory(assistant.RoleManager).Allowed)
	assert.False(t, p.CheckHistory(assistant.RoleAssistant).Allowed)
}

func TestCustomGrants(t *testing.T) {
	p := NewPolicy(map[string][]string{
		"auditor": {PermReadAny},
	})

	assert.True(t, p.CheckRead("auditor", false).Allowed)
	assert.False(t, p.CheckTransition("auditor", assignment.ActionAssign).Allowed)
}
