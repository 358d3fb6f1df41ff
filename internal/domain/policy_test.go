package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize_PolicyTable(t *testing.T) {
	record := &Transaction{ID: 1, OwnerUID: 100}

	tests := []struct {
		name   string
		actor  Actor
		op     Operation
		record *Transaction
		want   Decision
	}{
		{
			name:  "view allowed with view-all permission",
			actor: NewActor(1, PermissionViewAllRevisions),
			op:    OperationView,
			want:  DecisionAllowed,
		},
		{
			name:  "view allowed with edit permission",
			actor: NewActor(1, PermissionEditEntities),
			op:    OperationView,
			want:  DecisionAllowed,
		},
		{
			name:   "view allowed for record owner without permissions",
			actor:  NewActor(100),
			op:     OperationView,
			record: record,
			want:   DecisionAllowed,
		},
		{
			name:   "view denied without permission and not owner",
			actor:  NewActor(1),
			op:     OperationView,
			record: record,
			want:   DecisionDenied,
		},
		{
			name:  "create requires administer",
			actor: NewActor(1, PermissionEditEntities),
			op:    OperationCreate,
			want:  DecisionDenied,
		},
		{
			name:  "create allowed with administer",
			actor: NewActor(1, PermissionAdministerEntities),
			op:    OperationCreate,
			want:  DecisionAllowed,
		},
		{
			name:  "update requires edit",
			actor: NewActor(1, PermissionViewAllRevisions),
			op:    OperationUpdate,
			want:  DecisionDenied,
		},
		{
			name:  "delete requires administer",
			actor: NewActor(1, PermissionEditEntities),
			op:    OperationDelete,
			want:  DecisionDenied,
		},
		{
			name:  "revert allowed with revert-all",
			actor: NewActor(1, PermissionRevertAllRevisions),
			op:    OperationRevertRevision,
			want:  DecisionAllowed,
		},
		{
			name:  "revert allowed with administer",
			actor: NewActor(1, PermissionAdministerEntities),
			op:    OperationRevertRevision,
			want:  DecisionAllowed,
		},
		{
			name:  "delete-revision allowed with delete-all",
			actor: NewActor(1, PermissionDeleteAllRevisions),
			op:    OperationDeleteRevision,
			want:  DecisionAllowed,
		},
		{
			name:  "delete-revision denied for editor permissions",
			actor: NewActor(1, PermissionEditEntities, PermissionRevertAllRevisions),
			op:    OperationDeleteRevision,
			want:  DecisionDenied,
		},
		{
			name:  "unknown operation is neutral",
			actor: NewActor(1, PermissionAdministerEntities),
			op:    Operation("publish"),
			want:  DecisionNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.actor, tt.op, tt.record)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecision_Allowed(t *testing.T) {
	assert.True(t, DecisionAllowed.Allowed())
	assert.False(t, DecisionDenied.Allowed())
	// Neutral never grants access on its own
	// Neutral 本身绝不授予访问权限
	assert.False(t, DecisionNeutral.Allowed())
}

func TestRolePermissions(t *testing.T) {
	admin := ActorForRole(1, RoleAdmin)
	for _, p := range []Permission{
		PermissionViewAllRevisions,
		PermissionEditEntities,
		PermissionAdministerEntities,
		PermissionRevertAllRevisions,
		PermissionDeleteAllRevisions,
	} {
		assert.True(t, admin.HasPermission(p), "admin should hold %s", p)
	}

	editor := ActorForRole(2, RoleEditor)
	assert.True(t, editor.HasPermission(PermissionEditEntities))
	assert.True(t, editor.HasPermission(PermissionRevertAllRevisions))
	assert.False(t, editor.HasPermission(PermissionAdministerEntities))
	assert.False(t, editor.HasPermission(PermissionDeleteAllRevisions))

	viewer := ActorForRole(3, RoleViewer)
	assert.True(t, viewer.HasPermission(PermissionViewAllRevisions))
	assert.False(t, viewer.HasPermission(PermissionEditEntities))

	_, ok := RoleFromString("manager")
	assert.False(t, ok)
}
