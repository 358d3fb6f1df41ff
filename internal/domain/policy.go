package domain

// Permission is the closed set of grants understood by the policy engine.
// Call sites never compare raw permission strings; they go through
// Authorize.
// Permission 是策略引擎理解的封闭权限集合。
// 调用方绝不直接比较权限字符串，统一通过 Authorize。
type Permission string

const (
	PermissionViewAllRevisions   Permission = "view-all-revisions"
	PermissionEditEntities       Permission = "edit-entities"
	PermissionAdministerEntities Permission = "administer-entities"
	PermissionRevertAllRevisions Permission = "revert-all-revisions"
	PermissionDeleteAllRevisions Permission = "delete-all-revisions"
)

// Operation names a policy-guarded action on a record or its revisions
// Operation 命名受策略保护的记录或修订版本操作
type Operation string

const (
	OperationView           Operation = "view"
	OperationCreate         Operation = "create"
	OperationUpdate         Operation = "update"
	OperationDelete         Operation = "delete"
	OperationRevertRevision Operation = "revert-revision"
	OperationDeleteRevision Operation = "delete-revision"
)

// Decision is the tri-state outcome of a policy check. Neutral means the
// policy has no opinion; callers must resolve Neutral to an explicit deny.
// Decision 是策略检查的三态结果。Neutral 表示策略无意见；
// 调用方必须将 Neutral 解析为显式拒绝。
type Decision int

const (
	DecisionNeutral Decision = iota
	DecisionAllowed
	DecisionDenied
)

// Allowed reports whether the decision grants access; Neutral does not
// Allowed 报告该决定是否授予访问权限；Neutral 不授予
func (d Decision) Allowed() bool {
	return d == DecisionAllowed
}

// Actor is the acting user as seen by the policy engine: an identity plus
// a resolved permission set. It is always passed in explicitly, never read
// from ambient state.
// Actor 是策略引擎视角下的操作用户：身份加上已解析的权限集合。
// 始终显式传入，不读取环境全局状态。
type Actor struct {
	UID         int64
	permissions map[Permission]struct{}
}

// NewActor 创建携带权限集合的操作者
func NewActor(uid int64, perms ...Permission) Actor {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return Actor{UID: uid, permissions: set}
}

// ActorForRole 创建携带角色权限的操作者
func ActorForRole(uid int64, role Role) Actor {
	return NewActor(uid, role.Permissions()...)
}

func (a Actor) HasPermission(p Permission) bool {
	_, ok := a.permissions[p]
	return ok
}

// Role maps an account to a fixed permission set
// Role 将账号映射为固定的权限集合
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Permissions 返回角色授予的权限
func (r Role) Permissions() []Permission {
	switch r {
	case RoleAdmin:
		return []Permission{
			PermissionViewAllRevisions,
			PermissionEditEntities,
			PermissionAdministerEntities,
			PermissionRevertAllRevisions,
			PermissionDeleteAllRevisions,
		}
	case RoleEditor:
		return []Permission{
			PermissionViewAllRevisions,
			PermissionEditEntities,
			PermissionRevertAllRevisions,
		}
	case RoleViewer:
		return []Permission{
			PermissionViewAllRevisions,
		}
	}
	return nil
}

// RoleFromString 解析角色名称
func RoleFromString(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleEditor, RoleViewer:
		return Role(s), true
	}
	return "", false
}

// Authorize decides whether actor may perform op. record may be nil for
// operations that are not about one existing record (create). The function
// is pure: no I/O, no clock, safe for concurrent use.
// Authorize 判断操作者是否可以执行 op。对于不针对已有记录的操作（create），
// record 可以为 nil。该函数是纯函数：无 I/O、无时钟，可并发调用。
func Authorize(actor Actor, op Operation, record *Transaction) Decision {
	switch op {

	case OperationView:
		// view-all or edit grants view; so does owning the record
		// view-all 或 edit 授予查看权限；记录归属者同样可以查看
		if actor.HasPermission(PermissionViewAllRevisions) ||
			actor.HasPermission(PermissionEditEntities) {
			return DecisionAllowed
		}
		if record != nil && record.OwnerUID == actor.UID {
			return DecisionAllowed
		}
		return DecisionDenied

	case OperationCreate:
		return allowedIf(actor.HasPermission(PermissionAdministerEntities))

	case OperationUpdate:
		return allowedIf(actor.HasPermission(PermissionEditEntities))

	case OperationDelete:
		return allowedIf(actor.HasPermission(PermissionAdministerEntities))

	case OperationRevertRevision:
		return allowedIf(actor.HasPermission(PermissionRevertAllRevisions) ||
			actor.HasPermission(PermissionAdministerEntities))

	case OperationDeleteRevision:
		return allowedIf(actor.HasPermission(PermissionDeleteAllRevisions) ||
			actor.HasPermission(PermissionAdministerEntities))
	}

	// Unknown operation: no opinion
	// 未知操作：无意见
	return DecisionNeutral
}

func allowedIf(ok bool) Decision {
	if ok {
		return DecisionAllowed
	}
	return DecisionDenied
}
