package domain

// Action is a guarded operation in the access control policy.
type Action string

const (
	ActionCreateOrder    Action = "order:create"
	ActionUpdateOrder    Action = "order:update"
	ActionDeleteOrder    Action = "order:delete"
	ActionDecideApproval Action = "order:decide"

	ActionUploadInitialPattern Action = "pattern:upload:initial"
	ActionUploadCheckedPattern Action = "pattern:upload:checked"
	ActionDeletePattern        Action = "pattern:delete"

	ActionManageUsers     Action = "user:manage"
	ActionAttachChatImage Action = "chat:attach-image"
)

// policy is the single source of truth for role-based authorization.
// Every guarded operation consults this table and nothing else.
var policy = map[Action][]Role{
	ActionCreateOrder:    {RoleAdmin, RoleOrderUploader},
	ActionUpdateOrder:    {RoleAdmin, RoleOrderUploader},
	ActionDeleteOrder:    {RoleAdmin},
	ActionDecideApproval: {RoleAdmin, RolePatternChecker},

	ActionUploadInitialPattern: {RoleAdmin, RolePatternMaker},
	ActionUploadCheckedPattern: {RoleAdmin, RolePatternChecker},
	ActionDeletePattern:        {RoleAdmin},

	ActionManageUsers:     {RoleAdmin},
	ActionAttachChatImage: {RoleAdmin, RolePatternMaker, RolePatternChecker},
}

// Can reports whether the role is allowed to perform the action.
func (r Role) Can(a Action) bool {
	for _, allowed := range policy[a] {
		if r == allowed {
			return true
		}
	}
	return false
}

// UploadAction maps a review stage to the action guarding uploads into it.
// The stage must already be validated.
func UploadAction(s Stage) Action {
	if s == StageInitial {
		return ActionUploadInitialPattern
	}
	return ActionUploadCheckedPattern
}
