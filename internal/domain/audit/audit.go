package audit

import "time"

// Category represents the type of audit event.
type Category string

const (
	CategoryAccount  Category = "account"
	CategorySecurity Category = "security"
	CategoryCafe     Category = "cafe"
)

// Action represents the action that occurred.
type Action string

const (
	ActionSignup  Action = "signup"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionLogin   Action = "login"
	ActionLogout  Action = "logout"
	ActionUnlock  Action = "unlock"
	ActionOrder   Action = "order"
	ActionAssign  Action = "assign"
	ActionRelease Action = "release"
)

// Event records one account or security action for the admin trail.
// ActorID is a username or admin ID; ResourceID names what was acted on
// (a username, admin ID, slot number or menu code).
type Event struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Category   Category  `json:"category"`
	Action     Action    `json:"action"`
	ActorID    string    `json:"actor_id"`
	ResourceID string    `json:"resource_id"`
	Detail     string    `json:"detail"`
}
