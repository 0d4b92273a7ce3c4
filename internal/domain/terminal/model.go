package terminal

import "errors"

// State is the terminal's lock state. The kiosk boots locked; a customer
// login or an admin unlock clears it, and logout always re-locks.
type State string

const (
	// StateLocked blocks everything except login, signup and the
	// admin escape hatch.
	StateLocked State = "locked"
	// StateUnlockedNoSession means an admin unlocked the terminal but no
	// customer is logged in.
	StateUnlockedNoSession State = "unlocked_no_session"
	// StateUnlockedUserSession means a customer session is live.
	StateUnlockedUserSession State = "unlocked_user_session"
)

// Domain errors
var (
	ErrNoSession = errors.New("no user is logged in")
)

// Terminal is the lock state machine for the single kiosk seat.
// CurrentUser is non-empty only in StateUnlockedUserSession.
type Terminal struct {
	State       State
	CurrentUser string
}

// New returns a terminal in its boot state: locked, nobody logged in.
func New() Terminal {
	return Terminal{State: StateLocked}
}

// IsLocked returns true while the terminal requires authentication.
// INVARIANT: Terminal fields are not mutated
func (t *Terminal) IsLocked() bool {
	return t.State == StateLocked
}

// BeginUserSession records a successful customer login. Login always clears
// the lock, whatever the prior state.
// PRE: username is non-empty
// POST: State is unlocked_user_session, CurrentUser set
func (t *Terminal) BeginUserSession(username string) {
	t.State = StateUnlockedUserSession
	t.CurrentUser = username
}

// AdminUnlock records a successful admin unlock. A live customer session is
// left untouched; otherwise the terminal moves to unlocked with no session.
// POST: State is not locked
func (t *Terminal) AdminUnlock() {
	if t.State == StateUnlockedUserSession {
		return
	}
	t.State = StateUnlockedNoSession
}

// EndSession clears the current user and re-locks the terminal from any
// state. Idempotent: logging out with nobody logged in still locks.
// POST: State is locked, CurrentUser empty
func (t *Terminal) EndSession() {
	t.State = StateLocked
	t.CurrentUser = ""
}
