package ws

import "sync"

// FocusedUser is the presence entry broadcast to every connected client.
type FocusedUser struct {
	StartTime string `json:"start_time"`
	Username  string `json:"username"`
	TaskName  string `json:"task_name"`
}

// Registry is the concurrency-safe map of users currently in focus, keyed by
// user identificator. Entries have no expiry; they are removed by an explicit
// leave event or when the owning connection disconnects. Each entry remembers
// the connection that produced it, so a stale connection cannot tear down
// presence that a newer connection re-established.
type Registry struct {
	mu     sync.RWMutex
	users  map[string]FocusedUser
	owners map[string]*Client
}

func NewRegistry() *Registry {
	return &Registry{
		users:  make(map[string]FocusedUser),
		owners: make(map[string]*Client),
	}
}

// Enter inserts or overwrites the user's presence entry and reassigns its
// ownership to owner.
func (r *Registry) Enter(userID string, user FocusedUser, owner *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[userID] = user
	r.owners[userID] = owner
}

// Leave removes the entry regardless of ownership and reports whether it
// existed. Explicit leave events go through here.
func (r *Registry) Leave(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return false
	}

	delete(r.users, userID)
	delete(r.owners, userID)
	return true
}

// LeaveIfOwner removes the entry only if owner still owns it. Disconnect
// cleanup goes through here.
func (r *Registry) LeaveIfOwner(userID string, owner *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return false
	}

	if r.owners[userID] != owner {
		return false
	}

	delete(r.users, userID)
	delete(r.owners, userID)
	return true
}

// Snapshot copies the current map so callers never hold the lock while
// serializing.
func (r *Registry) Snapshot() map[string]FocusedUser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[string]FocusedUser, len(r.users))
	for id, user := range r.users {
		snapshot[id] = user
	}

	return snapshot
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
