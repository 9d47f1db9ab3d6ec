package game

import "sort"

// playerState is a registry entry: the connection plus everything the game
// knows about it.
type playerState struct {
	player   Player
	score    int
	isDrawer bool
}

// registry keeps the room's players in join order. Join order is load
// bearing: drawer rotation walks it round-robin. Only the room goroutine
// touches it.
type registry struct {
	states []*playerState
}

func (r *registry) add(p Player) *playerState {
	st := &playerState{player: p}
	r.states = append(r.states, st)
	return st
}

// remove deletes the player and reports its former join-order index.
// No-op when absent.
func (r *registry) remove(id string) (int, bool) {
	for i, st := range r.states {
		if st.player.ID() == id {
			r.states = append(r.states[:i], r.states[i+1:]...)
			return i, true
		}
	}
	return 0, false
}

func (r *registry) get(id string) *playerState {
	for _, st := range r.states {
		if st.player.ID() == id {
			return st
		}
	}
	return nil
}

func (r *registry) len() int {
	return len(r.states)
}

// byScore returns the display order: descending score, ties kept in join
// order so the listing is consistent between broadcasts.
func (r *registry) byScore() []*playerState {
	sorted := make([]*playerState, len(r.states))
	copy(sorted, r.states)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].score > sorted[j].score
	})
	return sorted
}

// setDrawer makes id the only player with the drawer flag.
func (r *registry) setDrawer(id string) *playerState {
	var drawer *playerState
	for _, st := range r.states {
		st.isDrawer = st.player.ID() == id
		if st.isDrawer {
			drawer = st
		}
	}
	return drawer
}

func (r *registry) clearDrawer() {
	for _, st := range r.states {
		st.isDrawer = false
	}
}
