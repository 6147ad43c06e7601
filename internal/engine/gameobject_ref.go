package engine

// GameObjectRef is a non-owning handle to a GameObject by UID. The
// referenced object may leave the scene at any time; Get then returns nil
// and callers treat the reference as cleared.
type GameObjectRef struct {
	UID uint64 // 0 = none
}

// RefTo returns a handle for g, or an empty handle for nil.
func RefTo(g *GameObject) GameObjectRef {
	if g == nil {
		return GameObjectRef{}
	}
	return GameObjectRef{UID: g.UID}
}

// Get resolves the reference. Returns nil if the reference is empty or the
// GameObject is no longer in the scene.
func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}

// IsValid returns true if the reference points to something (UID != 0).
// Note: This doesn't check if the GameObject actually exists in the scene.
func (r GameObjectRef) IsValid() bool {
	return r.UID != 0
}

// Is reports whether the reference names g.
func (r GameObjectRef) Is(g *GameObject) bool {
	if g == nil {
		return r.UID == 0
	}
	return r.UID == g.UID
}

// Set sets the reference to point to the given GameObject.
// Pass nil to clear the reference.
func (r *GameObjectRef) Set(g *GameObject) {
	if g == nil {
		r.UID = 0
	} else {
		r.UID = g.UID
	}
}

// Clear clears the reference (sets UID to 0).
func (r *GameObjectRef) Clear() {
	r.UID = 0
}
