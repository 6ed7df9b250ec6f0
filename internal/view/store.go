package view

// View is a named text container holding the captured output of its
// generating program. The content is logically read-only to the user;
// only Execute and Columnify replace it.
type View struct {
	Name    string
	State   *State
	content string
}

// Content returns the view's current text.
func (v *View) Content() string {
	return v.content
}

// setContent replaces the view's text wholesale. Callers are expected to
// reposition any display cursor at the start afterwards; the store keeps
// no cursor of its own.
func (v *View) setContent(text string) {
	v.content = text
}

// Store tracks the live views by display name. It is not safe for
// concurrent use; all mutation happens on the single interactive thread.
type Store struct {
	byName map[string]*View
	order  []string
}

// NewStore creates an empty view store.
func NewStore() *Store {
	return &Store{byName: make(map[string]*View)}
}

// Exists reports whether a view with the given name is live.
func (st *Store) Exists(name string) bool {
	_, ok := st.byName[name]
	return ok
}

// Get returns the named view.
func (st *Store) Get(name string) (*View, bool) {
	v, ok := st.byName[name]
	return v, ok
}

// Obtain returns the named view, creating it if necessary.
func (st *Store) Obtain(name string) *View {
	if v, ok := st.byName[name]; ok {
		return v
	}
	v := &View{Name: name}
	st.byName[name] = v
	st.order = append(st.order, name)
	return v
}

// Rename changes a view's display name. Renaming a view to its current
// name is a no-op, which makes the refresh operation's rename idempotent.
// When another view already holds newName it is closed and the renamed
// view takes over the name; the two necessarily describe the same
// (program, files) pair, since distinct pairs derive distinct names.
func (st *Store) Rename(oldName, newName string) {
	if oldName == newName {
		return
	}
	v, ok := st.byName[oldName]
	if !ok {
		return
	}
	if _, taken := st.byName[newName]; taken {
		st.Close(newName)
	}
	delete(st.byName, oldName)
	v.Name = newName
	st.byName[newName] = v
	for i, n := range st.order {
		if n == oldName {
			st.order[i] = newName
			break
		}
	}
}

// Close removes a view from the store, destroying its state.
func (st *Store) Close(name string) {
	if _, ok := st.byName[name]; !ok {
		return
	}
	delete(st.byName, name)
	for i, n := range st.order {
		if n == name {
			st.order = append(st.order[:i], st.order[i+1:]...)
			break
		}
	}
}

// Names returns the live view names in creation order.
func (st *Store) Names() []string {
	return append([]string(nil), st.order...)
}

// Len returns the number of live views.
func (st *Store) Len() int {
	return len(st.order)
}
