package syshttp

// Registry is the process-wide mapping from listener ids to their dispatchers,
// used to route completions arriving from the engine back to the right server.
// Ids are allocated monotonically and never reused for the registry's lifetime.
//
// An id is present iff its server is currently listening. All mutation happens on
// the single event-processing thread, at Listen and Close only, so no locking is
// involved. Construct one per test instead of sharing an ambient instance.
type Registry struct {
	nextID  int
	servers map[int]*Server
}

func NewRegistry() *Registry {
	return &Registry{
		nextID:  1,
		servers: make(map[int]*Server),
	}
}

// Lookup resolves a listener id to its server.
func (r *Registry) Lookup(id int) (*Server, bool) {
	server, found := r.servers[id]
	return server, found
}

// Len returns the number of currently listening servers.
func (r *Registry) Len() int {
	return len(r.servers)
}

func (r *Registry) add(s *Server) (id int) {
	id = r.nextID
	r.nextID++
	r.servers[id] = s

	return id
}

func (r *Registry) remove(id int) {
	delete(r.servers, id)
}
