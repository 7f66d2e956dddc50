package models

import "fmt"

// Collection is the ordered set of server configurations. Order is display
// order; lookups go through the id index.
type Collection struct {
	servers []*ServerConfig
	index   map[string]int
	created int
}

func NewCollection() *Collection {
	return &Collection{index: make(map[string]int)}
}

func (c *Collection) Len() int {
	return len(c.servers)
}

// Servers returns the configurations in display order. Callers must not
// mutate the returned entries.
func (c *Collection) Servers() []*ServerConfig {
	return c.servers
}

func (c *Collection) Get(id string) (*ServerConfig, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.servers[i], true
}

// Append adds a server at the end of the display order.
func (c *Collection) Append(server *ServerConfig) error {
	if server.ID == "" {
		return fmt.Errorf("server has no id")
	}
	if _, exists := c.index[server.ID]; exists {
		return fmt.Errorf("duplicate server id '%s'", server.ID)
	}
	c.index[server.ID] = len(c.servers)
	c.servers = append(c.servers, server)
	c.created++
	return nil
}

// Replace swaps the record stored under the id. The id itself is immutable.
func (c *Collection) Replace(id string, server *ServerConfig) error {
	i, ok := c.index[id]
	if !ok {
		return fmt.Errorf("server '%s' not found", id)
	}
	server.ID = id
	c.servers[i] = server
	return nil
}

// Remove deletes the record and closes the gap in display order.
func (c *Collection) Remove(id string) error {
	i, ok := c.index[id]
	if !ok {
		return fmt.Errorf("server '%s' not found", id)
	}
	c.servers = append(c.servers[:i], c.servers[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.servers); j++ {
		c.index[c.servers[j].ID] = j
	}
	return nil
}

// Clone returns a shallow copy of the collection: the order and index are
// copied, the ServerConfig pointers are shared.
func (c *Collection) Clone() *Collection {
	clone := &Collection{
		servers: make([]*ServerConfig, len(c.servers)),
		index:   make(map[string]int, len(c.index)),
		created: c.created,
	}
	copy(clone.servers, c.servers)
	for id, i := range c.index {
		clone.index[id] = i
	}
	return clone
}

// NextID derives a fresh id from the running insertion count. Removals do not
// decrement the count, so ids are never reused within a session.
func (c *Collection) NextID() string {
	return fmt.Sprintf("new_server_%d", c.created+1)
}
