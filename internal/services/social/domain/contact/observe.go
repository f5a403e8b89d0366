package contact

type observer struct {
	id int
	fn func(Property)
}

// Subscribe registers fn for property change notices and returns a function
// that removes it. Observers run synchronously, in subscription order.
func (c *Contact) Subscribe(fn func(Property)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	c.nextObserver++
	id := c.nextObserver
	c.observers = append(c.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

func (c *Contact) notify(properties ...Property) {
	if len(c.observers) == 0 {
		return
	}
	current := c.observers
	for _, property := range properties {
		for _, o := range current {
			o.fn(property)
		}
	}
}
