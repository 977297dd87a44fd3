package numeric

// Guard tracks the certification scope of one engine instance. Every
// query-shaped operation opens a scope on entry and releases it on every
// exit path; two scopes on the same guard must never be active at once.
// A Guard is not safe for concurrent use, matching the single-threaded
// engine contract.
type Guard struct {
	active bool
}

// Protect opens a certification scope. It panics when a scope is
// already active on this guard, which catches a query operation called
// from inside another one.
func (g *Guard) Protect() *Protector {
	if g.active {
		panic("numeric: certification context already active")
	}
	g.active = true
	return &Protector{guard: g}
}

// Protector is a scoped certification context. Release it with defer so
// it closes on every exit path.
type Protector struct {
	guard *Guard
}

// Release closes the scope. Releasing twice panics.
func (p *Protector) Release() {
	if p.guard == nil {
		panic("numeric: certification context released twice")
	}
	p.guard.active = false
	p.guard = nil
}
