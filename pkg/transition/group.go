package transition

// Block is a fragment that may leave with an outro. Blocks that also
// implement Transitioner run their own intro and outro transitions.
type Block interface {
	Destroy(detaching bool)
}

// Transitioner is implemented by blocks with transitions.
type Transitioner interface {
	Intro(local bool)
	Outro(local bool)
}

// Group tracks out transitions started while it was open.
type Group struct {
	pending     int
	completions []func()
	parent      *Group
}

// Pending returns the number of unfinished out transitions in the group.
func (g *Group) Pending() int { return g.pending }

func (g *Group) add() { g.pending++ }

// done records one finished transition and runs the completions when it
// was the last.
func (g *Group) done() {
	if g.pending == 0 {
		return
	}
	g.pending--
	if g.pending == 0 {
		g.run()
	}
}

func (g *Group) run() {
	completions := g.completions
	g.completions = nil
	for _, fn := range completions {
		fn()
	}
}

// GroupOutros opens a new outro group nested in the current one.
func (e *Engine) GroupOutros() {
	e.outros = &Group{parent: e.outros}
	e.open++
	e.notifyGroups()
}

// CheckOutros closes the current group. If none of its transitions are
// pending, its completions run immediately.
func (e *Engine) CheckOutros() {
	g := e.outros
	if g == nil {
		return
	}
	if g.pending == 0 {
		g.run()
	}
	e.outros = g.parent
	e.open--
	e.notifyGroups()
}

// CurrentGroup returns the open group, or nil.
func (e *Engine) CurrentGroup() *Group { return e.outros }

// Outroing reports whether block is currently leaving.
func (e *Engine) Outroing(block Block) bool {
	_, ok := e.outroing[block]
	return ok
}

// TransitionIn cancels any pending outro of block and runs its intro.
func (e *Engine) TransitionIn(block Block, local bool) {
	if block == nil {
		return
	}
	t, ok := block.(Transitioner)
	if !ok {
		return
	}
	delete(e.outroing, block)
	t.Intro(local)
}

// TransitionOut starts the outro of block in the current group. When the
// group completes, block is destroyed if detach is set and callback runs.
// Blocks without transitions complete immediately. With no group open, a
// group is opened and closed around the call.
func (e *Engine) TransitionOut(block Block, local, detach bool, callback func()) {
	t, ok := block.(Transitioner)
	if block == nil || !ok {
		if callback != nil {
			callback()
		}
		return
	}
	if _, leaving := e.outroing[block]; leaving {
		return
	}

	if e.outros == nil {
		e.GroupOutros()
		defer e.CheckOutros()
	}

	e.outroing[block] = struct{}{}
	e.outros.completions = append(e.outros.completions, func() {
		delete(e.outroing, block)
		if callback != nil {
			if detach {
				block.Destroy(true)
			}
			callback()
		}
	})
	t.Outro(local)
}
