package transition

import (
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/vela/pkg/dom"
)

// RulePrefix starts the name of every keyframes rule the engine creates.
const RulePrefix = "__vela"

// frameStep is the keyframe sampling interval in milliseconds.
const frameStep = 16.666

type styleInfo struct {
	sheet *dom.StyleSheet
	rules map[string]bool
}

// Keyframes renders the body of a @keyframes rule running from a to b,
// sampled every 16.666ms of duration.
func Keyframes(a, b float64, duration time.Duration, ease func(float64) float64, css func(t, u float64) string) string {
	var buf strings.Builder
	buf.WriteString("{\n")
	// A zero duration gives an infinite step: only the 0% frame is sampled.
	step := frameStep / millis(duration)
	for p := 0.0; p <= 1; p += step {
		t := a + (b-a)*ease(p)
		buf.WriteString(num(p * 100))
		buf.WriteString("%{")
		buf.WriteString(css(t, 1-t))
		buf.WriteString("}\n")
	}
	buf.WriteString("100% {")
	buf.WriteString(css(b, 1-b))
	buf.WriteString("}\n}")
	return buf.String()
}

// CreateRule registers a keyframes rule for the transition from a to b on
// node, appends it to the node's animation list and returns the rule
// name. Identical rules within one style root share a single stylesheet
// entry, but each call counts as one running animation.
func (e *Engine) CreateRule(node *dom.Node, a, b float64, duration, delay time.Duration, ease func(float64) float64, css func(t, u float64) string, uid int) string {
	rule := Keyframes(a, b, duration, ease, css)
	name := RulePrefix + "_" + strconv.FormatUint(uint64(Hash(rule)), 10) + "_" + strconv.Itoa(uid)

	root := dom.RootForStyle(node)
	info := e.styles[root]
	if info == nil {
		info = e.newStyleInfo(root)
	}
	if !info.rules[name] {
		info.rules[name] = true
		info.sheet.InsertRule("@keyframes "+name+" "+rule, info.sheet.Len())
	}

	style := node.Style()
	decl := name + " " + num(millis(duration)) + "ms linear " + num(millis(delay)) + "ms 1 both"
	if prev := style.Get("animation"); prev != "" {
		decl = prev + ", " + decl
	}
	style.Set("animation", decl, false)

	e.active++
	e.notifyActive()
	return name
}

func (e *Engine) newStyleInfo(root *dom.Node) *styleInfo {
	el := root.OwnerDocument().CreateElement("style")
	parent := root.Head()
	if parent == nil {
		parent = root
	}
	parent.AppendChild(el)

	info := &styleInfo{sheet: el.Sheet(), rules: make(map[string]bool)}
	e.styles[root] = info
	e.roots = append(e.roots, root)
	return info
}

// DeleteRule removes the named animation from node's animation list. An
// empty name removes every animation the engine created. When no
// animations remain running anywhere, the managed stylesheets are swept on
// the next frame.
func (e *Engine) DeleteRule(node *dom.Node, name string) {
	style := node.Style()
	current := style.Get("animation")
	if current == "" {
		return
	}
	prev := strings.Split(current, ", ")
	next := prev[:0:0]
	for _, anim := range prev {
		if name != "" && !animationNamed(anim, name) {
			next = append(next, anim)
		} else if name == "" && !strings.Contains(anim, RulePrefix) {
			next = append(next, anim)
		}
	}
	deleted := len(prev) - len(next)
	if deleted == 0 {
		return
	}
	style.Set("animation", strings.Join(next, ", "), false)
	e.active -= deleted
	if e.active < 0 {
		e.active = 0
	}
	e.notifyActive()
	if e.active == 0 {
		e.clearRules()
	}
}

// animationNamed reports whether the animation shorthand anim runs name.
// The name is the first token, so __vela_x_1 does not match __vela_x_10.
func animationNamed(anim, name string) bool {
	return anim == name || strings.HasPrefix(anim, name+" ")
}

func (e *Engine) clearRules() {
	e.sched.Host().RequestFrame(func(time.Duration) {
		if e.active > 0 {
			return
		}
		for _, root := range e.roots {
			if owner := e.styles[root].sheet.OwnerNode(); owner != nil {
				owner.Remove()
			}
		}
		clear(e.styles)
		e.roots = e.roots[:0]
	})
}

// Active returns the number of running CSS animations.
func (e *Engine) Active() int { return e.active }

// Stylesheets returns the managed stylesheets in creation order.
func (e *Engine) Stylesheets() []*dom.StyleSheet {
	out := make([]*dom.StyleSheet, 0, len(e.roots))
	for _, root := range e.roots {
		out = append(out, e.styles[root].sheet)
	}
	return out
}

// CSS returns the text of every managed keyframes rule.
func (e *Engine) CSS() string {
	var rules []string
	for _, sheet := range e.Stylesheets() {
		rules = append(rules, sheet.Rules()...)
	}
	return strings.Join(rules, "\n")
}

func num(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
