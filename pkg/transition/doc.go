// Package transition runs enter and leave transitions on DOM nodes.
//
// A transition function returns a Config describing timing, easing and
// either a CSS generator or a per-frame tick function. CSS transitions
// are compiled to @keyframes rules sampled at roughly 60fps and inserted
// into one managed stylesheet per style root. Rules are reference counted
// through a single running-animation counter: when it drops to zero the
// managed stylesheets are removed on the next frame.
//
// Leaving blocks are coordinated with outro groups. GroupOutros opens a
// group, each out transition started inside it increments the group's
// pending count, and the group's completions run once every tracked
// transition has finished.
package transition
