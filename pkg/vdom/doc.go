// Package vdom builds component views from templates.
//
// A template is a tree of VNodes built with element factories:
//
//	Div(Class("card"),
//	    H1(Slot(0)),
//	    If(1, P(Out(transition.Fade, nil), Text("saved"))),
//	    Button(OnClick(save), Text("Save")),
//	)
//
// Slot, BindAttr and If read the owning component's context slots by
// index. A View is the live instance of a template for one component.
// It creates or claims its DOM nodes, patches only the parts whose slots
// are dirty, and runs element transitions when blocks enter or leave.
//
// Component pairs a template with its script and produces the
// vela.Definition the runtime mounts.
package vdom
