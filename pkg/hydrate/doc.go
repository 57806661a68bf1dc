// Package hydrate adopts server-rendered DOM nodes instead of creating
// new ones.
//
// During hydration a view claims nodes from its container's child list
// (a *Nodes) in the order it would have created them. Each claim stamps the
// node with a claim order. Before the first hydration-aware insertion into
// a container, Reorder moves the container's children into claim order
// using as few moves as possible: nodes on the longest increasing
// subsequence of claim orders stay put and only the rest are moved.
package hydrate
