// Package navigation provides the callback-iteration engine behind keyboard
// "next/previous" focus movement.
//
// # Model
//
// A Registry is an ordered sequence of slots plus an active position. Each
// slot is either a leaf (a Callback, typically "focus this row" or "scroll
// this row into view") or a node (a nested Registry). Navigation walks the
// tree and invokes exactly one leaf callback per successful move:
//
//	root := navigation.New()
//	root.RegisterLeaf(func() { focus("a") })
//	section := navigation.New()
//	section.RegisterLeaf(func() { focus("b.1") })
//	root.RegisterNode(section)
//
//	root.Next() // focus("a")
//	root.Next() // focus("b.1"), entered through the node
//
// # Mutation
//
// Items come and go as the UI mounts and unmounts them. Register returns a
// stable Handle; Deregister keeps the active position coherent and may move
// focus to a neighbouring slot or hand control back to the parent Registry
// when a nested one runs empty.
//
// # Concurrency
//
// A Registry is not safe for concurrent use. All calls are expected from the
// single goroutine that owns the UI event loop, and every call completes
// synchronously, including any delegation to parents or children.
package navigation
