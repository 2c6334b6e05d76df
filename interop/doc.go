// Package interop holds the small value types the flooder, alttree and
// matcher packages pass between each other: compressed paths through the
// graph, the events the flooder reports up to the matcher, and the
// tentative events the flooder schedules internally on its radix heap.
package interop
