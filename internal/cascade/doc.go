// Package cascade runs derived-value recomputation rules on an event bus.
//
// A rule names the topics that trigger it and the topics its writes publish.
// Register refuses a rule that would close a cycle in the trigger/write
// graph, so every write settles after a bounded number of rule runs. At run
// time a rule already on the call stack is not re-entered.
package cascade
