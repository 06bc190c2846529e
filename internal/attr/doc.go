// Package attr implements the validated attribute store that backs every
// chart configuration model.
//
// A Store holds one value per key declared in its schema. Writes are applied
// as a batch: every key is validated first, rejected keys keep their previous
// value, unknown keys are dropped, batch hooks fill in linked keys, and only
// then is one AttributeChanged event published per key whose value actually
// changed. Publishing happens on the chart's event bus, so recomputation rules
// subscribed there run synchronously before the write returns.
//
// Handlers may write back into any store while an event is being delivered.
// The nested write is applied and published immediately (depth-first); when
// the outer batch resumes it skips events for keys the nested write already
// superseded.
package attr
