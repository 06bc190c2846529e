// Package events defines the fixed set of chart topics and their typed
// payloads.
//
// Topic layout:
//
//	attr.<store>.<key>     AttributeChanged, one per changed key
//	validation.rejected    AttributeRejected
//	validation.unknown     UnknownAttribute
//	data.changed           DataChanged
//	brush.changed          BrushChanged
//	cursor.moved           CursorMoved
//	scene.redrawn          LayerRedrawn
//	structure.mismatch     StructureMismatch
package events
