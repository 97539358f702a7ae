package jsonreader

import (
	"github.com/kestrel-labs/jsonreader/cursor"
	"github.com/kestrel-labs/jsonreader/token"
)

// arrayEvent is what one ArraySM.Read call produces.
type arrayEvent int

const (
	arrayError arrayEvent = iota
	arrayIncomplete
	arrayItem
	arrayDone
)

type arrayState int

const (
	arrayInitial arrayState = iota
	arrayItemOrEnd
	arrayPendingItem
	arrayStateDone
	arrayStateError
)

// ArraySM is the structure state machine behind both array() and
// tuple(): it decides, token by token, whether it is looking at the
// start of the array, another item, or the closing bracket, without
// knowing anything about how an item's value is decoded. Mirrors the
// jsonStruct/jsonArray event loop in the teacher's (now-removed) ion
// JSON importer, generalized into an explicit resumable machine.
type ArraySM struct {
	state         arrayState
	currentLength int
}

// CurrentLength is the number of items consumed so far, for error
// messages and folder callbacks.
func (sm *ArraySM) CurrentLength() int { return sm.currentLength }

// Read advances the machine by exactly one step, possibly consuming a
// token from c. It panics if called again after Error or Done: callers
// must stop driving the machine once they observe a terminal event.
func (sm *ArraySM) Read(c *cursor.Cursor) arrayEvent {
	for {
		switch sm.state {
		case arrayStateDone, arrayStateError:
			panic("jsonreader: ArraySM.Read called after a terminal event")
		case arrayInitial:
			if ok, err := readyCursor(c); !ok {
				if err != nil {
					sm.state = arrayStateError
					return arrayError
				}
				return arrayIncomplete
			}
			if c.TokenType() != token.StartArray {
				sm.state = arrayStateError
				return arrayError
			}
			sm.state = arrayItemOrEnd
			continue
		case arrayItemOrEnd:
			if !c.Advance() {
				if err := c.Err(); err != nil {
					sm.state = arrayStateError
					return arrayError
				}
				return arrayIncomplete
			}
			if c.TokenType() == token.EndArray {
				sm.state = arrayStateDone
				return arrayDone
			}
			sm.state = arrayPendingItem
			return arrayItem
		case arrayPendingItem:
			return arrayItem
		}
	}
}

// OnItemRead must be called once the caller has fully consumed the
// current item's value, before the next Read call.
func (sm *ArraySM) OnItemRead() {
	sm.currentLength++
	sm.state = arrayItemOrEnd
}

// objectEvent is what one ObjectSM.Read call produces.
type objectEvent int

const (
	objectError objectEvent = iota
	objectIncomplete
	objectPropertyName
	objectPropertyValue
	objectDone
)

type objectState int

const (
	objectInitial objectState = iota
	objectPropertyNameOrEnd
	objectPendingName
	objectPendingValue
	objectStateDone
	objectStateError
)

// ObjectSM is the structure state machine behind object() and
// object_as_map(): it sequences StartObject, PropertyName/value pairs
// and EndObject without knowing how a property name is matched or a
// value is decoded.
type ObjectSM struct {
	state objectState
}

func (sm *ObjectSM) Read(c *cursor.Cursor) objectEvent {
	for {
		switch sm.state {
		case objectStateDone, objectStateError:
			panic("jsonreader: ObjectSM.Read called after a terminal event")
		case objectInitial:
			if ok, err := readyCursor(c); !ok {
				if err != nil {
					sm.state = objectStateError
					return objectError
				}
				return objectIncomplete
			}
			if c.TokenType() != token.StartObject {
				sm.state = objectStateError
				return objectError
			}
			sm.state = objectPropertyNameOrEnd
			continue
		case objectPropertyNameOrEnd:
			if !c.Advance() {
				if err := c.Err(); err != nil {
					sm.state = objectStateError
					return objectError
				}
				return objectIncomplete
			}
			if c.TokenType() == token.EndObject {
				sm.state = objectStateDone
				return objectDone
			}
			sm.state = objectPendingName
			return objectPropertyName
		case objectPendingName:
			return objectPropertyName
		case objectPendingValue:
			return objectPropertyValue
		}
	}
}

// OnPropertyNameRead transitions to expecting the property's value.
func (sm *ObjectSM) OnPropertyNameRead() { sm.state = objectPendingValue }

// OnPropertyValueRead transitions back to expecting the next property
// or the closing brace, once the caller has fully consumed the value
// (whether by decoding it or by cursor.SkipValue).
func (sm *ObjectSM) OnPropertyValueRead() { sm.state = objectPropertyNameOrEnd }
