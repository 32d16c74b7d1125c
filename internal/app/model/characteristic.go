package model

import "strings"

// Characteristic is one entry of the global characteristic library: a
// dimension name plus every option value ever registered for it. The library
// only grows; entries and options are never removed, even when no product
// uses them anymore.
type Characteristic struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// Clone returns a copy that shares no slices with the receiver.
func (c Characteristic) Clone() Characteristic {
	out := c
	out.Options = append([]string(nil), c.Options...)
	return out
}

// Selection identifies one chosen characteristic value. Products persist
// selections as "name:option" strings; inside the process the pair type is
// used and the encoded form only appears at the serialization boundary.
type Selection struct {
	Name   string `json:"name"`
	Option string `json:"option"`
}

// String renders the persisted "name:option" form.
func (s Selection) String() string {
	return s.Name + ":" + s.Option
}

// ParseSelection decodes a persisted characteristic entry. Bare labels
// (legacy entries without a colon) report ok=false.
func ParseSelection(encoded string) (Selection, bool) {
	name, option, found := strings.Cut(encoded, ":")
	if !found {
		return Selection{}, false
	}
	return Selection{Name: name, Option: option}, true
}
