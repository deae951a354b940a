package todo

import (
	"fmt"
	"hash/fnv"
	"strconv"
)

// Key identifies an item across render passes.
type Key string

// KeyFunc derives a Key for an item.
type KeyFunc func(item Item) Key

// TextKey derives the key from the file id and the item text. Two items
// with the same text in the same file share a key, and editing the text
// produces a new one.
func TextKey(item Item) Key {
	return Key(item.File.ID + "-" + item.Text)
}

// PositionKey hashes the file id, source line and text, so duplicate
// texts in one file get distinct keys.
func PositionKey(item Item) Key {
	h := fnv.New64a()
	h.Write([]byte(item.File.ID))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(item.Line)))
	h.Write([]byte{0})
	h.Write([]byte(item.Text))
	return Key(fmt.Sprintf("%s#%016x", item.File.ID, h.Sum64()))
}

// KeyFuncByName returns the key scheme for a config name.
func KeyFuncByName(name string) (KeyFunc, error) {
	switch name {
	case "", "text":
		return TextKey, nil
	case "position":
		return PositionKey, nil
	}
	return nil, fmt.Errorf("unknown fold key scheme %q", name)
}
