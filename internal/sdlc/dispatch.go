package sdlc

import (
	"github.com/danmuck/vtcab/internal/cabinet"
)

// commandResponse pairs every polled command type with the response type
// the station generates for it. Broadcast commands (9 and 18) appear with
// no response.
var commandResponse = map[byte]byte{
	0:  128,
	1:  129,
	3:  131,
	10: 138,
	11: 139,
	12: 140,
	13: 141,
	20: 148,
	21: 149,
	22: 150,
	23: 151,
	24: 152,
	25: 153,
	26: 154,
	27: 155,
}

var broadcastCommands = []byte{9, 18}

type dispatchEntry struct {
	cmd  *Def
	resp *Def // nil for broadcast commands
}

// Dispatcher routes inbound command frames by type id: decode the command
// into the store, then generate the paired response from the store.
type Dispatcher struct {
	store   *cabinet.Store
	entries map[byte]dispatchEntry
}

func NewDispatcher(store *cabinet.Store) (*Dispatcher, error) {
	cat, err := NewCatalog()
	if err != nil {
		return nil, err
	}
	entries := make(map[byte]dispatchEntry, len(commandResponse)+len(broadcastCommands))
	for cmdID, respID := range commandResponse {
		entries[cmdID] = dispatchEntry{cmd: cat[cmdID], resp: cat[respID]}
	}
	for _, cmdID := range broadcastCommands {
		entries[cmdID] = dispatchEntry{cmd: cat[cmdID]}
	}
	return &Dispatcher{store: store, entries: entries}, nil
}

// Entries reports the registered command type ids.
func (d *Dispatcher) Entries() []byte {
	out := make([]byte, 0, len(d.entries))
	for id := range d.entries {
		out = append(out, id)
	}
	return out
}

// Dispatch handles one inbound frame. An unknown type id is not an error:
// it returns matched=false and no response, never stale bytes. A decode
// failure surfaces to the caller with the store partially updated only by
// the fields already applied.
func (d *Dispatcher) Dispatch(data []byte) (resp []byte, matched bool, err error) {
	if len(data) < HeaderSize {
		return nil, false, ErrFrameTooShort
	}
	e, ok := d.entries[data[2]]
	if !ok {
		return nil, false, nil
	}
	if err := e.cmd.Decode(d.store, data); err != nil {
		return nil, false, err
	}
	if e.resp == nil {
		return nil, true, nil
	}
	return e.resp.Encode(d.store), true, nil
}
