package emulator

import "sync"

/*
Keypad holds the state of the 16 hexadecimal keys:

	+-+-+-+-+
	|1|2|3|C|
	+-+-+-+-+
	|4|5|6|D|
	+-+-+-+-+
	|7|8|9|E|
	+-+-+-+-+
	|A|0|B|F|
	+-+-+-+-+

The host sets keys as it sees them change; the interpreter only reads. Mapping physical keys onto this layout is
the host's business.
*/
type Keypad struct {
	mu   sync.RWMutex
	keys [16]bool
}

// IsPressed reports whether key (0x0-0xF) is down. Only the low nibble is used.
func (k *Keypad) IsPressed(key byte) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.keys[key&0xF]
}

// SetPressed records a key transition from the host.
func (k *Keypad) SetPressed(key byte, pressed bool) {
	k.mu.Lock()
	k.keys[key&0xF] = pressed
	k.mu.Unlock()
}

// Pressed returns a snapshot of all 16 keys.
func (k *Keypad) Pressed() [16]bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.keys
}

// Release lifts every key.
func (k *Keypad) Release() {
	k.mu.Lock()
	k.keys = [16]bool{}
	k.mu.Unlock()
}

/*
keyWait tracks the Fx0A "wait for key" sub-state. The instruction only completes on a key going down, so keys already
held when the wait started do not count until they are released and pressed again.
*/
type keyWait struct {
	active   bool
	baseline [16]bool
}

// poll is called each time Fx0A executes. It returns the key that completed
// the wait, if any.
func (w *keyWait) poll(keys [16]bool) (byte, bool) {
	if !w.active {
		w.active = true
		w.baseline = keys
		return 0, false
	}

	for k, down := range keys {
		if !down {
			w.baseline[k] = false
			continue
		}
		if !w.baseline[k] {
			w.active = false
			w.baseline = [16]bool{}
			return byte(k), true
		}
	}
	return 0, false
}
