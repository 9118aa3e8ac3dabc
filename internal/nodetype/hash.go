package nodetype

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// contentHash computes a deterministic digest of a type's behavioural
// definition: name, version, connector signature and persistable-field
// declarations. All fields are length-prefixed to avoid ambiguity. Saved
// graphs compare this on load to detect behaviour drift.
func contentHash(t *Type) string {
	h := sha256.New()

	writeField := func(data []byte) {
		var length [8]byte
		binary.BigEndian.PutUint64(length[:], uint64(len(data)))
		h.Write(length[:])
		h.Write(data)
	}
	writeConnectors := func(specs []ConnectorSpec) {
		writeField([]byte{byte(len(specs))})
		for _, c := range specs {
			writeField([]byte(c.Name))
			writeField([]byte(c.Kind.String()))
		}
	}

	writeField([]byte(t.name))
	writeField([]byte(t.version))
	writeConnectors(t.inputs)
	writeConnectors(t.outputs)

	writeField([]byte{byte(len(t.params))})
	for _, p := range t.params {
		writeField([]byte(p.Name))
		writeField([]byte(p.Default.GoString()))
	}

	return hex.EncodeToString(h.Sum(nil))
}
