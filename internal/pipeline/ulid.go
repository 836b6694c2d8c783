package pipeline

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/binary"
	"sync"
	"time"
)

// Job IDs are 26 Crockford base32 characters: a 48-bit millisecond
// timestamp followed by a 16-bit sequence and 64 random bits, so IDs
// sort by creation time.

var jobIDEncoding = base32.NewEncoding("0123456789ABCDEFGHJKMNPQRSTVWXYZ").WithPadding(base32.NoPadding)

var (
	idMu   sync.Mutex
	idLast uint64
	idSeq  uint16
)

func newJobID() string {
	idMu.Lock()
	ts := uint64(time.Now().UnixMilli())
	if ts <= idLast {
		ts = idLast
		idSeq++
	} else {
		idLast = ts
		idSeq = 0
	}
	seq := idSeq
	idMu.Unlock()

	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], ts<<16|uint64(seq))
	rand.Read(b[8:])
	return jobIDEncoding.EncodeToString(b[:])
}
