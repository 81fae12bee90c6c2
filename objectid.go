package bson

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"os"
	"sync/atomic"
	"time"
)

// objectIDCounter is the process-wide incrementing counter folded into
// every generated ObjectID's last 3 bytes.
var objectIDCounter int32

// NewObjectID creates a fresh, unique ObjectID using MongoDB's classic
// 12-byte layout:
//
//	+---+---+---+---+---+---+---+---+---+---+---+---+
//	|       A       |     B     |   C   |     D     |
//	+---+---+---+---+---+---+---+---+---+---+---+---+
//	  0   1   2   3   4   5   6   7   8   9  10  11
//
// A = Unix seconds (big-endian), B = first 3 bytes of the MD5 of the
// hostname, C = process id, D = an incrementing counter (big-endian,
// wrapped to 3 bytes).
func NewObjectID() (ObjectID, error) {
	var id ObjectID
	buf := bytes.NewBuffer(make([]byte, 0, 12))
	if err := binary.Write(buf, binary.BigEndian, int32(time.Now().Unix())); err != nil {
		return id, err
	}

	name, err := os.Hostname()
	if err != nil {
		return id, err
	}
	hash := md5.Sum([]byte(name))
	buf.Write(hash[:3])

	if err := binary.Write(buf, binary.BigEndian, int16(os.Getpid())); err != nil {
		return id, err
	}

	cnt := atomic.AddInt32(&objectIDCounter, 1) % 16777215
	var cntBuf [4]byte
	binary.BigEndian.PutUint32(cntBuf[:], uint32(cnt))
	buf.Write(cntBuf[1:])

	copy(id[:], buf.Bytes())
	return id, nil
}
