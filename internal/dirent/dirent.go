// Package dirent decodes the raw records returned by getdents64.
package dirent

import (
	"bytes"
	"encoding/binary"
)

// Type values of the d_type field.
const (
	TypeUnknown uint8 = 0
	TypeFIFO    uint8 = 1
	TypeChar    uint8 = 2
	TypeDir     uint8 = 4
	TypeBlock   uint8 = 6
	TypeRegular uint8 = 8
	TypeSymlink uint8 = 10
	TypeSocket  uint8 = 12
)

// linux_dirent64 layout: d_ino u64, d_off s64, d_reclen u16, d_type u8, d_name.
const (
	reclenOffset = 16
	typeOffset   = 18
	nameOffset   = 19
)

// Entry is one named child of a directory.
type Entry struct {
	Name string
	Type uint8
	Last bool // final entry of its directory
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Type == TypeDir
}

// record is one undecoded dirent, valid only while the buffer is.
type record struct {
	name []byte
	typ  uint8
}

// Decode turns the bytes of one getdents64 read into entries, skipping "."
// and "..". The last entry has Last set.
func Decode(buf []byte) []Entry {
	count := 0
	forEach(buf, func(record) { count++ })
	if count == 0 {
		return nil
	}

	entries := make([]Entry, 0, count)
	forEach(buf, func(r record) {
		entries = append(entries, Entry{
			Name: string(r.name),
			Type: r.typ,
			Last: len(entries) == count-1,
		})
	})
	return entries
}

// forEach calls fn for every real entry in buf. Decoding stops at the first
// record whose length is zero or runs past the end of buf.
func forEach(buf []byte, fn func(record)) {
	for off := 0; off+nameOffset <= len(buf); {
		reclen := int(binary.NativeEndian.Uint16(buf[off+reclenOffset:]))
		if reclen < nameOffset || off+reclen > len(buf) {
			return
		}

		name := buf[off+nameOffset : off+reclen]
		if i := bytes.IndexByte(name, 0); i >= 0 {
			name = name[:i]
		}
		if !isDot(name) {
			fn(record{name: name, typ: buf[off+typeOffset]})
		}
		off += reclen
	}
}

func isDot(name []byte) bool {
	switch len(name) {
	case 1:
		return name[0] == '.'
	case 2:
		return name[0] == '.' && name[1] == '.'
	}
	return false
}

// MarkLast clears Last on every entry but the final one.
func MarkLast(entries []Entry) {
	for i := range entries {
		entries[i].Last = i == len(entries)-1
	}
}
