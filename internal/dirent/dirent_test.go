package dirent

import (
	"encoding/binary"
	"testing"

	"github.com/hayeah/uringtree/internal/assert"
)

// appendRecord appends a linux_dirent64 record padded to 8 bytes, plus
// extra bytes of padding to vary the record length.
func appendRecord(buf []byte, name string, typ uint8, extra int) []byte {
	reclen := (nameOffset + len(name) + 1 + 7) &^ 7
	reclen += extra

	rec := make([]byte, reclen)
	binary.NativeEndian.PutUint64(rec[0:], 42)
	binary.NativeEndian.PutUint64(rec[8:], uint64(len(buf)+reclen))
	binary.NativeEndian.PutUint16(rec[reclenOffset:], uint16(reclen))
	rec[typeOffset] = typ
	copy(rec[nameOffset:], name)
	return append(buf, rec...)
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	var buf []byte
	buf = appendRecord(buf, ".", TypeDir, 0)
	buf = appendRecord(buf, "..", TypeDir, 0)
	buf = appendRecord(buf, "a.txt", TypeRegular, 0)
	buf = appendRecord(buf, "sub", TypeDir, 16)
	buf = appendRecord(buf, "link", TypeSymlink, 0)

	entries := Decode(buf)
	assert.Equal([]Entry{
		{Name: "a.txt", Type: TypeRegular},
		{Name: "sub", Type: TypeDir},
		{Name: "link", Type: TypeSymlink, Last: true},
	}, entries)
	assert.True(entries[1].IsDir())
	assert.False(entries[2].IsDir())
}

func TestDecode_OnlyDots(t *testing.T) {
	assert := assert.New(t)

	var buf []byte
	buf = appendRecord(buf, ".", TypeDir, 0)
	buf = appendRecord(buf, "..", TypeDir, 0)

	assert.Empty(Decode(buf))
	assert.Empty(Decode(nil))
}

func TestDecode_DotPrefixedNamesAreKept(t *testing.T) {
	assert := assert.New(t)

	var buf []byte
	buf = appendRecord(buf, ".git", TypeDir, 0)
	buf = appendRecord(buf, "...", TypeRegular, 0)

	entries := Decode(buf)
	assert.Len(entries, 2)
	assert.Equal(".git", entries[0].Name)
	assert.Equal("...", entries[1].Name)
	assert.True(entries[1].Last)
}

func TestDecode_ExactlyOneLast(t *testing.T) {
	assert := assert.New(t)

	var buf []byte
	for _, name := range []string{"a", "bb", "ccc", "a-much-longer-file-name.go", "e"} {
		buf = appendRecord(buf, name, TypeRegular, 0)
	}

	entries := Decode(buf)
	assert.Len(entries, 5)
	last := 0
	for i, e := range entries {
		if e.Last {
			last++
			assert.Equal(len(entries)-1, i)
		}
	}
	assert.Equal(1, last)
}

func TestDecode_StopsOnBadRecord(t *testing.T) {
	assert := assert.New(t)

	var buf []byte
	buf = appendRecord(buf, "ok", TypeRegular, 0)
	good := len(buf)
	buf = appendRecord(buf, "broken", TypeRegular, 0)

	// zero length record
	zeroed := append([]byte(nil), buf...)
	binary.NativeEndian.PutUint16(zeroed[good+reclenOffset:], 0)
	entries := Decode(zeroed)
	assert.Equal([]Entry{{Name: "ok", Type: TypeRegular, Last: true}}, entries)

	// record cut short by the end of the buffer
	entries = Decode(buf[:len(buf)-4])
	assert.Equal([]Entry{{Name: "ok", Type: TypeRegular, Last: true}}, entries)
}

func TestMarkLast(t *testing.T) {
	assert := assert.New(t)

	entries := []Entry{{Name: "a", Last: true}, {Name: "b"}}
	MarkLast(entries)
	assert.False(entries[0].Last)
	assert.True(entries[1].Last)

	MarkLast(nil)
}
