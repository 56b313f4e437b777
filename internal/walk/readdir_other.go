//go:build !linux

package walk

import (
	"errors"

	"github.com/hayeah/uringtree/internal/dirent"
)

var errNoGetdents = errors.New("getdents64 is only available on linux")

func readDirent(fd int, buf []byte) (int, error) {
	return 0, errNoGetdents
}

func statType(fd int, name string) (uint8, error) {
	return dirent.TypeUnknown, errNoGetdents
}
