//go:build linux

package walk

import (
	"github.com/hayeah/uringtree/internal/dirent"
	"golang.org/x/sys/unix"
)

// readDirent performs one getdents64 on fd.
func readDirent(fd int, buf []byte) (int, error) {
	for {
		n, err := unix.Getdents(fd, buf)
		if err == unix.EINTR {
			continue
		}
		return n, err
	}
}

// statType resolves the type of name inside the directory fd without
// following symlinks.
func statType(fd int, name string) (uint8, error) {
	var st unix.Stat_t
	if err := unix.Fstatat(fd, name, &st, unix.AT_SYMLINK_NOFOLLOW); err != nil {
		return dirent.TypeUnknown, err
	}

	switch st.Mode & unix.S_IFMT {
	case unix.S_IFDIR:
		return dirent.TypeDir, nil
	case unix.S_IFREG:
		return dirent.TypeRegular, nil
	case unix.S_IFLNK:
		return dirent.TypeSymlink, nil
	case unix.S_IFIFO:
		return dirent.TypeFIFO, nil
	case unix.S_IFSOCK:
		return dirent.TypeSocket, nil
	case unix.S_IFCHR:
		return dirent.TypeChar, nil
	case unix.S_IFBLK:
		return dirent.TypeBlock, nil
	}
	return dirent.TypeUnknown, nil
}
