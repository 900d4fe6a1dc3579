//go:build unix

package wallpapers

import "golang.org/x/sys/unix"

// freeBytes reports the space available to unprivileged writes on the
// filesystem holding dir.
func freeBytes(dir string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return 0, err
	}
	return st.Bavail * uint64(st.Bsize), nil
}
