package domain

const (
	// HobFileName is the name of the task configuration file.
	HobFileName = "hob.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
