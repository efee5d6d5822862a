package driven

// ArtifactStore persists versioned output files in one output directory.
// Version-number assignment itself lives in the core's VersionManager; the
// store only lists, reads and writes named files.
type ArtifactStore interface {
	// List returns the base names of all files currently in the store.
	List() ([]string, error)

	// Write stores data under name and returns the full path.
	// It must refuse to overwrite an existing file: versioned writes are
	// append-only by contract.
	Write(name string, data []byte) (string, error)

	// Read returns the contents of the named file.
	Read(name string) ([]byte, error)

	// Remove deletes the named file. Used only by explicit pruning.
	Remove(name string) error

	// Dir returns the store's directory path.
	Dir() string
}
