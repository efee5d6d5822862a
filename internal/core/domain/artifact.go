package domain

import "fmt"

// ArtifactKind classifies a persisted output file.
type ArtifactKind string

// Available artifact kinds.
const (
	// ArtifactMarkup is the raw fetched page markup.
	ArtifactMarkup ArtifactKind = "markup"

	// ArtifactJSON is the extracted passage dump for one page.
	ArtifactJSON ArtifactKind = "json"

	// ArtifactVisualization is the rendered comparison HTML.
	ArtifactVisualization ArtifactKind = "visualization"
)

// Extension returns the file extension for the kind, including the dot.
func (k ArtifactKind) Extension() string {
	switch k {
	case ArtifactJSON:
		return ".json"
	default:
		return ".html"
	}
}

// IsValid returns true if the artifact kind is recognised.
func (k ArtifactKind) IsValid() bool {
	switch k {
	case ArtifactMarkup, ArtifactJSON, ArtifactVisualization:
		return true
	default:
		return false
	}
}

// VersionedArtifact describes one output file on disk. Version numbers for a
// given (role, slug, kind) are strictly increasing starting at 1; a new write
// always receives max(existing)+1 and never overwrites a prior version.
type VersionedArtifact struct {
	Role    Role
	Slug    string
	Kind    ArtifactKind
	Version int
	Path    string
}

// Filename returns the artifact's base file name,
// e.g. "client-example-com-pricing-v3.html".
func (a VersionedArtifact) Filename() string {
	return fmt.Sprintf("%s-v%d%s", ArtifactBase(a.Role, a.Slug), a.Version, a.Kind.Extension())
}

// ArtifactBase returns the unversioned name stem for a role and slug.
// Role-less artifacts (the visualization and consolidated exports) pass an
// empty role and use the slug alone.
func ArtifactBase(role Role, s string) string {
	if role == "" {
		return s
	}
	return fmt.Sprintf("%s-%s", role, s)
}
