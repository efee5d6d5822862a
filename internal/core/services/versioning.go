package services

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
	"github.com/meridian-labs/pagelens-cli/internal/core/ports/driven"
	"github.com/meridian-labs/pagelens-cli/internal/logger"
)

// VersionManager assigns collision-free, monotonically increasing version
// numbers to output artifacts keyed by (role, slug, kind).
//
// It works over a snapshot of the store's existing file names plus an
// in-run reservation log: every NextVersion call advances the log, so two
// calls for the same key within one run return n and n+1 and the second
// artifact never overwrites the first. All assignment is serialized through
// one instance; extraction and embedding may run in parallel but version
// numbers have a single owner.
type VersionManager struct {
	store driven.ArtifactStore

	mu       sync.Mutex
	names    []string       // snapshot of existing file names
	loaded   bool
	reserved map[string]int // highest version handed out per key this run
}

// NewVersionManager creates a version manager over the given store.
func NewVersionManager(store driven.ArtifactStore) *VersionManager {
	return &VersionManager{
		store:    store,
		reserved: make(map[string]int),
	}
}

// NextVersion returns the next free version number for (role, slug, kind):
// one greater than the highest version on disk or reserved this run,
// starting at 1 when none exist. An empty slug is ErrNaming.
func (m *VersionManager) NextVersion(role domain.Role, slug string, kind domain.ArtifactKind) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key, err := m.key(role, slug, kind)
	if err != nil {
		return 0, err
	}

	if err := m.ensureSnapshot(); err != nil {
		return 0, err
	}

	next := m.scanMax(role, slug, kind) + 1
	if r, ok := m.reserved[key]; ok && r >= next {
		next = r + 1
	}
	m.reserved[key] = next

	logger.Debug("Version %d reserved for %s", next, key)
	return next, nil
}

// LatestVersion returns the highest version currently on disk for the key,
// or ok=false when no version exists. In-run reservations are not counted:
// this is used to locate the previous run's artifact.
func (m *VersionManager) LatestVersion(role domain.Role, slug string, kind domain.ArtifactKind) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.key(role, slug, kind); err != nil {
		return 0, false, err
	}
	if err := m.ensureSnapshot(); err != nil {
		return 0, false, err
	}

	max := m.scanMax(role, slug, kind)
	return max, max > 0, nil
}

func (m *VersionManager) key(role domain.Role, slug string, kind domain.ArtifactKind) (string, error) {
	if slug == "" {
		return "", fmt.Errorf("%w: empty slug for %s artifact", domain.ErrNaming, kind)
	}
	return domain.ArtifactBase(role, slug) + string(kind), nil
}

func (m *VersionManager) ensureSnapshot() error {
	if m.loaded {
		return nil
	}
	names, err := m.store.List()
	if err != nil {
		return fmt.Errorf("list artifacts: %w", err)
	}
	m.names = names
	m.loaded = true
	return nil
}

// scanMax extracts the highest version number among snapshot names matching
// the {base}-v{n}{ext} pattern for the key. Caller must hold the lock.
func (m *VersionManager) scanMax(role domain.Role, slug string, kind domain.ArtifactKind) int {
	base := domain.ArtifactBase(role, slug)
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `-v(\d+)` + regexp.QuoteMeta(kind.Extension()) + `$`)

	max := 0
	for _, name := range m.names {
		match := pattern.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		v, err := strconv.Atoi(match[1])
		if err != nil || v <= 0 {
			continue
		}
		if v > max {
			max = v
		}
	}
	return max
}
