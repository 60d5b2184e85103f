package worldfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/karelgrid/karel/world"
)

var (
	ErrWorldNotFound = errors.New("world document not found")
	ErrInvalidWorld  = errors.New("invalid world document")
)

// Info summarizes one available world document for listings.
type Info struct {
	Filename    string         `json:"filename"`
	WorldID     string         `json:"world_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Size        world.Position `json:"size"`
	Tier        string         `json:"tier"`
}

// Manager loads world documents from a directory and caches parsed
// documents by ID. It is safe for concurrent use.
type Manager struct {
	worldDir string
	docs     map[string]*Document
	mu       sync.RWMutex
}

// NewManager creates a manager over an existing world directory.
func NewManager(worldDir string) (*Manager, error) {
	if _, err := os.Stat(worldDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("world directory does not exist: %s", worldDir)
	}
	return &Manager{
		worldDir: worldDir,
		docs:     make(map[string]*Document),
	}, nil
}

// Load returns the world document with the given ID (the file name without
// the .json extension), parsing and caching it on first use.
func (m *Manager) Load(id string) (*Document, error) {
	m.mu.RLock()
	if doc, ok := m.docs[id]; ok {
		m.mu.RUnlock()
		return doc, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring the write lock.
	if doc, ok := m.docs[id]; ok {
		return doc, nil
	}

	filename := id
	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}

	data, err := os.ReadFile(filepath.Join(m.worldDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrWorldNotFound
		}
		return nil, fmt.Errorf("read world document: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorld, err)
	}

	m.docs[id] = doc
	return doc, nil
}

// List returns information about every valid world document in the
// directory; unparseable files are skipped.
func (m *Manager) List() ([]*Info, error) {
	entries, err := os.ReadDir(m.worldDir)
	if err != nil {
		return nil, fmt.Errorf("read world directory: %w", err)
	}

	var infos []*Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		doc, err := m.Load(id)
		if err != nil {
			continue
		}

		w, err := doc.Build()
		if err != nil {
			continue
		}
		tier, _ := doc.CommandTier()

		infos = append(infos, &Info{
			Filename:    entry.Name(),
			WorldID:     id,
			Name:        doc.Name,
			Description: doc.Description,
			Size:        w.Size(),
			Tier:        string(tier),
		})
	}

	return infos, nil
}

// Save validates a document and writes it to the world directory under the
// given ID, replacing any cached copy.
func (m *Manager) Save(id string, doc *Document) error {
	if err := Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWorld, err)
	}

	filename := id
	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal world document: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.worldDir, filename), data, 0644); err != nil {
		return fmt.Errorf("write world document: %w", err)
	}

	m.mu.Lock()
	m.docs[id] = doc
	m.mu.Unlock()
	return nil
}

// RefreshCache forgets all cached documents so the next Load rereads disk.
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = make(map[string]*Document)
}
