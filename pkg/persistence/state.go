package persistence

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/devreg/devreg-go/pkg/regmap"
	"github.com/devreg/devreg-go/pkg/regspec"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// HexBytes is a byte slice stored as a hex string.
type HexBytes []byte

func (b HexBytes) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(b)), nil
}

func (b *HexBytes) UnmarshalText(text []byte) error {
	data, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	*b = data
	return nil
}

// RegisterState contains the register values of one device.
type RegisterState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Device names the register map the state belongs to.
	Device string `json:"device,omitempty"`

	// Registers maps register names to their bytes.
	Registers map[string]HexBytes `json:"registers"`
}

// FromMemory records every register of m held by mem.
func FromMemory(m *regspec.Map, mem *regmap.Memory[uint64]) *RegisterState {
	state := &RegisterState{
		Device:    m.Device,
		Registers: make(map[string]HexBytes, len(m.Registers)),
	}
	for _, r := range m.Registers {
		if data, ok := mem.Get(r.Addr); ok {
			state.Registers[r.Name] = data
		}
	}
	return state
}

// Restore defines the saved registers in mem. Every saved register must
// exist in m with the same width.
func (s *RegisterState) Restore(m *regspec.Map, mem *regmap.Memory[uint64]) error {
	if s.Device != "" && m.Device != "" && s.Device != m.Device {
		return fmt.Errorf("state is for device %q, map describes %q", s.Device, m.Device)
	}

	names := make([]string, 0, len(s.Registers))
	for name := range s.Registers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r, ok := m.Lookup(name)
		if !ok {
			return fmt.Errorf("saved register %q is not in the map", name)
		}
		data := s.Registers[name]
		if len(data) != r.Bytes() {
			return fmt.Errorf("saved register %q has %d bytes, map says %d", name, len(data), r.Bytes())
		}
	}
	for _, name := range names {
		r, _ := m.Lookup(name)
		mem.Define(r.Addr, s.Registers[name])
	}
	return nil
}

// StateStore manages persistence of register state to a JSON file.
type StateStore struct {
	mu   sync.Mutex
	path string
}

// NewStateStore creates a new state store.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Path returns the state file path.
func (s *StateStore) Path() string { return s.path }

// Save persists the state to disk.
func (s *StateStore) Save(state *RegisterState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the state from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *StateStore) Load() (*RegisterState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &RegisterState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}
	if state.Version > StateVersion {
		return nil, fmt.Errorf("%s: state version %d is newer than %d", s.path, state.Version, StateVersion)
	}

	return state, nil
}

// Clear removes the state file.
func (s *StateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
