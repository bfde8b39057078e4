package profilestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/gamepadhid/core/internal/gamepadhiderr"
	"github.com/gamepadhid/core/pkg/models"
)

// JSONFileStore persists one JSON document per profile under dir, plus a
// small pointer document recording which profile is active. Documents are
// read field-by-field with gjson and patched in place with sjson so that
// any keys a future version adds and this one doesn't know about survive a
// save untouched.
type JSONFileStore struct {
	mu  sync.Mutex
	dir string
}

// NewJSONFileStore returns a JSONFileStore rooted at dir, creating dir and
// seeding the Default profile if the directory is empty.
func NewJSONFileStore(dir string) (*JSONFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "create profile directory", err)
	}
	s := &JSONFileStore{dir: dir}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "read profile directory", err)
	}
	if len(entries) == 0 {
		def := models.DefaultProfile()
		if err := s.Save(def); err != nil {
			return nil, err
		}
		if err := s.SetActiveName(def.Name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *JSONFileStore) path(name string) string {
	return filepath.Join(s.dir, slug(name)+".json")
}

func (s *JSONFileStore) pointerPath() string {
	return filepath.Join(s.dir, "_active.json")
}

func slug(name string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", " ", "_")
	return r.Replace(name)
}

func (s *JSONFileStore) List() ([]models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "read profile directory", err)
	}

	var out []models.Profile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") || entry.Name() == "_active.json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "read profile file", err)
		}
		p, err := decodeProfile(data)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *JSONFileStore) Get(name string) (models.Profile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return models.Profile{}, false, nil
	}
	if err != nil {
		return models.Profile{}, false, gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "read profile file", err)
	}
	p, err := decodeProfile(data)
	return p, true, err
}

func (s *JSONFileStore) Save(p models.Profile) error {
	p.ClampTunables()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(p.Name)
	existing, err := os.ReadFile(path)
	if err != nil {
		existing = []byte("{}")
	}

	doc, err := encodeProfile(string(existing), p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "write profile file", err)
	}
	return nil
}

func (s *JSONFileStore) Delete(name string) error {
	if name == models.DefaultProfileName {
		return gamepadhiderr.New(gamepadhiderr.KindProtectedProfile, "cannot delete the Default profile")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return gamepadhiderr.New(gamepadhiderr.KindProfileNotFound, "profile not found: "+name)
	}
	if err := os.Remove(path); err != nil {
		return gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "remove profile file", err)
	}

	active, _ := s.readActiveLocked()
	if active == name {
		return s.writeActiveLocked(models.DefaultProfileName)
	}
	return nil
}

func (s *JSONFileStore) ActiveName() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readActiveLocked()
}

func (s *JSONFileStore) SetActiveName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path(name)); os.IsNotExist(err) {
		return gamepadhiderr.New(gamepadhiderr.KindProfileNotFound, "profile not found: "+name)
	}
	return s.writeActiveLocked(name)
}

func (s *JSONFileStore) readActiveLocked() (string, error) {
	data, err := os.ReadFile(s.pointerPath())
	if os.IsNotExist(err) {
		return models.DefaultProfileName, nil
	}
	if err != nil {
		return "", gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "read active profile pointer", err)
	}
	name := gjson.GetBytes(data, "activeProfile")
	if !name.Exists() {
		return models.DefaultProfileName, nil
	}
	return name.String(), nil
}

func (s *JSONFileStore) writeActiveLocked(name string) error {
	existing, err := os.ReadFile(s.pointerPath())
	if err != nil {
		existing = []byte("{}")
	}
	doc, err := sjson.Set(string(existing), "activeProfile", name)
	if err != nil {
		return gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "patch active profile pointer", err)
	}
	if err := os.WriteFile(s.pointerPath(), []byte(doc), 0o644); err != nil {
		return gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "write active profile pointer", err)
	}
	return nil
}

// encodeProfile patches p's fields into doc in place with sjson, so any
// keys a newer version wrote and this one does not recognize survive.
// HotkeyBindings is the one nested-struct-slice field; it is marshaled
// separately with encoding/json and spliced in as raw JSON.
func encodeProfile(doc string, p models.Profile) (string, error) {
	bindingsJSON, err := json.Marshal(p.HotkeyBindings)
	if err != nil {
		return "", gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "marshal hotkey bindings", err)
	}

	sets := []struct {
		path string
		val  interface{}
	}{
		{"id", p.ID.String()},
		{"name", p.Name},
		{"description", p.Description},
		{"sensitivity", p.Sensitivity},
		{"deadZone", p.DeadZone},
		{"acceleration", p.Acceleration},
		{"buttonMap", p.ButtonMap},
		{"axisMap", p.AxisMap},
		{"dpadMapping", p.DPadMapping},
		{"features.vibrationEnabled", p.Features.VibrationEnabled},
		{"scroll.speed", p.Scroll.Speed},
		{"scroll.reverseVertical", p.Scroll.ReverseVertical},
		{"scroll.reverseHorizontal", p.Scroll.ReverseHorizontal},
	}
	for _, set := range sets {
		var err error
		doc, err = sjson.Set(doc, set.path, set.val)
		if err != nil {
			return "", gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, fmt.Sprintf("patch profile field %s", set.path), err)
		}
	}
	doc, err = sjson.SetRaw(doc, "hotkeyBindings", string(bindingsJSON))
	if err != nil {
		return "", gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "patch hotkey bindings", err)
	}
	return doc, nil
}

func decodeProfile(data []byte) (models.Profile, error) {
	p := models.DefaultProfile()

	id := gjson.GetBytes(data, "id")
	if id.Exists() {
		if parsed, err := uuid.Parse(id.String()); err == nil {
			p.ID = parsed
		}
	}
	p.Name = stringOr(data, "name", p.Name)
	p.Description = stringOr(data, "description", p.Description)
	p.Sensitivity = floatOr(data, "sensitivity", p.Sensitivity)
	p.DeadZone = floatOr(data, "deadZone", p.DeadZone)
	p.Acceleration = floatOr(data, "acceleration", p.Acceleration)
	p.Features.VibrationEnabled = boolOr(data, "features.vibrationEnabled", p.Features.VibrationEnabled)
	p.Scroll.Speed = floatOr(data, "scroll.speed", p.Scroll.Speed)
	p.Scroll.ReverseVertical = boolOr(data, "scroll.reverseVertical", p.Scroll.ReverseVertical)
	p.Scroll.ReverseHorizontal = boolOr(data, "scroll.reverseHorizontal", p.Scroll.ReverseHorizontal)

	p.ButtonMap = stringMapOr(data, "buttonMap", p.ButtonMap)
	p.AxisMap = stringMapOr(data, "axisMap", p.AxisMap)
	p.DPadMapping = stringMapOr(data, "dpadMapping", p.DPadMapping)

	if raw := gjson.GetBytes(data, "hotkeyBindings"); raw.Exists() {
		var bindings []models.Binding
		if err := json.Unmarshal([]byte(raw.Raw), &bindings); err != nil {
			return models.Profile{}, gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "decode hotkey bindings", err)
		}
		p.HotkeyBindings = bindings
	}

	return p, nil
}

func stringOr(data []byte, path, fallback string) string {
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return fallback
	}
	return res.String()
}

func floatOr(data []byte, path string, fallback float64) float64 {
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return fallback
	}
	return res.Float()
}

func boolOr(data []byte, path string, fallback bool) bool {
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return fallback
	}
	return res.Bool()
}

func stringMapOr(data []byte, path string, fallback map[string]string) map[string]string {
	res := gjson.GetBytes(data, path)
	if !res.IsObject() {
		return fallback
	}
	out := map[string]string{}
	res.ForEach(func(key, value gjson.Result) bool {
		out[key.String()] = value.String()
		return true
	})
	return out
}

var _ Store = (*JSONFileStore)(nil)
