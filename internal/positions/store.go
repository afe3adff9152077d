package positions

import (
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"lp_bot/internal/models"
)

// Store persists the ordered position list as a flat JSON file. Saves
// are all-or-nothing: the file is written to a temp path and renamed,
// so a failed save can never truncate the store.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the stored positions. A missing file is an empty list;
// malformed entries are skipped rather than failing the whole load.
func (s *Store) Load() ([]models.Position, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "read %s", s.path)
	}

	var raw []models.Position
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "decode %s", s.path)
	}

	out := make([]models.Position, 0, len(raw))
	for _, p := range raw {
		side, err := models.ParseSide(string(p.Side))
		if err != nil || p.MarketSlug == "" || p.LimitPrice <= 0 || p.LimitPrice >= 1 {
			// Malformed entries are dropped on load; the rest of the
			// file still counts.
			continue
		}
		p.Side = side
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) Save(positions []models.Position) error {
	if positions == nil {
		positions = []models.Position{}
	}
	data, err := sonic.ConfigDefault.MarshalIndent(positions, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode positions")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".positions-*.json")
	if err != nil {
		return errors.Wrap(err, "create temp store")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "write temp store")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "close temp store")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "replace %s", s.path)
	}
	return nil
}
