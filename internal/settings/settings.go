package settings

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Values are the runtime-tunable knobs, editable from chat commands and
// persisted between restarts.
type Values struct {
	PollIntervalSeconds int     `mapstructure:"poll_interval_seconds"`
	AlertThresholdCents float64 `mapstructure:"alert_threshold_cents"`
	AddSemantics        string  `mapstructure:"add_semantics"`
}

func Defaults() Values {
	return Values{
		PollIntervalSeconds: 30,
		AlertThresholdCents: 1.0,
		AddSemantics:        "upsert",
	}
}

// Store keeps Values in a JSON file via viper. Reads never fail: a
// missing or broken file yields defaults.
type Store struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string
	cur  Values
}

func NewStore(path string) *Store {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	d := Defaults()
	v.SetDefault("poll_interval_seconds", d.PollIntervalSeconds)
	v.SetDefault("alert_threshold_cents", d.AlertThresholdCents)
	v.SetDefault("add_semantics", d.AddSemantics)

	s := &Store{v: v, path: path, cur: d}
	if err := v.ReadInConfig(); err == nil {
		var loaded Values
		if err := v.Unmarshal(&loaded); err == nil {
			s.cur = sanitize(loaded)
		}
	}
	return s
}

func sanitize(v Values) Values {
	d := Defaults()
	if v.PollIntervalSeconds < 5 {
		v.PollIntervalSeconds = d.PollIntervalSeconds
	}
	if v.AlertThresholdCents <= 0 {
		v.AlertThresholdCents = d.AlertThresholdCents
	}
	if v.AddSemantics != "upsert" && v.AddSemantics != "strict" {
		v.AddSemantics = d.AddSemantics
	}
	return v
}

func (s *Store) Get() Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

func (s *Store) Save(vals Values) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	vals = sanitize(vals)
	s.v.Set("poll_interval_seconds", vals.PollIntervalSeconds)
	s.v.Set("alert_threshold_cents", vals.AlertThresholdCents)
	s.v.Set("add_semantics", vals.AddSemantics)

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create settings dir")
		}
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return errors.Wrap(err, "write settings")
	}
	s.cur = vals
	return nil
}

func (s *Store) SetThreshold(cents float64) error {
	v := s.Get()
	v.AlertThresholdCents = cents
	return s.Save(v)
}

func (s *Store) SetInterval(seconds int) error {
	v := s.Get()
	v.PollIntervalSeconds = seconds
	return s.Save(v)
}

func (s *Store) SetAddSemantics(mode string) error {
	v := s.Get()
	v.AddSemantics = mode
	return s.Save(v)
}
