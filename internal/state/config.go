package state

import (
	"path/filepath"
	"sync"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"

	"github.com/ckos/ckos/helpers"
	"github.com/ckos/ckos/log2"
)

type Config struct {
	// includeSeen contains absolute paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []ConfigSource `hcl:"include"`

	Persist struct {
		Root string `hcl:"root"`
	} `hcl:"persist"`

	Hardware struct {
		Display struct {
			Codepage string `hcl:"codepage"`
			Width    int    `hcl:"width"`
			Height   int    `hcl:"height"`
		} `hcl:"display"`

		Input struct {
			DevInputEvent struct {
				Enable bool   `hcl:"enable"`
				Device string `hcl:"device"`
			} `hcl:"dev_input_event"`
			Gpio struct {
				Enable bool   `hcl:"enable"`
				Chip   string `hcl:"chip"`
				Pinmap PinMap `hcl:"pinmap"`
			} `hcl:"gpio"`
		} `hcl:"input"`

		Lock struct {
			Enable bool   `hcl:"enable"`
			Chip   string `hcl:"chip"`
			Line   uint32 `hcl:"line"`
		} `hcl:"lock"`
	} `hcl:"hardware"`

	App struct {
		DebounceMs    uint32   `hcl:"debounce_ms"`
		IdleTimeoutMs uint32   `hcl:"idle_timeout_ms"`
		DeviceSerial  string   `hcl:"device_serial"`
		MenuItems     []string `hcl:"menu_items"`
		SettingsItems []string `hcl:"settings_items"`
		MaxVisible    int      `hcl:"max_visible"`
	} `hcl:"app"`

	Sched struct {
		HardwareIntervalMs int `hcl:"hardware_interval_ms"`
		LogicIntervalMs    int `hcl:"logic_interval_ms"`
		DisplayIntervalMs  int `hcl:"display_interval_ms"`
	} `hcl:"sched"`

	_copy_guard sync.Mutex //nolint:unused
}

// PinMap binds the six buttons to GPIO line offsets.
type PinMap struct {
	Up    uint32 `hcl:"up"`
	Down  uint32 `hcl:"down"`
	Left  uint32 `hcl:"left"`
	Right uint32 `hcl:"right"`
	A     uint32 `hcl:"a"`
	B     uint32 `hcl:"b"`
}

type ConfigSource struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

func (c *Config) read(log *log2.Log, fs FullReader, source ConfigSource, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		log.Fatalf("config duplicate source=%s", source.Name)
	} else {
		log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	}
	c.includeSeen[source.Name] = struct{}{}
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			err = errors.NotFoundf("config required name=%s path=%s", source.Name, norm)
			*errs = append(*errs, err)
			return
		}
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}

	err = hcl.Unmarshal(bs, c)
	if err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s content='%s'", source.Name, string(bs))
		*errs = append(*errs, err)
		return
	}

	var includes []ConfigSource
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			err = errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name)
			*errs = append(*errs, err)
			continue
		}
		c.read(log, fs, include, errs)
	}
}

func ReadConfig(log *log2.Log, fs FullReader, names ...string) (*Config, error) {
	if len(names) == 0 {
		log.Fatal("code error [Must]ReadConfig() without names")
	}

	if osfs, ok := fs.(*OsFullReader); ok {
		dir, name := filepath.Split(names[0])
		osfs.SetBase(dir)
		names[0] = name
	}
	c := &Config{
		includeSeen: make(map[string]struct{}),
	}
	errs := make([]error, 0, 8)
	for _, name := range names {
		c.read(log, fs, ConfigSource{Name: name}, &errs)
	}
	return c, helpers.FoldErrors(errs)
}

func MustReadConfig(log *log2.Log, fs FullReader, names ...string) *Config {
	c, err := ReadConfig(log, fs, names...)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}
