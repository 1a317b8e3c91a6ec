package config

// Configurator wraps the package level config functions so commands can
// be handed a fake in tests.
type Configurator interface {
	GetDefaultConfigPath() (string, error)
	Parse(string) error
	Get() *Config
}

func New() Configurator {
	return &defaultConfigurator{}
}

// Static returns a Configurator that always yields c and never touches the filesystem.
func Static(c *Config) Configurator {
	return &staticConfigurator{c: c}
}

type defaultConfigurator struct{}

func (c *defaultConfigurator) GetDefaultConfigPath() (string, error) {
	return GetDefaultConfigPath()
}

func (c *defaultConfigurator) Parse(path string) error {
	return Parse(path)
}

func (c *defaultConfigurator) Get() *Config {
	return Get()
}

type staticConfigurator struct {
	c *Config
}

func (s *staticConfigurator) GetDefaultConfigPath() (string, error) {
	return "", nil
}

func (s *staticConfigurator) Parse(string) error {
	return nil
}

func (s *staticConfigurator) Get() *Config {
	if s.c.Remote == nil || s.c.Server == nil {
		d := defaultConfig()
		if s.c.Remote == nil {
			s.c.Remote = d.Remote
		}
		if s.c.Server == nil {
			s.c.Server = d.Server
		}
	}
	return s.c
}
