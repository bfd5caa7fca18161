package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Route-set profiles.
const (
	ProfileFull  = "full"
	ProfileRelay = "relay"
)

// Access point names used when wifi.ap_ssid is not set.
const (
	defaultFullAPSSID  = "ESP-WIFI-MANAGER"
	defaultRelayAPSSID = "ConfigureDevice"
)

// EnvPrefix prefixes environment overrides, e.g. IRRIGATOR_WIFI_CONNECT_TIMEOUT.
const EnvPrefix = "IRRIGATOR"

type Config struct {
	Port      string          `mapstructure:"port"`
	Profile   string          `mapstructure:"profile"`
	Log       LogConfig       `mapstructure:"log"`
	Storage   StorageConfig   `mapstructure:"storage"`
	DB        DBConfig        `mapstructure:"db"`
	WiFi      WiFiConfig      `mapstructure:"wifi"`
	Provision ProvisionConfig `mapstructure:"provision"`
	Readings  ReadingsConfig  `mapstructure:"readings"`
	Relay     RelayConfig     `mapstructure:"relay"`
	Indicator IndicatorConfig `mapstructure:"indicator"`
	OTA       OTAConfig       `mapstructure:"ota"`
	MDNS      MDNSConfig      `mapstructure:"mdns"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type StorageConfig struct {
	// Dir is the root the credential files live under.
	Dir string `mapstructure:"dir"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type WiFiConfig struct {
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	Gateway        string        `mapstructure:"gateway"`
	Subnet         string        `mapstructure:"subnet"`
	APSSID         string        `mapstructure:"ap_ssid"`
	// SimulatedNetworks are the networks reachable by the host radio. Viper
	// lowercases map keys and network names are case-sensitive.
	SimulatedNetworks []SimulatedNetwork `mapstructure:"simulated_networks"`
	SimulatedDelay    time.Duration      `mapstructure:"simulated_delay"`
}

type SimulatedNetwork struct {
	SSID       string `mapstructure:"ssid"`
	Passphrase string `mapstructure:"passphrase"`
}

// Networks returns the simulated networks keyed by their exact name.
func (w WiFiConfig) Networks() map[string]string {
	m := make(map[string]string, len(w.SimulatedNetworks))
	for _, n := range w.SimulatedNetworks {
		m[n.SSID] = n.Passphrase
	}
	return m
}

type ProvisionConfig struct {
	RebootDelay time.Duration `mapstructure:"reboot_delay"`
}

type ReadingsConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	// Fallback values substitute channels the sensors cannot provide.
	Fallback map[string]float64 `mapstructure:"fallback"`
}

type RelayConfig struct {
	Port           string        `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Pins           []int         `mapstructure:"pins"`
}

type IndicatorConfig struct {
	Red   int `mapstructure:"red"`
	Green int `mapstructure:"green"`
	Blue  int `mapstructure:"blue"`
}

type OTAConfig struct {
	Port string `mapstructure:"port"`
	// SecretHash is the bcrypt hash of the update secret. Empty disables
	// the update channel.
	SecretHash string        `mapstructure:"secret_hash"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	StagingDir string        `mapstructure:"staging_dir"`
}

type MDNSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Instance string `mapstructure:"instance"`
}

// flagKeys maps CLI flag names onto config keys.
var flagKeys = map[string]string{
	"port":        "port",
	"profile":     "profile",
	"log-level":   "log.level",
	"storage-dir": "storage.dir",
	"db-path":     "db.path",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "80")
	v.SetDefault("profile", ProfileFull)
	v.SetDefault("log.level", "info")
	v.SetDefault("storage.dir", "data")
	v.SetDefault("db.path", "irrigator.db")

	v.SetDefault("wifi.connect_timeout", 10*time.Second)
	v.SetDefault("wifi.poll_interval", 100*time.Millisecond)
	v.SetDefault("wifi.gateway", "192.168.1.1")
	v.SetDefault("wifi.subnet", "255.255.0.0")
	v.SetDefault("wifi.ap_ssid", "")
	v.SetDefault("wifi.simulated_networks", []SimulatedNetwork{})
	v.SetDefault("wifi.simulated_delay", 500*time.Millisecond)

	v.SetDefault("provision.reboot_delay", 3*time.Second)

	v.SetDefault("readings.interval", 30*time.Second)
	v.SetDefault("readings.fallback", map[string]float64{
		"temperature": 22,
		"humidity":    13,
		"pressure":    54,
	})

	v.SetDefault("relay.port", "8080")
	v.SetDefault("relay.request_timeout", 2*time.Second)
	v.SetDefault("relay.pins", []int{36, 39, 34, 35})

	v.SetDefault("indicator.red", 32)
	v.SetDefault("indicator.green", 33)
	v.SetDefault("indicator.blue", 25)

	v.SetDefault("ota.port", "8266")
	v.SetDefault("ota.secret_hash", "")
	v.SetDefault("ota.token_ttl", 5*time.Minute)
	v.SetDefault("ota.staging_dir", "firmware")

	v.SetDefault("mdns.enabled", true)
	v.SetDefault("mdns.instance", "irrigator")
}

// Load reads the config file (configs/config.yml unless path is set),
// environment overrides and the given flags, in increasing precedence.
// A missing config file is not an error.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %q: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and addresses.
func (c *Config) Validate() error {
	switch c.Profile {
	case ProfileFull, ProfileRelay:
	default:
		return fmt.Errorf("profile %q: must be %q or %q", c.Profile, ProfileFull, ProfileRelay)
	}
	if c.WiFi.ConnectTimeout <= 0 {
		return errors.New("wifi.connect_timeout must be > 0")
	}
	if c.WiFi.PollInterval < 0 {
		return errors.New("wifi.poll_interval must be >= 0")
	}
	if _, err := netip.ParseAddr(c.WiFi.Gateway); err != nil {
		return fmt.Errorf("wifi.gateway: %w", err)
	}
	if _, err := netip.ParseAddr(c.WiFi.Subnet); err != nil {
		return fmt.Errorf("wifi.subnet: %w", err)
	}
	for i, n := range c.WiFi.SimulatedNetworks {
		if n.SSID == "" {
			return fmt.Errorf("wifi.simulated_networks[%d]: ssid is empty", i)
		}
	}
	if c.Readings.Interval <= 0 {
		return errors.New("readings.interval must be > 0")
	}
	if c.Provision.RebootDelay < 0 {
		return errors.New("provision.reboot_delay must be >= 0")
	}
	if len(c.Relay.Pins) == 0 {
		return errors.New("relay.pins must list at least one pin")
	}
	if c.Relay.RequestTimeout <= 0 {
		return errors.New("relay.request_timeout must be > 0")
	}
	return nil
}

// APSSID returns the access point name for the configured profile.
func (c *Config) APSSID() string {
	if c.WiFi.APSSID != "" {
		return c.WiFi.APSSID
	}
	if c.Profile == ProfileRelay {
		return defaultRelayAPSSID
	}
	return defaultFullAPSSID
}

// Gateway returns the parsed gateway address. Validate has checked it.
func (c *Config) Gateway() netip.Addr {
	return netip.MustParseAddr(c.WiFi.Gateway)
}

// Subnet returns the parsed subnet mask. Validate has checked it.
func (c *Config) Subnet() netip.Addr {
	return netip.MustParseAddr(c.WiFi.Subnet)
}
