// Package config loads the solrq configuration file.
//
// The file is TOML:
//
//	[solr]
//	protocol = "https"
//	host = "solr.internal"
//	port = 8983
//	core = "products"
//
//	[client]
//	timeout = "10s"
//	rate_limit = 20
//	burst = 5
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/adamwoolhether/solrnode/client"
)

// File is the content of a configuration file.
type File struct {
	Solr   Solr   `toml:"solr"`
	Client Client `toml:"client"`
}

// Solr locates the core.
type Solr struct {
	Protocol string `toml:"protocol,omitempty"`
	Host     string `toml:"host,omitempty"`
	Port     int    `toml:"port,omitempty"`
	Core     string `toml:"core,omitempty"`
	RootPath string `toml:"root_path,omitempty"`
	User     string `toml:"user,omitempty"`
	Password string `toml:"password,omitempty"`
}

// Client tunes the HTTP client.
type Client struct {
	Timeout   string `toml:"timeout,omitempty"`
	UserAgent string `toml:"user_agent,omitempty"`
	RateLimit int    `toml:"rate_limit,omitempty"`
	Burst     int    `toml:"burst,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() File {
	def := client.DefaultConfig()

	return File{
		Solr: Solr{
			Protocol: def.Protocol,
			Host:     def.Host,
			RootPath: def.RootPath,
		},
	}
}

// DefaultPath is config.toml in the solrq directory of the user
// configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}

	return filepath.Join(dir, "solrq", "config.toml"), nil
}

// Load reads path over the defaults. An empty path loads the file at
// [DefaultPath] when it exists.
func Load(path string) (File, error) {
	f := Default()

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			return f, nil
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return File{}, fmt.Errorf("reading config: %w", err)
	}

	d := toml.NewDecoder(bytes.NewReader(b))
	d.DisallowUnknownFields()
	if err := d.Decode(&f); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return File{}, fmt.Errorf("decoding %s at %d:%d: %w", path, row, col, err)
		}
		return File{}, fmt.Errorf("decoding %s: %w", path, err)
	}

	return f, nil
}

// Encode renders f as TOML, masking the password.
func (f File) Encode() ([]byte, error) {
	if f.Solr.Password != "" {
		f.Solr.Password = "xxxxx"
	}

	b, err := toml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}

	return b, nil
}

// ClientConfig maps the [solr] table onto a client location.
func (f File) ClientConfig() client.Config {
	return client.Config{
		Protocol: f.Solr.Protocol,
		Host:     f.Solr.Host,
		Port:     f.Solr.Port,
		Core:     f.Solr.Core,
		RootPath: f.Solr.RootPath,
		User:     f.Solr.User,
		Password: f.Solr.Password,
	}
}

// Options returns the client options described by f.
func (f File) Options() ([]client.Option, error) {
	opts := []client.Option{client.WithConfig(f.ClientConfig())}

	if f.Client.Timeout != "" {
		d, err := time.ParseDuration(f.Client.Timeout)
		if err != nil {
			return nil, fmt.Errorf("client.timeout: %w", err)
		}
		opts = append(opts, client.WithTimeout(d))
	}

	if f.Client.UserAgent != "" {
		opts = append(opts, client.WithUserAgent(f.Client.UserAgent))
	}

	if f.Client.RateLimit > 0 {
		burst := f.Client.Burst
		if burst <= 0 {
			burst = 1
		}
		opts = append(opts, client.WithThrottle(f.Client.RateLimit, burst))
	}

	return opts, nil
}
