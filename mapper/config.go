/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package mapper

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"dirpx.dev/apperr/kind"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedConfig is returned by LoadConfig for file extensions other
// than .yaml, .yml and .toml.
var ErrUnsupportedConfig = errors.New("apperr: unsupported mapper config format")

// Config is a file-based rule set. A rule without a reason sets the kind's
// default, or its override when Override is true. A rule with a reason adds
// a prefix rule. Dimensions left unset are not touched.
//
//	rules:
//	  - kind: io
//	    reason: fs.io.read_only
//	    exit: 75
//	    grpc: FAILED_PRECONDITION
//	  - kind: task_join
//	    override: true
//	    exit: 1
type Config struct {
	Rules []Rule `yaml:"rules" toml:"rules"`
}

// Rule is a single entry of Config.
type Rule struct {
	Kind     string `yaml:"kind" toml:"kind"`
	Reason   string `yaml:"reason,omitempty" toml:"reason,omitempty"`
	Override bool   `yaml:"override,omitempty" toml:"override,omitempty"`
	Exit     *int   `yaml:"exit,omitempty" toml:"exit,omitempty"`
	HTTP     *int   `yaml:"http,omitempty" toml:"http,omitempty"`
	// GRPC is a code name such as NOT_FOUND or its number.
	GRPC string `yaml:"grpc,omitempty" toml:"grpc,omitempty"`
}

// LoadConfig reads a rule file, choosing the decoder by extension.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from the operator
	if err != nil {
		return Config{}, fmt.Errorf("read mapper config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	case ".toml":
		return DecodeTOML(data)
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedConfig, filepath.Ext(path))
	}
}

// DecodeYAML parses a YAML rule set. Unknown fields are rejected.
func DecodeYAML(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("parse mapper config yaml: %w", err)
	}
	return cfg, nil
}

// DecodeTOML parses a TOML rule set. Unknown keys are rejected.
func DecodeTOML(data []byte) (Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse mapper config toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("parse mapper config toml: unknown key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Options validates the rules and converts them into mapper options, in
// file order.
func (c Config) Options() ([]Option, error) {
	var opts []Option
	for i, r := range c.Rules {
		ro, err := r.options()
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		opts = append(opts, ro...)
	}
	return opts, nil
}

func (r Rule) options() ([]Option, error) {
	k, err := kind.Parse(r.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRule, err)
	}
	if r.Reason != "" && r.Override {
		return nil, fmt.Errorf("%w: override and reason are exclusive", ErrInvalidRule)
	}
	if r.Exit == nil && r.HTTP == nil && r.GRPC == "" {
		return nil, fmt.Errorf("%w: rule for %q sets no value", ErrInvalidRule, k)
	}

	var opts []Option
	switch {
	case r.Reason != "":
		if r.Exit != nil {
			opts = append(opts, WithExitPrefix(k, r.Reason, *r.Exit))
		}
		if r.HTTP != nil {
			opts = append(opts, WithHTTPPrefix(k, r.Reason, *r.HTTP))
		}
	case r.Override:
		if r.Exit != nil {
			opts = append(opts, WithExitOverride(k, *r.Exit))
		}
		if r.HTTP != nil {
			opts = append(opts, WithHTTPOverride(k, *r.HTTP))
		}
	default:
		if r.Exit != nil {
			opts = append(opts, WithExitDefault(k, *r.Exit))
		}
		if r.HTTP != nil {
			opts = append(opts, WithHTTPDefault(k, *r.HTTP))
		}
	}
	if r.GRPC != "" {
		c, err := ParseCode(r.GRPC)
		if err != nil {
			return nil, err
		}
		switch {
		case r.Reason != "":
			opts = append(opts, WithGRPCPrefix(k, r.Reason, c))
		case r.Override:
			opts = append(opts, WithGRPCOverride(k, c))
		default:
			opts = append(opts, WithGRPCDefault(k, c))
		}
	}
	return opts, nil
}
