package htmlinline

import "github.com/alnah/go-htmlinline/internal/config"

// Config is the YAML configuration document. See DefaultConfig for the
// values used when a field is absent.
//
//	scripts:
//	  rewriteRegexLiterals: true
//	  dropAttributes: [defer]
//	styles:
//	  rewriteURLs: true
//	  minify: false
//	mimeTypes:
//	  avif: image/avif
//	remote:
//	  enabled: false
//	  timeout: 30s
//	  maxBytes: 10485760
//	  concurrency: 4
//	log:
//	  level: info
type Config = config.Config

// Config sections.
type (
	ScriptsConfig = config.ScriptsConfig
	StylesConfig  = config.StylesConfig
	RemoteConfig  = config.RemoteConfig
	LogConfig     = config.LogConfig
)

// DefaultConfig returns the configuration NewInliner uses without options.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig loads configuration from a file path or config name.
// A name is searched as name.yaml and name.yml in the working directory,
// then in the user config directory under go-htmlinline/.
// Unknown keys are rejected; absent keys keep their default values.
func LoadConfig(nameOrPath string) (*Config, error) {
	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		return nil, convertError(err)
	}
	return cfg, nil
}
