package config

import "gopkg.in/yaml.v2"

// Default returns the configuration used when a key is not set.
func Default() Config {
	return Config{
		Core: Core{
			RegionSize: "4KB",
			Restore: Restore{
				Confirm: true,
				Verbose: true,
			},
			Empty: Empty{
				Confirm: true,
			},
		},
		Logging: Logging{
			Enabled: true,
			Level:   "info",
			Rotation: Rotation{
				MaxSize:  "10MB",
				MaxFiles: 3,
			},
		},
		List: List{
			Exclude: ExcludeConfig{
				Files: []string{
					// In macOS, .DS_Store is a file that stores custom attributes of its
					// containing folder, such as folder view options, icon positions,
					// and other visual information
					".DS_Store",
				},
				Patterns: []string{},
				Globs:    []string{},
			},
		},
		Cat: Cat{
			SyntaxHighlight: true,
			Colorscheme:     "nord",
		},
	}
}

// DefaultContents renders Default as YAML.
func DefaultContents() string {
	content, _ := yaml.Marshal(Default())
	return string(content)
}
