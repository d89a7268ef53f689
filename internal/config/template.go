package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

const templateHeader = `# capri configuration
#
# Precedence: flag > CAPRI_* environment variable > this file > default.
#   root        CAPRI_ROOT         directory module references resolve against
#   extension   CAPRI_EXTENSION    appended to references without an extension
#   async       CAPRI_ASYNC        load modules through the asynchronous host
#   maxFetches  CAPRI_MAX_FETCHES  concurrent fetches when async is on
#   log.timestamps CAPRI_LOG_TIMESTAMPS

`

// RenderTemplate renders cfg as a commented YAML config file.
func RenderTemplate(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(templateHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("rendering config template: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("rendering config template: %w", err)
	}
	return buf.Bytes(), nil
}
