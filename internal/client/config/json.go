package config

import (
	"encoding/json"
	"os"

	"github.com/imironov/notekeeper/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After parsing,
// values are copied into the runtime Config.
type JsonConfig struct {
	ServerEndpointAddr string `json:"server_endpoint_addr"`
	CacheFile          string `json:"cache_file"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path is taken from the -c or -config flags; when neither is set, nothing is
// loaded. Only keys present in the file override the current values. If the
// file cannot be read or contains invalid JSON, the function panics.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = c.ServerEndpointAddr
	}
	if c.CacheFile != "" {
		cfg.CacheFile = c.CacheFile
	}
}
