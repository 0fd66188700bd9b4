package config

// Governance selects protocol-level knobs that are fixed for the lifetime of a
// store.
type Governance struct {
	// Hasher names the commitment digest: keccak256, blake3 or sha256.
	Hasher string `toml:"Hasher"`
	// DelegationDepth is written at genesis when no GenesisFile is set.
	DelegationDepth uint32 `toml:"DelegationDepth"`
}

// Logging configures the structured JSON logger.
type Logging struct {
	Service     string `toml:"Service"`
	Environment string `toml:"Environment"`
	Level       string `toml:"Level"`
	// File switches output to a size-rotated file.
	File       string `toml:"File"`
	MaxSizeMB  int    `toml:"MaxSizeMB"`
	MaxBackups int    `toml:"MaxBackups"`
}

// Telemetry configures the OTLP/HTTP exporters.
type Telemetry struct {
	Traces   bool   `toml:"Traces"`
	Metrics  bool   `toml:"Metrics"`
	Endpoint string `toml:"Endpoint"`
	Insecure bool   `toml:"Insecure"`
	// Headers is a comma separated key=value list.
	Headers string `toml:"Headers"`
}

// Enabled reports whether any exporter is requested.
func (t Telemetry) Enabled() bool { return t.Traces || t.Metrics }
