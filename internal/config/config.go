// Package config holds the node API configuration.
package config

import (
	"encoding/json"
	"fmt"
	"time"
)

// Version is reported through api_getconfig.
const Version = "1.2.0"

// Config is parsed from flags/environment by the entrypoints. The JSON tags
// define the key set echoed to clients by api_getconfig.
type Config struct {
	ListenAddr     string        `long:"listen-addr" env:"NODEAPI_LISTEN_ADDR" default:":5658" description:"client command listener address" json:"listen_addr"`
	OpsAddr        string        `long:"ops-addr" env:"NODEAPI_OPS_ADDR" default:":8300" description:"metrics/ops HTTP address" json:"ops_addr"`
	LedgerPath     string        `long:"ledger-path" env:"NODEAPI_LEDGER_PATH" default:"data/ledger.db" description:"ledger database file" json:"ledger_path"`
	MempoolPath    string        `long:"mempool-path" env:"NODEAPI_MEMPOOL_PATH" default:"data/mempool.db" description:"mempool database file" json:"mempool_path"`
	LegacyDB       bool          `long:"legacy-db" env:"NODEAPI_LEGACY_DB" description:"ledger uses the legacy decimal-string encoding" json:"legacy_db"`
	SessionTimeout time.Duration `long:"session-timeout" env:"NODEAPI_SESSION_TIMEOUT" default:"45s" description:"per-frame session I/O deadline" json:"session_timeout"`
	CommandRate    int           `long:"command-rate" env:"NODEAPI_COMMAND_RATE" default:"50" description:"max commands per second per session" json:"command_rate"`
	SeedPeers      []string      `long:"peer" env:"NODEAPI_PEERS" env-delim:"," description:"initial consensus peer addresses" json:"peers"`
	Version        string        `json:"version"`
}

// Map renders the configuration as the key/value form sent to clients. The
// receiver is shared by every serving goroutine and is never written here;
// the version stamp goes onto a local copy.
func (c *Config) Map() (map[string]any, error) {
	snapshot := *c
	snapshot.Version = Version
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	out := make(map[string]any)
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return out, nil
}
