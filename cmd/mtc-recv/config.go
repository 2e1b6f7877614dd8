package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/fjl/midisync/mtc"
	"github.com/pkg/errors"
)

// recvConfig is the configuration of the receiver. It can be loaded from a
// JSON file, and flags given on the command line override file values.
type recvConfig struct {
	Device        string `json:"device"`
	Rate          string `json:"rate"`
	LockFrames    int    `json:"lockFrames"`
	DropOutFrames int    `json:"dropOutFrames"`
}

func defaultConfig() recvConfig {
	p := mtc.DefaultSyncPolicy()
	return recvConfig{LockFrames: p.LockFrames, DropOutFrames: p.DropOutFrames}
}

// loadConfig reads a JSON config file on top of cfg. Fields missing in the
// file keep their value.
func loadConfig(file string, cfg *recvConfig) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "invalid config file %s", file)
	}
	return nil
}

// applyFlags copies explicitly set flags into cfg.
func applyFlags(fs *flag.FlagSet, cfg *recvConfig) {
	fs.Visit(func(f *flag.Flag) {
		getter, ok := f.Value.(flag.Getter)
		if !ok {
			return
		}
		switch f.Name {
		case "dev":
			cfg.Device = getter.Get().(string)
		case "rate":
			cfg.Rate = getter.Get().(string)
		case "lock":
			cfg.LockFrames = getter.Get().(int)
		case "dropout":
			cfg.DropOutFrames = getter.Get().(int)
		}
	})
}

// receiverConfig converts cfg into the receiver configuration.
func (cfg *recvConfig) receiverConfig() (mtc.ReceiverConfig, error) {
	var rc mtc.ReceiverConfig
	if cfg.Rate != "" {
		rate, err := mtc.ParseRate(cfg.Rate)
		if err != nil {
			return rc, err
		}
		rc.LocalRate = rate
	}
	rc.Policy = &mtc.SyncPolicy{LockFrames: cfg.LockFrames, DropOutFrames: cfg.DropOutFrames}
	return rc, nil
}
