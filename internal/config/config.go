// Package config loads the tunable surface described in the external
// interfaces section of the responder's specification: two JSON descriptor
// directories and the nine timer/limit/identity tunables, plus the admin
// HTTP surface's listen address.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Tunables holds every configuration item in the responder's external
// interface, loaded from a TOML file and overridable by PLDMD_-prefixed
// environment variables via viper.
type Tunables struct {
	PDRDir  string `toml:"pdr_dir"`
	BIOSDir string `toml:"bios_dir"`

	NormalRASEventTimer    time.Duration `toml:"normal_ras_event_timer"`
	CriticalRASEventTimer  time.Duration `toml:"critical_ras_event_timer"`
	PollReqEventTimer      time.Duration `toml:"poll_req_event_timer"`
	NumberOfRequestRetries int           `toml:"number_of_request_retries"`
	ResponseTimeOut        time.Duration `toml:"response_time_out"`
	MaxQueueSize           int           `toml:"max_queue_size"`

	TerminusHandle uint16 `toml:"terminus_handle"`
	TerminusID     uint8  `toml:"terminus_id"`
	BmcMctpEid     uint8  `toml:"bmc_mctp_eid"`

	AdminAddr   string   `toml:"admin_addr"`
	CorsOrigins []string `toml:"cors_origins"`
}

// DefaultTunables returns the tunable set used when a config file is absent,
// mirroring the constants named in the specification's tunable table.
func DefaultTunables() Tunables {
	return Tunables{
		PDRDir:                 "/etc/pldmd/pdr",
		BIOSDir:                "/etc/pldmd/bios",
		NormalRASEventTimer:    5 * time.Second,
		CriticalRASEventTimer:  1 * time.Second,
		PollReqEventTimer:      500 * time.Millisecond,
		NumberOfRequestRetries: 2,
		ResponseTimeOut:        1 * time.Second,
		MaxQueueSize:           16,
		TerminusHandle:         1,
		TerminusID:             1,
		BmcMctpEid:             8,
		AdminAddr:              ":9200",
		CorsOrigins:            []string{"http://localhost:3000"},
	}
}

// Load reads a TOML tunables file at path, falling back to defaults for any
// unset field, then layers PLDMD_-prefixed environment overrides on top via
// viper, and validates the result. An empty or missing path is not an
// error; defaults and environment overrides still apply.
func Load(path string) (Tunables, error) {
	cfg := DefaultTunables()
	if path != "" {
		if err := loadToml(path, &cfg); err != nil {
			return Tunables{}, err
		}
	}
	applyEnvOverrides(&cfg)
	if err := Validate(cfg); err != nil {
		return Tunables{}, err
	}
	return cfg, nil
}

func loadToml(path string, out *Tunables) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

// applyEnvOverrides binds each tunable to a PLDMD_-prefixed environment
// variable through viper, so operators can override the file without
// editing it (the "environment / compile" tunable surface in §6).
func applyEnvOverrides(cfg *Tunables) {
	v := viper.New()
	v.SetEnvPrefix("PLDMD")
	v.AutomaticEnv()

	bind := func(key string, dst *string) {
		if val := v.GetString(key); val != "" {
			*dst = val
		}
	}
	bindDuration := func(key string, dst *time.Duration) {
		if val := v.GetString(key); val != "" {
			if d, err := time.ParseDuration(val); err == nil {
				*dst = d
			}
		}
	}
	bindInt := func(key string, dst *int) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}

	bind("PDR_DIR", &cfg.PDRDir)
	bind("BIOS_DIR", &cfg.BIOSDir)
	bind("ADMIN_ADDR", &cfg.AdminAddr)
	bindDuration("NORMAL_RAS_EVENT_TIMER", &cfg.NormalRASEventTimer)
	bindDuration("CRITICAL_RAS_EVENT_TIMER", &cfg.CriticalRASEventTimer)
	bindDuration("POLL_REQ_EVENT_TIMER", &cfg.PollReqEventTimer)
	bindDuration("RESPONSE_TIME_OUT", &cfg.ResponseTimeOut)
	bindInt("NUMBER_OF_REQUEST_RETRIES", &cfg.NumberOfRequestRetries)
	bindInt("MAX_QUEUE_SIZE", &cfg.MaxQueueSize)

	if v.IsSet("TERMINUS_HANDLE") {
		cfg.TerminusHandle = uint16(v.GetInt("TERMINUS_HANDLE"))
	}
	if v.IsSet("TERMINUS_ID") {
		cfg.TerminusID = uint8(v.GetInt("TERMINUS_ID"))
	}
	if v.IsSet("BMC_MCTP_EID") {
		cfg.BmcMctpEid = uint8(v.GetInt("BMC_MCTP_EID"))
	}
}

// Validate rejects zero/negative timers, a missing terminus identity, or
// missing descriptor directories.
func Validate(cfg Tunables) error {
	if strings.TrimSpace(cfg.PDRDir) == "" {
		return fmt.Errorf("config: pdr_dir is required")
	}
	if strings.TrimSpace(cfg.BIOSDir) == "" {
		return fmt.Errorf("config: bios_dir is required")
	}
	if cfg.NormalRASEventTimer <= 0 {
		return fmt.Errorf("config: normal_ras_event_timer must be positive")
	}
	if cfg.CriticalRASEventTimer <= 0 {
		return fmt.Errorf("config: critical_ras_event_timer must be positive")
	}
	if cfg.PollReqEventTimer <= 0 {
		return fmt.Errorf("config: poll_req_event_timer must be positive")
	}
	if cfg.ResponseTimeOut <= 0 {
		return fmt.Errorf("config: response_time_out must be positive")
	}
	if cfg.NumberOfRequestRetries < 0 {
		return fmt.Errorf("config: number_of_request_retries must be >= 0")
	}
	if cfg.MaxQueueSize <= 0 {
		return fmt.Errorf("config: max_queue_size must be positive")
	}
	if cfg.TerminusID == 0 {
		return fmt.Errorf("config: terminus_id must be non-zero")
	}
	if strings.TrimSpace(cfg.AdminAddr) == "" {
		return fmt.Errorf("config: admin_addr is required")
	}
	return nil
}
