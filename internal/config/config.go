package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// AuditConfig holds the tuning knobs for audit alerting and report export.
// Loaded from a TOML file; missing file falls back to defaults so the
// service starts without one.
type AuditConfig struct {
	Alerts  AlertsConfig  `toml:"alerts"`
	Reports ReportsConfig `toml:"reports"`
}

// AlertsConfig contains background scanner settings
type AlertsConfig struct {
	LowStockThreshold int `toml:"low_stock_threshold"`
	StaleAuditHours   int `toml:"stale_audit_hours"`
	ScanIntervalMin   int `toml:"scan_interval_minutes"`
}

// ReportsConfig contains object storage settings for discrepancy reports
type ReportsConfig struct {
	Bucket string `toml:"bucket"`
}

// DefaultAuditConfig returns the built-in defaults.
func DefaultAuditConfig() *AuditConfig {
	return &AuditConfig{
		Alerts: AlertsConfig{
			LowStockThreshold: 10,
			StaleAuditHours:   72,
			ScanIntervalMin:   60,
		},
		Reports: ReportsConfig{
			Bucket: "audit-reports",
		},
	}
}

// LoadAuditConfig reads the TOML config at path, falling back to defaults
// when the file does not exist.
func LoadAuditConfig(path string) (*AuditConfig, error) {
	cfg := DefaultAuditConfig()

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Alerts.ScanIntervalMin <= 0 {
		cfg.Alerts.ScanIntervalMin = 60
	}
	if cfg.Alerts.StaleAuditHours <= 0 {
		cfg.Alerts.StaleAuditHours = 72
	}

	return cfg, nil
}
