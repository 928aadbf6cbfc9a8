package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dynfpv/extension/internal/model"
	"github.com/spf13/viper"
)

// FileName is the settings file read from the module folder.
const FileName = "dynfpv.cfg.json"

// StorageConfig selects where vehicle configs live.
type StorageConfig struct {
	Type       string `json:"type" mapstructure:"type"`
	ConfigsDir string `json:"configsDir" mapstructure:"configsDir"`
	Watch      bool   `json:"watch" mapstructure:"watch"`
	SQLitePath string `json:"sqlitePath" mapstructure:"sqlitePath"`
}

// DBConfig addresses the Postgres server.
type DBConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// OTelConfig holds OpenTelemetry log export settings.
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// InfluxConfig holds camera telemetry recording settings.
type InfluxConfig struct {
	Enabled     bool
	Protocol    string
	Host        string
	Port        string
	Token       string
	Org         string
	SampleEvery int
}

// GraylogConfig holds the GELF log sink settings.
type GraylogConfig struct {
	Enabled bool
	Address string
	Level   string
}

// MonitorConfig holds the status monitor settings.
type MonitorConfig struct {
	Enabled  bool
	Interval time.Duration
	DBStats  bool
}

var configFile string

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")

	viper.SetDefault("main.enable", true)

	def := model.DefaultScriptSettings()
	viper.SetDefault("debug.disableRemoveHead", def.DisableRemoveHead)
	viper.SetDefault("debug.disableRemoveProps", def.DisableRemoveProps)
	viper.SetDefault("debug.nearClip.override", def.NearClipOverride)
	viper.SetDefault("debug.nearClip.distance", def.NearClipDistance)
	viper.SetDefault("debug.dof.override", def.DoFOverride)
	viper.SetDefault("debug.dof.nearOut", def.DoFPlanes[0])
	viper.SetDefault("debug.dof.nearIn", def.DoFPlanes[1])
	viper.SetDefault("debug.dof.farIn", def.DoFPlanes[2])
	viper.SetDefault("debug.dof.farOut", def.DoFPlanes[3])

	viper.SetDefault("storage.type", "yaml")
	viper.SetDefault("storage.configsDir", "./Configs")
	viper.SetDefault("storage.watch", true)
	viper.SetDefault("storage.sqlitePath", "./dynfpv.db")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "dynfpv")

	viper.SetDefault("shake.file", "")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "dynfpv")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "dynfpv")
	viper.SetDefault("influx.sampleEvery", 2)

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")
	viper.SetDefault("graylog.level", "warn")

	viper.SetDefault("monitor.enabled", true)
	viper.SetDefault("monitor.interval", "5s")
	viper.SetDefault("monitor.dbStats", false)
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")
	configFile = filepath.Join(configDir, FileName)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

func getFloat32(key string) float32 {
	return float32(viper.GetFloat64(key))
}

// GetScriptSettings returns the global switches of the camera script.
func GetScriptSettings() model.ScriptSettings {
	return model.ScriptSettings{
		Enable:             viper.GetBool("main.enable"),
		DisableRemoveHead:  viper.GetBool("debug.disableRemoveHead"),
		DisableRemoveProps: viper.GetBool("debug.disableRemoveProps"),
		NearClipOverride:   viper.GetBool("debug.nearClip.override"),
		NearClipDistance:   getFloat32("debug.nearClip.distance"),
		DoFOverride:        viper.GetBool("debug.dof.override"),
		DoFPlanes: [4]float32{
			getFloat32("debug.dof.nearOut"),
			getFloat32("debug.dof.nearIn"),
			getFloat32("debug.dof.farIn"),
			getFloat32("debug.dof.farOut"),
		},
	}
}

// SetScriptSettings stores st in memory. SaveScriptSettings persists it.
func SetScriptSettings(st model.ScriptSettings) {
	viper.Set("main.enable", st.Enable)
	viper.Set("debug.disableRemoveHead", st.DisableRemoveHead)
	viper.Set("debug.disableRemoveProps", st.DisableRemoveProps)
	viper.Set("debug.nearClip.override", st.NearClipOverride)
	viper.Set("debug.nearClip.distance", st.NearClipDistance)
	viper.Set("debug.dof.override", st.DoFOverride)
	viper.Set("debug.dof.nearOut", st.DoFPlanes[0])
	viper.Set("debug.dof.nearIn", st.DoFPlanes[1])
	viper.Set("debug.dof.farIn", st.DoFPlanes[2])
	viper.Set("debug.dof.farOut", st.DoFPlanes[3])
}

// SaveScriptSettings stores st and writes the whole configuration back to
// the file Load read.
func SaveScriptSettings(st model.ScriptSettings) error {
	SetScriptSettings(st)
	if configFile == "" {
		return fmt.Errorf("save settings: config not loaded")
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// GetStorageConfig returns the config store settings.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type:       viper.GetString("storage.type"),
		ConfigsDir: viper.GetString("storage.configsDir"),
		Watch:      viper.GetBool("storage.watch"),
		SQLitePath: viper.GetString("storage.sqlitePath"),
	}
}

// GetDBConfig returns the Postgres connection settings.
func GetDBConfig() DBConfig {
	return DBConfig{
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: viper.GetString("db.password"),
		Database: viper.GetString("db.database"),
	}
}

// GetOTelConfig returns the OpenTelemetry settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetInfluxConfig returns the InfluxDB settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:     viper.GetBool("influx.enabled"),
		Protocol:    viper.GetString("influx.protocol"),
		Host:        viper.GetString("influx.host"),
		Port:        viper.GetString("influx.port"),
		Token:       viper.GetString("influx.token"),
		Org:         viper.GetString("influx.org"),
		SampleEvery: viper.GetInt("influx.sampleEvery"),
	}
}

// GetGraylogConfig returns the GELF sink settings.
func GetGraylogConfig() GraylogConfig {
	return GraylogConfig{
		Enabled: viper.GetBool("graylog.enabled"),
		Address: viper.GetString("graylog.address"),
		Level:   viper.GetString("graylog.level"),
	}
}

// GetMonitorConfig returns the status monitor settings.
func GetMonitorConfig() MonitorConfig {
	return MonitorConfig{
		Enabled:  viper.GetBool("monitor.enabled"),
		Interval: viper.GetDuration("monitor.interval"),
		DBStats:  viper.GetBool("monitor.dbStats"),
	}
}
