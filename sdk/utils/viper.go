// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"

	"github.com/albumpost/albumpost-sdk/sdk/config"
)

// EnvPrefix: optional prefix mirrored onto plain env names (ALBUMPOST_FOO -> FOO)
const EnvPrefix = "ALBUMPOST"

// Settings holds all logical keys. Tags:
// - vkey: Viper key
// - env: canonical env name (UPPER_SNAKE). If empty, derived from vkey
// - persist: "true" to write the key into the INI
// - default: optional default to set if key is unset
// - secret: "true" if sensitive (masked by RedactedSettings)
type Settings struct {
	SourceAccessToken  string `vkey:"source_access_token"   env:"SOURCE_ACCESS_TOKEN"   persist:"false" secret:"true"`
	ImageMaxHeight     string `vkey:"image_max_height"      env:"IMAGE_MAX_HEIGHT"      persist:"true"  default:"1600"`
	ImageMaxWidth      string `vkey:"image_max_width"       env:"IMAGE_MAX_WIDTH"       persist:"true"  default:"1600"`
	StoreBackend       string `vkey:"store_backend"         env:"STORE_BACKEND"         persist:"true"  default:"s3"`
	S3Bucket           string `vkey:"s3_bucket"             env:"S3_BUCKET"             persist:"true"`
	S3KeyPrefix        string `vkey:"s3_key_prefix"         env:"S3_KEY_PREFIX"         persist:"true"`
	S3URLPrefix        string `vkey:"s3_url_prefix"         env:"S3_URL_PREFIX"         persist:"true"`
	AwsRegion          string `vkey:"aws_region"            env:"AWS_REGION"            persist:"true"`
	AwsEndpointURL     string `vkey:"aws_endpoint_url"      env:"AWS_ENDPOINT_URL"      persist:"true"`
	AwsAccessKeyID     string `vkey:"aws_access_key_id"     env:"AWS_ACCESS_KEY_ID"     persist:"true"  secret:"true"`
	AwsSecretAccessKey string `vkey:"aws_secret_access_key" env:"AWS_SECRET_ACCESS_KEY" persist:"true"  secret:"true"`
	AwsSessionToken    string `vkey:"aws_session_token"     env:"AWS_SESSION_TOKEN"     persist:"true"  secret:"true"`
	GhostAdminURL      string `vkey:"ghost_admin_url"       env:"GHOST_ADMIN_API_URL"   persist:"true"`
	GhostAdminAPIKey   string `vkey:"ghost_admin_api_key"   env:"GHOST_ADMIN_API_KEY"   persist:"true"  secret:"true"`
	GhostAPIVersion    string `vkey:"ghost_api_version"     env:"GHOST_API_VERSION"     persist:"true"  default:"v5.0"`
	UnitConcurrency    string `vkey:"unit_concurrency"      env:"UNIT_CONCURRENCY"      persist:"true"  default:"1"`
	ItemConcurrency    string `vkey:"item_concurrency"      env:"ITEM_CONCURRENCY"      persist:"true"  default:"5"`
	ItemInterval       string `vkey:"item_interval"         env:"ITEM_INTERVAL"         persist:"true"  default:"20ms"`
	ItemIntervalCap    string `vkey:"item_interval_cap"     env:"ITEM_INTERVAL_CAP"     persist:"true"  default:"1"`
	StagingDir         string `vkey:"staging_dir"           env:"STAGING_DIR"           persist:"true"`
	LogLevel           string `vkey:"log_level"             env:"LOG_LEVEL"             persist:"true"  default:"info"`
	UpdatedEnvironment string `vkey:"updated_environment"   env:"UPDATED_ENVIRONMENT"   persist:"true"`
}

// resolveEnvName: --env > "default"
func resolveEnvName(optionalEnv ...string) string {
	if len(optionalEnv) > 0 && optionalEnv[0] != "" && strings.ToLower(optionalEnv[0]) != "null" {
		return optionalEnv[0]
	}
	return "default"
}

// mirror PREFIX_FOO -> FOO (optional)
func mirrorPrefix(prefix string) {
	if prefix == "" {
		return
	}
	upPrefix := strings.ToUpper(prefix) + "_"
	for _, e := range os.Environ() {
		name, val, ok := strings.Cut(e, "=")
		if !ok || !strings.HasPrefix(name, upPrefix) {
			continue
		}
		unpref := strings.TrimPrefix(name, upPrefix)
		if os.Getenv(unpref) == "" {
			_ = os.Setenv(unpref, val)
		}
	}
}

// settingsFields calls fn for every tagged field of Settings.
func settingsFields(fn func(f reflect.StructField, key string)) {
	rt := reflect.TypeOf(Settings{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if key := f.Tag.Get("vkey"); key != "" {
			fn(f, key)
		}
	}
}

// BindEnvFromStruct binds env and defaults for all fields of Settings.
func BindEnvFromStruct(prefix string) {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	mirrorPrefix(prefix)

	settingsFields(func(f reflect.StructField, key string) {
		env := f.Tag.Get("env")
		if env == "" {
			env = strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		}
		_ = viper.BindEnv(key, env)

		if def := f.Tag.Get("default"); def != "" {
			viper.SetDefault(key, def)
		}
	})
}

func getIniPath() string {
	iniPath, err := os.UserHomeDir()
	if err != nil {
		iniPath = "."
	}
	return iniPath + string(os.PathSeparator) + IniName
}

// WriteIniFromStruct writes a new INI with only fields marked persist:"true".
func WriteIniFromStruct(iniPath, envName string) error {
	cfg := ini.Empty()
	fillIniSection(cfg, envName)
	return cfg.SaveTo(iniPath)
}

// UpdateIniFromStruct updates or creates the INI section from current Viper
// values (persist:"true" only).
func UpdateIniFromStruct(iniPath, envName string) error {
	cfg, err := ini.Load(iniPath)
	if err != nil {
		return WriteIniFromStruct(iniPath, envName)
	}
	fillIniSection(cfg, envName)
	return cfg.SaveTo(iniPath)
}

func fillIniSection(cfg *ini.File, envName string) {
	if !cfg.Section("DEFAULT").HasKey(CurrentEnvironment) {
		cfg.Section("DEFAULT").Key(CurrentEnvironment).SetValue(envName)
	}
	sec := cfg.Section(envName)
	settingsFields(func(f reflect.StructField, key string) {
		if f.Tag.Get("persist") != "true" {
			return
		}
		if val := viper.GetString(key); val != "" {
			sec.Key(key).SetValue(val)
		}
	})
	sec.Key(UpdatedEnvKey).SetValue(time.Now().UTC().Format(time.RFC3339))
}

// Load [DEFAULT] + [env] into Viper (TOML in-memory). ENV still overrides on Get().
func loadIniSectionIntoViper(cfg *ini.File, env string) error {
	def := cfg.Section("DEFAULT")
	merged := make(map[string]string)
	for _, k := range def.Keys() {
		merged[k.Name()] = k.Value()
	}
	if env != "" && cfg.HasSection(env) {
		for _, k := range cfg.Section(env).Keys() {
			merged[k.Name()] = k.Value()
		}
	}

	var buf bytes.Buffer
	for k, v := range merged {
		vSafe := strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), `"`, `\"`)
		_, _ = fmt.Fprintf(&buf, "%s = \"%s\"\n", k, vSafe)
	}
	viper.SetConfigType("toml")
	return viper.ReadConfig(&buf)
}

// RegisterIniCfgWithViper:
// 1) bind ENV from struct (live)
// 2) load the INI when present (ENV-only mode otherwise)
// 3) load the active section into Viper and set current_environment
func RegisterIniCfgWithViper(optionalEnv ...string) error {
	BindEnvFromStruct(EnvPrefix)

	cfg, err := ini.Load(getIniPath())
	if err != nil {
		viper.Set(CurrentEnvironment, resolveEnvName(optionalEnv...))
		return nil
	}

	// active env: --env > DEFAULT.current_environment > default
	env := resolveEnvName(optionalEnv...)
	if env == "default" {
		if v := cfg.Section("DEFAULT").Key(CurrentEnvironment).String(); v != "" {
			env = v
		}
	}

	if err := loadIniSectionIntoViper(cfg, env); err != nil {
		return fmt.Errorf("failed to load INI into viper: %w", err)
	}
	viper.Set(CurrentEnvironment, env)
	return nil
}

// SaveSettings persists the current settings into the active INI section.
func SaveSettings() (string, error) {
	env := viper.GetString(CurrentEnvironment)
	if env == "" {
		env = resolveEnvName()
	}
	path := getIniPath()
	if err := UpdateIniFromStruct(path, env); err != nil {
		return "", fmt.Errorf("failed to save ini: %w", err)
	}
	return path, nil
}

const redacted = "********"

// RedactedSettings returns every non-empty setting with secrets masked, for
// display.
func RedactedSettings() map[string]string {
	out := map[string]string{}
	settingsFields(func(f reflect.StructField, key string) {
		val := viper.GetString(key)
		if val == "" {
			return
		}
		if f.Tag.Get("secret") == "true" {
			val = redacted
		}
		out[key] = val
	})
	if env := viper.GetString(CurrentEnvironment); env != "" {
		out[CurrentEnvironment] = env
	}
	return out
}

// LoadConfig converts the current Viper state into the SDK configuration.
func LoadConfig() (config.Config, error) {
	conf := config.Default()

	interval, err := time.ParseDuration(viper.GetString(ItemInterval))
	if err != nil {
		return conf, fmt.Errorf("invalid %s: %w", ItemInterval, err)
	}

	var errs []error
	atoi := func(key string) int {
		v, err := parsePositiveInt(viper.GetString(key))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
		}
		return v
	}

	conf.Source = config.SourceConfig{
		MaxHeight: atoi(ImageMaxHeight),
		MaxWidth:  atoi(ImageMaxWidth),
	}
	conf.Store = config.StoreConfig{
		Backend:      viper.GetString(StoreBackend),
		Bucket:       viper.GetString(S3Bucket),
		Region:       viper.GetString(AwsRegion),
		EndpointURL:  viper.GetString(AwsEndpointURL),
		AccessKey:    viper.GetString(AwsAccessKeyID),
		SecretKey:    viper.GetString(AwsSecretAccessKey),
		SessionToken: viper.GetString(AwsSessionToken),
		KeyPrefix:    viper.GetString(S3KeyPrefix),
		URLPrefix:    viper.GetString(S3URLPrefix),
	}
	conf.Ghost = config.GhostConfig{
		AdminURL:    viper.GetString(GhostAdminURL),
		AdminAPIKey: viper.GetString(GhostAdminAPIKey),
		APIVersion:  viper.GetString(GhostAPIVersion),
	}
	conf.Queue = config.QueueConfig{
		UnitConcurrency: atoi(UnitConcurrency),
		ItemConcurrency: atoi(ItemConcurrency),
		Interval:        interval,
		IntervalCap:     atoi(ItemIntervalCap),
	}
	if dir := viper.GetString(StagingDir); dir != "" {
		conf.StagingDir = dir
	}
	return conf, errors.Join(errs...)
}

func parsePositiveInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("%d is not positive", v)
	}
	return v, nil
}
