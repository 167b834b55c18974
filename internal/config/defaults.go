package config

import "github.com/spf13/viper"

const (
	// DefaultSVTDuration is the duration a quick-logged SVT episode gets.
	DefaultSVTDuration = "1 minute"
	// DefaultMedicationDosage is the dosage a quick-logged medication gets.
	DefaultMedicationDosage = "1/2 tablet"
)

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendJSON,
			Path:    "~/.wlog/data",
		},
		Log: LogConfig{
			Level:      "WARN",
			TimeFormat: "2006-01-02 15:04:05",
			File:       "",
			NoColor:    false,
			JSON:       false,
			Rotation: RotationConfig{
				MaxSize:    16,
				MaxBackups: 3,
				MaxAge:     30,
				Compress:   false,
			},
		},
		Presets: PresetsConfig{
			SVTDuration:      DefaultSVTDuration,
			MedicationDosage: DefaultMedicationDosage,
		},
	}
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("storage.backend", defaults.Storage.Backend)
	v.SetDefault("storage.path", defaults.Storage.Path)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.time_format", defaults.Log.TimeFormat)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.no_color", defaults.Log.NoColor)
	v.SetDefault("log.json", defaults.Log.JSON)
	v.SetDefault("log.rotation.max_size", defaults.Log.Rotation.MaxSize)
	v.SetDefault("log.rotation.max_backups", defaults.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age", defaults.Log.Rotation.MaxAge)
	v.SetDefault("log.rotation.compress", defaults.Log.Rotation.Compress)

	v.SetDefault("presets.svt_duration", defaults.Presets.SVTDuration)
	v.SetDefault("presets.medication_dosage", defaults.Presets.MedicationDosage)
}
