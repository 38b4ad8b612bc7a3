package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/codedocs/pkg/models"
	"github.com/mattsolo1/codedocs/pkg/render"
	"github.com/mattsolo1/codedocs/pkg/service"
	"github.com/mattsolo1/codedocs/pkg/workspace"
)

var (
	cfgFile  string
	logLevel string
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "codedocs")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("CODEDOCS")
	viper.AutomaticEnv()

	viper.SetDefault("log_level", "warn")
	viper.SetDefault("data_dir", "")
	viper.SetDefault("new_document_name", workspace.DefaultNewDocumentName)
	viper.SetDefault("watch", true)
	viper.SetDefault("render.highlight_style", "")
	viper.SetDefault("preview.style", "dark")

	// A missing config file is the normal case.
	_ = viper.ReadInConfig()
}

// InitLogger builds the process logger. The --log-level flag wins over the
// config file.
func InitLogger() (*logrus.Logger, error) {
	level := viper.GetString("log_level")
	if logLevel != "" {
		level = logLevel
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(parsed)
	return logger, nil
}

func InitService(logger *logrus.Logger) (*service.Service, error) {
	config := &service.Config{
		DataDir: viper.GetString("data_dir"),
		Logger:  logrus.NewEntry(logger),
	}
	svc, err := service.New(config)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// SessionConfig assembles the workspace session settings from viper.
func SessionConfig(logger *logrus.Logger, picker workspace.FolderPicker) *workspace.Config {
	return &workspace.Config{
		Picker:          picker,
		Pipeline:        Pipeline(),
		Templates:       Templates(),
		NewDocumentName: viper.GetString("new_document_name"),
		Logger:          logrus.NewEntry(logger),
	}
}

// Templates returns the built-in templates merged with the configured ones.
func Templates() []models.Template {
	return models.MergeTemplates(viper.GetStringMapString("templates"))
}

// Pipeline builds the HTML render pipeline from viper settings.
func Pipeline() *render.Pipeline {
	return render.New(render.Options{HighlightStyle: viper.GetString("render.highlight_style")})
}

// PreviewStyle is the glamour style used for terminal previews.
func PreviewStyle() string {
	return viper.GetString("preview.style")
}

// WatchEnabled reports whether front-ends should follow external changes.
func WatchEnabled() bool {
	return viper.GetBool("watch")
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/codedocs/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}
