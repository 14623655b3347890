package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// envPrefix prefixes the environment variables that override flags.
const envPrefix = "TOSQL"

// LoadConfig loads configuration from the --config file and environment.
// Flags set on the command line take precedence over both.
func LoadConfig(v *viper.Viper) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

// SetupLogging creates the logger used by the commands. Logs go to out so
// they never mix with query results.
func SetupLogging(v *viper.Viper, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger, nil
}

// splitColumns parses the comma separated --cols value.
func splitColumns(cols string) []string {
	if strings.TrimSpace(cols) == "" {
		return nil
	}
	parts := strings.Split(cols, ",")
	columns := make([]string, 0, len(parts))
	for _, part := range parts {
		columns = append(columns, strings.TrimSpace(part))
	}
	return columns
}
