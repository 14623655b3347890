package commands

import (
	"fmt"
	"os"

	"github.com/nao1215/tosql"
	tosqldriver "github.com/nao1215/tosql/driver"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// defaultQuery is run when neither an argument nor --sql-file is given.
const defaultQuery = "SELECT * FROM a"

// Run parses the inputs, runs the query and writes the result.
func Run(cmd *cobra.Command, v *viper.Viper, args []string) error {
	if err := LoadConfig(v); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := SetupLogging(v, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	query, err := loadQuery(v, args)
	if err != nil {
		return err
	}
	format, err := tosql.ParseOutputFormat(v.GetString("format"))
	if err != nil {
		return err
	}

	hints := tosql.ParseHints{
		Columns:       splitColumns(v.GetString("cols")),
		Auto:          v.GetBool("auto"),
		Delimiter:     v.GetString("delimiter"),
		MaxInputBytes: v.GetInt64("max-input-bytes"),
	}

	ctx := cmd.Context()
	builder := tosql.NewBuilder().WithHints(hints)
	for _, input := range v.GetStringSlice("input") {
		if tosql.IsStdin(input) {
			builder.AddReader(cmd.InOrStdin(), tosql.StdinName)
			continue
		}
		builder.AddPath(input)
	}

	validated, err := builder.Build(ctx)
	if err != nil {
		return err
	}
	for i, table := range validated.Tables() {
		logger.WithFields(logrus.Fields{
			"alias":   tosqldriver.Alias(i),
			"name":    table.Name(),
			"format":  table.Format().String(),
			"rows":    len(table.Rows()),
			"columns": len(table.Header()),
		}).Debug("input parsed")
	}

	result, err := validated.Execute(ctx, query)
	if err != nil {
		return err
	}
	logger.WithField("rows", len(result.Rows())).Debug("query executed")

	if err := writeResult(cmd, v, result, format); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if v.GetBool("save") {
		savePath := v.GetString("save-path")
		tableName := v.GetString("table-name")
		if err := tosql.PersistContext(ctx, validated.Tables()[0], savePath, tableName); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"path":  savePath,
			"table": tableName,
		}).Info("table saved")
	}
	return nil
}

// loadQuery returns the --sql-file content, the SQL argument or the
// default query, in that order of preference.
func loadQuery(v *viper.Viper, args []string) (string, error) {
	if sqlFile := v.GetString("sql-file"); sqlFile != "" {
		content, err := os.ReadFile(sqlFile) //nolint:gosec // the query file is chosen by the user
		if err != nil {
			return "", fmt.Errorf("failed to read SQL file: %w", err)
		}
		return string(content), nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	return defaultQuery, nil
}

// writeResult writes result to --output or stdout. For a file, the
// extension picks the format and compression unless --format is set.
func writeResult(cmd *cobra.Command, v *viper.Viper, result *tosql.Table, format tosql.OutputFormat) error {
	output := v.GetString("output")
	if output == "" {
		return tosql.WriteTable(cmd.OutOrStdout(), result, tosql.NewOutputOptions().WithFormat(format))
	}

	options := tosql.OutputOptionsFromPath(output, format)
	if v.IsSet("format") {
		options = options.WithFormat(format)
	}
	return tosql.WriteFile(output, result, options)
}
