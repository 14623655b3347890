package commands

import (
	"github.com/nao1215/tosql"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand builds the tosql command. Every call has its own
// configuration, so commands can be built and run side by side.
func NewRootCommand(version string) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "tosql [flags] [SQL]",
		Short: "Run SQL over CSV, JSON lines or column-aligned text",
		Long: `tosql reads tabular input, guesses its format when no file extension
declares it, loads it into an in-memory SQLite database and prints the
query result, one JSON object per line by default.

The first input is table a, the second b, and so on. Without --input the
table is read from standard input:

  ls -l | tosql --auto "SELECT c_i, c_e FROM a ORDER BY c_e DESC"
  tosql -i orders.csv -i customers.json "SELECT * FROM a JOIN b ON a.customer = b.id"`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd, v, args)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayP("input", "i", []string{tosql.StdinName}, "Input file, repeat for more tables; - is stdin")
	flags.StringP("output", "o", "", "Output file, default stdout")
	flags.StringP("sql-file", "f", "", "File containing the SQL query")
	flags.StringP("cols", "c", "", "Column names, comma separated")
	flags.Bool("auto", false, "Autogenerate column names: c_a c_b c_c ...")
	flags.StringP("delimiter", "d", "", `Field delimiter of delimited input, \t for tab`)
	flags.String("format", tosql.OutputFormatJSON.String(), "Output format (json, csv, tsv, ltsv, parquet, xlsx)")
	flags.Int64("max-input-bytes", tosql.DefaultMaxInputBytes, "Maximum bytes buffered per input")
	flags.Bool("save", false, "Save the first input table to a SQLite file")
	flags.String("save-path", tosql.DefaultPersistPath, "Database file written by --save")
	flags.StringP("table-name", "t", "a", "Table name used by --save")
	flags.String("config", "", "Configuration file path")
	flags.String("log-level", "warn", "Logging level (debug, info, warn, error)")

	// Bind flags to viper
	_ = v.BindPFlags(flags)

	return cmd
}
