package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dsn         string
	cfgFile     string
	driverName  string
	schemaNames []string
)

var RootCmd = &cobra.Command{
	Use:   "laravel-migration",
	Short: "Generate Laravel migrations from a database schema",
	Long: `
  _                             _   __  __ _                 _   _
 | |    __ _ _ __ __ ___   _____| | |  \/  (_) __ _ _ __ __ _| |_(_) ___  _ __
 | |   / _' | '__/ _' \ \ / / _ \ | | |\/| | |/ _' | '__/ _' | __| |/ _ \| '_ \
 | |__| (_| | | | (_| |\ V /  __/ | | |  | | | (_| | | | (_| | |_| | (_) | | | |
 |_____\__,_|_|  \__,_| \_/ \___|_| |_|  |_|_|\__, |_|  \__,_|\__|_|\___/|_| |_|
                                              |___/
Reads tables, indexes and foreign keys from a live database or a catalog
file and writes one Schema::create migration per table, referenced tables
first.
`,
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Define flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./laravel-migration.yaml)")
	RootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Database Source Name (DSN)")
	RootCmd.PersistentFlags().StringVar(&driverName, "driver", "", "database/sql driver (mysql, postgres, pgx, sqlserver, oracle, sqlite)")
	RootCmd.PersistentFlags().StringSliceVar(&schemaNames, "schema", []string{}, "Schemas to read (default: the connection's current schema)")

	// Bind flags to viper
	viper.BindPFlag("database.dsn", RootCmd.PersistentFlags().Lookup("dsn"))
	viper.BindPFlag("database.driver", RootCmd.PersistentFlags().Lookup("driver"))

	viper.SetDefault("settings.default_engine", "InnoDB")
	viper.SetDefault("settings.charset_bytes", 4)
}

// initConfig reads in .env, config file and ENV variables if set.
func initConfig() {
	// A missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("laravel-migration")
		viper.SetConfigType("yaml")
	}

	// DATABASE_DSN, SETTINGS_OUTPUT_DIR, ...
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
