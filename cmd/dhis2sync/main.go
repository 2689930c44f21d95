package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iupui-soic/dhis2-android-sdk/internal/config"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cmd := newRootCmd()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dhis2sync",
		Short:   "dhis2sync keeps a local record store in sync with a remote DHIS2 web API",
		Version: version(),
	}

	cmd.PersistentFlags().String("base-url", "", "root URL of the remote server instance")
	cmd.PersistentFlags().String("username", "", "basic auth username")
	cmd.PersistentFlags().String("password", "", "basic auth password")
	cmd.PersistentFlags().String("db", "", "path to the local sqlite database")
	cmd.PersistentFlags().String("config", "", "path to a JSON configuration file")
	cmd.PersistentFlags().StringSlice("programs", nil, "program uids assigned to this client")

	cmd.AddCommand(newPullCmd())
	cmd.AddCommand(newPushCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newDaemonCmd())

	return cmd
}

// loadConfig turns the persistent flags into an override config and merges
// it between the environment and the optional JSON file.
func loadConfig(cmd *cobra.Command) (*config.ClientConfig, error) {
	flags := cmd.Flags()

	baseURL, _ := flags.GetString("base-url")
	username, _ := flags.GetString("username")
	password, _ := flags.GetString("password")
	dsn, _ := flags.GetString("db")
	jsonPath, _ := flags.GetString("config")
	programs, _ := flags.GetStringSlice("programs")

	override := &config.ClientConfig{
		Adapter: config.ClientAdapter{
			BaseURL:  baseURL,
			Username: username,
			Password: password,
		},
		Storage:      config.ClientStorage{DB: config.ClientDB{DSN: dsn}},
		Sync:         config.ClientSync{Programs: programs},
		JSONFilePath: jsonPath,
	}

	return config.GetClientConfig(override)
}

func version() string {
	v := buildVersion
	if v == "" {
		v = "N/A"
	}
	return fmt.Sprintf("%s (built %s, commit %s)", v, orNA(buildDate), orNA(buildCommit))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
