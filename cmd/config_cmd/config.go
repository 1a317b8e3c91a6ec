package config_cmd

import (
	"hourbox/cmd/cmd_env"
	"hourbox/config"
	L "hourbox/logger"

	"github.com/spf13/cobra"
)

func Command(env *cmd_env.Env) *cobra.Command {
	var showDefault bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the config file location and the effective configuration",
		Long:  usageStr,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showDefault {
				L.Println(config.DumpDefaultConfig())
				return nil
			}
			c := *env.Config()
			if c.Remote != nil {
				remote := *c.Remote
				remote.Token = redact(remote.Token)
				c.Remote = &remote
			}
			if c.Server != nil {
				server := *c.Server
				server.JwtSecret = redact(server.JwtSecret)
				c.Server = &server
			}
			configStr, err := c.ToJson()
			if err != nil {
				return err
			}
			dataDir, err := c.GetDataDir()
			if err != nil {
				return err
			}
			L.Printf("config:   %s\n", env.ConfigPath)
			L.Printf("data dir: %s\n\n", dataDir)
			L.Println(configStr)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showDefault, "default", false, "print the default configuration")
	return cmd
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
