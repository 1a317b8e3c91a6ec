package serve_cmd

import (
	"fmt"
	"hourbox/auth"
	"hourbox/cmd/cmd_env"
	"hourbox/config"
	L "hourbox/logger"
	"hourbox/server"
	"hourbox/server/store"
	"time"

	"github.com/spf13/cobra"
)

func serverConfig(env *cmd_env.Env) (*config.Server, error) {
	c := env.Config()
	if c.Server == nil {
		return nil, fmt.Errorf("no server section in %s", env.ConfigPath)
	}
	if c.Server.JwtSecret == "" {
		return nil, fmt.Errorf("server.jwt_secret is empty, set it in the config or %s", config.ENV_JWT_SECRET)
	}
	return c.Server, nil
}

func ServeCommand(env *cmd_env.Env) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the remote session store",
		Long:  serveUsageStr,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sc, err := serverConfig(env)
			if err != nil {
				return err
			}
			if listen == "" {
				listen = sc.Listen
			}
			dataDir, err := env.Config().GetDataDir()
			if err != nil {
				return err
			}
			st, err := store.Open(ctx, sc, dataDir)
			if err != nil {
				return fmt.Errorf("could not open %s storage: %w", sc.Storage, err)
			}
			defer st.Close()

			L.Info(fmt.Sprintf("serving %s storage on %s", sc.Storage, listen))
			return server.New(st, sc.JwtSecret, env.Config().TargetHours).Run(ctx, listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on, overrides server.listen")
	return cmd
}

func TokenCommand(env *cmd_env.Env) *cobra.Command {
	var ttlHours int
	cmd := &cobra.Command{
		Use:   "token USER",
		Short: "Mint an access token for USER signed with the server secret",
		Long:  tokenUsageStr,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := serverConfig(env)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("ttl") {
				ttlHours = sc.TokenTTLHours
			}
			if ttlHours <= 0 {
				return fmt.Errorf("token lifetime must be positive, got %dh", ttlHours)
			}
			token, err := auth.GenerateAccessToken(args[0], sc.JwtSecret, time.Duration(ttlHours)*time.Hour)
			if err != nil {
				return err
			}
			L.Println(token)
			return nil
		},
	}
	cmd.Flags().IntVar(&ttlHours, "ttl", 0, "lifetime in hours, defaults to server.token_ttl_hours")
	return cmd
}
