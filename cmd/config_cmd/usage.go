package config_cmd

const usageStr string = `
CONFIGURATION
    The configuration file is a JSON file holding storage limits, the remote
    session store and the settings of 'hourbox serve'. You could have different
    config.json files for different usecases and pick one with --config.

    When you first run hourbox, a default config is created at
    '~/.config/hourbox/config.json'. Secrets can stay out of it: a .env file
    next to the config and the process environment are read on every start.

SAMPLE CONFIG

        {
            "target_hours": 500,
            "max_upload_size": "200 MiB",
            "metadata_quota": "5 MiB",
            "remote": {
                "enabled": true,
                "url": "http://localhost:5000",
                "timeout_seconds": 10
            },
            "server": {
                "listen": ":5000",
                "storage": "sqlite",
                "token_ttl_hours": 24
            }
        }

OPTIONS
    data_dir
        Where the local database lives. Defaults to the config directory.

    target_hours
        Hour target shown by 'hourbox stats' until one is set with
        'hourbox stats --set-target'.

    max_upload_size, metadata_quota
        Sizes as numbers of bytes or strings such as "200 MiB".

    remote.enabled, remote.url, remote.token, remote.timeout_seconds
        The remote session store. Without it hourbox works offline only.
        Env: HOURBOX_REMOTE_URL (also enables the remote), HOURBOX_TOKEN

    server.listen, server.storage, server.dsn, server.redis_url,
    server.jwt_secret, server.token_ttl_hours
        Settings for 'hourbox serve'. storage is one of sqlite, postgres, redis.
        Env: HOURBOX_DATABASE_URL, HOURBOX_REDIS_URL, HOURBOX_JWT_SECRET
`
