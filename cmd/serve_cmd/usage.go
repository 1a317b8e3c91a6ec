package serve_cmd

const serveUsageStr string = `
DESCRIPTION
Runs the remote session store that 'hourbox sync' and every other command
talk to when remote.enabled is set. Each user, identified by the subject of
their access token, has one session document.

ENDPOINTS
    GET  /health        liveness, no token
    GET  /metrics       prometheus metrics, no token
    GET  /api/data      the session document of the caller
    PUT  /api/data      replace it, POST is accepted too
    GET  /api/export    the document with an export date and the target

STORAGE
    sqlite    a database file in the data dir (default)
    postgres  server.dsn or HOURBOX_DATABASE_URL
    redis     server.redis_url or HOURBOX_REDIS_URL
`

const tokenUsageStr string = `
DESCRIPTION
Prints an HS256 access token for USER signed with server.jwt_secret. Put it
in remote.token or HOURBOX_TOKEN on the client. The client never refreshes
tokens, mint a new one when it expires.

EXAMPLES
1. hourbox token alice
2. HOURBOX_TOKEN=$(hourbox token alice --ttl 720) hourbox sync
`
