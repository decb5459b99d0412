// Package kvstore defines the batched key-value contract session state is
// persisted through, together with ready-made adapters for common backends.
//
// The session layer always reads and writes credentials as one batch: the
// access token, refresh token, and user profile live or die together. Store
// implementations therefore expose only multi-key operations, and each call
// is atomic at the adapter's contract level. GetMulti omits absent keys
// from its result instead of reporting them as errors.
//
// Adapters:
//
//   - MemoryStore:    mutex-guarded map, for tests and ephemeral sessions
//   - FileStore:      single JSON document with atomic writes, for CLI and
//     device clients that persist across restarts
//   - RedisStore:     go-redis client, MSET keeps batches atomic
//   - PostgresStore:  pgx pool, transactional upserts
//   - MongoStore:     collection of {_id, value} documents, bulk writes
//   - EncryptedStore: decorator adding authenticated encryption at rest
//
// The Redis, Postgres, and Mongo adapters accept already-connected client
// handles; ConnectRedis, ConnectPostgres, and ConnectMongo build those
// handles from env-tagged configs with retry, for applications that do not
// manage connections themselves.
//
// Example:
//
//	store, err := kvstore.NewFileStore(filepath.Join(home, ".myapp", "session.json"))
//	if err != nil {
//		return err
//	}
//	sealed, err := kvstore.NewEncryptedStore(store, key)
package kvstore
