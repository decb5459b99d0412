package kvstore

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrFailedToParsePostgresConfig  = errors.New("failed to parse postgres connection string")
	ErrPostgresNotReady             = errors.New("postgres did not become ready within the given time period")
	ErrMongoNotReady                = errors.New("mongo did not become ready within the given time period")

	ErrInvalidFilePath      = errors.New("invalid storage file path")
	ErrCorruptStorageFile   = errors.New("corrupt storage file")
	ErrInvalidEncryptionKey = errors.New("invalid encryption key length")
	ErrEncryptionFailed     = errors.New("failed to encrypt stored value")
	ErrDecryptionFailed     = errors.New("failed to decrypt stored value")
)
