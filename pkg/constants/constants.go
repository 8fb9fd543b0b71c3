package constants

type contextKey string

const (
	PoolKey      contextKey = "pool"
	TxKey        contextKey = "tx"
	UserKey      contextKey = "user"
	RequestIDKey contextKey = "requestID"
)
