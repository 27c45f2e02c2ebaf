package memory

import "context"

// TxManager satisfies the port without real transactions. The store
// repos lock per call, so fn runs unscoped and nothing rolls back.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
