package port

//go:generate mockgen -source=tx_port.go -destination=../mocks/mock_tx_port.go -package=mocks

import "context"

// TxManager wraps a unit of work in a database transaction. The active
// transaction travels in the context so repositories join it transparently;
// fn returning an error rolls everything back.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
