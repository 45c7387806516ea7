package types

// Query is a read-only request against the hub.
type Query interface {
	Route() string
}

type QueryConfig struct{}

type QueryState struct{}

type QueryPendingBatch struct{}

type QueryPreviousBatch struct {
	ID uint64 `json:"id" yaml:"id"`
}

type QueryPreviousBatches struct {
	StartAfter *uint64 `json:"start_after,omitempty" yaml:"start_after"`
	Limit      uint32  `json:"limit,omitempty" yaml:"limit"`
}

type QueryUnbondRequestsByBatch struct {
	ID         uint64 `json:"id" yaml:"id"`
	StartAfter string `json:"start_after,omitempty" yaml:"start_after"`
	Limit      uint32 `json:"limit,omitempty" yaml:"limit"`
}

type QueryUnbondRequestsByUser struct {
	User       string  `json:"user" yaml:"user"`
	StartAfter *uint64 `json:"start_after,omitempty" yaml:"start_after"`
	Limit      uint32  `json:"limit,omitempty" yaml:"limit"`
	Details    bool    `json:"details,omitempty" yaml:"details"`
}

func (QueryConfig) Route() string                { return "config" }
func (QueryState) Route() string                 { return "state" }
func (QueryPendingBatch) Route() string          { return "pending_batch" }
func (QueryPreviousBatch) Route() string         { return "previous_batch" }
func (QueryPreviousBatches) Route() string       { return "previous_batches" }
func (QueryUnbondRequestsByBatch) Route() string { return "unbond_requests_by_batch" }
func (QueryUnbondRequestsByUser) Route() string  { return "unbond_requests_by_user" }
