package adapter

// LedgerMetrics receives counters emitted by the ledger use cases.
type LedgerMetrics interface {
	// ObserveEnsure records the outcome of one ensure run.
	ObserveEnsure(created, skipped, conflicts int)

	// ObserveObligationChange records a pay, unpay or delete on an instance.
	ObserveObligationChange(action string)
}

// NopLedgerMetrics discards every observation.
type NopLedgerMetrics struct{}

// ObserveEnsure implements LedgerMetrics.
func (NopLedgerMetrics) ObserveEnsure(int, int, int) {}

// ObserveObligationChange implements LedgerMetrics.
func (NopLedgerMetrics) ObserveObligationChange(string) {}
