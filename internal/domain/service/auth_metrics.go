package service

// Outcome labels shared by AuthMetrics implementations.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// AuthMetrics records authentication events. Implementations must be safe for concurrent use.
type AuthMetrics interface {
	ObserveLogin(outcome string)
	ObserveRefresh(outcome string)
	ObserveIntrospection(active bool)
	ObserveTokenIssued(purpose TokenPurpose)
}

// NopAuthMetrics discards every observation.
type NopAuthMetrics struct{}

func (NopAuthMetrics) ObserveLogin(string)             {}
func (NopAuthMetrics) ObserveRefresh(string)           {}
func (NopAuthMetrics) ObserveIntrospection(bool)       {}
func (NopAuthMetrics) ObserveTokenIssued(TokenPurpose) {}
