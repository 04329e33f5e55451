package assistant

import "github.com/poiesic/projectinbox/core"

// Monitor provides hooks to observe an interaction.
// Implement this interface to trace classification and dispatch.
type Monitor interface {
	Start(req Request)
	AfterClassification(intent core.Intent, raw string)
	Finish(result *Result, err error)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ Request)                             {}
func (n *noopMonitor) AfterClassification(_ core.Intent, _ string) {}
func (n *noopMonitor) Finish(_ *Result, _ error)                   {}
