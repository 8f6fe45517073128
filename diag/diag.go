package diag

import (
	"encoding/json"
	"sync"

	"github.com/koxudaxi/go-datamodel-codegen/log"
)

// Severity classifies a diagnostic record.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Code names the specific diagnostic condition, so callers can filter
// programmatically instead of matching message text.
type Code string

const (
	CodeDiscriminatorMappingGap Code = "discriminator_mapping_gap" // discriminator without a matching oneOf branch
	CodeUnusedRef               Code = "unused_ref"
	CodeDanglingRef             Code = "dangling_ref"
	CodeNameCollisionRecovered  Code = "name_collision_recovered"
)

// Diagnostic is one entry in the channel spec §7 requires alongside the
// artifact set: "Warnings ... are collected into a diagnostics channel
// exposed alongside the artifact set."
type Diagnostic struct {
	Severity  Severity `json:"severity"`
	Code      Code     `json:"code"`
	Message   string   `json:"message"`
	Path      string   `json:"path,omitempty"`      // offending schema path, spec §7
	SourceURI string   `json:"source_uri,omitempty"`
}

// Channel collects diagnostics during a pipeline run and fans them out to
// subscribers via a [log.Publisher] -- built directly on the teacher's
// fan-out mechanism, repurposed to carry structured records (marshaled to
// one JSON line each) instead of raw log bytes.
type Channel struct {
	mu        sync.Mutex
	records   []Diagnostic
	publisher *log.Publisher
}

// NewChannel creates an empty diagnostics channel.
func NewChannel() *Channel {
	return &Channel{publisher: log.NewPublisher()}
}

// Report appends d to the channel's record set and publishes it as a
// single JSON line to any subscriber. Safe for concurrent use (the core
// itself is single-threaded per spec §5, but a caller may read the
// channel from another goroutine while the pipeline runs).
func (c *Channel) Report(d Diagnostic) {
	c.mu.Lock()
	c.records = append(c.records, d)
	c.mu.Unlock()

	line, err := json.Marshal(d)
	if err != nil {
		return
	}

	line = append(line, '\n')
	_, _ = c.publisher.Write(line)
}

// All returns every diagnostic reported so far, in report order.
func (c *Channel) All() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Diagnostic, len(c.records))
	copy(out, c.records)

	return out
}

// Subscribe drains diagnostics alongside the artifact set without
// blocking the pipeline (spec §7).
func (c *Channel) Subscribe() *log.Subscription {
	return c.publisher.Subscribe()
}

// Close shuts down the underlying publisher, closing every live
// subscription.
func (c *Channel) Close() error {
	return c.publisher.Close()
}
