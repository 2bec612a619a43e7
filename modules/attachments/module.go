// Package attachments stores non-CSV uploads as opaque objects in a NATS
// JetStream object store.
package attachments

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
)

// AttachmentsModule provides opaque file storage.
type AttachmentsModule struct {
	store   *JetStreamObjectStore
	service *Service
	natsURL string
	bucket  string
}

// Compile-time interface checks.
var _ mono.Module = (*AttachmentsModule)(nil)
var _ mono.HealthCheckableModule = (*AttachmentsModule)(nil)

// NewModule creates a new AttachmentsModule.
func NewModule() *AttachmentsModule {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}
	bucket := os.Getenv("ATTACHMENTS_BUCKET")
	if bucket == "" {
		bucket = "attachments"
	}
	return &AttachmentsModule{
		natsURL: natsURL,
		bucket:  bucket,
	}
}

// Name returns the module name.
func (m *AttachmentsModule) Name() string {
	return "attachments"
}

// Start connects to NATS and binds the attachment bucket.
func (m *AttachmentsModule) Start(ctx context.Context) error {
	store, err := NewJetStreamObjectStore(m.natsURL, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to create object store client: %w", err)
	}
	if err := store.Init(ctx); err != nil {
		store.Close()
		return fmt.Errorf("failed to initialize object store: %w", err)
	}

	m.store = store
	m.service = NewService(store)

	log.Printf("[attachments] Module started (bucket: %s)", m.bucket)
	return nil
}

// Stop closes the NATS connection.
func (m *AttachmentsModule) Stop(_ context.Context) error {
	if m.store != nil {
		m.store.Close()
	}
	log.Println("[attachments] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AttachmentsModule) Health(_ context.Context) mono.HealthStatus {
	if m.store == nil || !m.store.Connected() {
		return mono.HealthStatus{
			Healthy: false,
			Message: "not connected to NATS",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"bucket": m.bucket,
		},
	}
}

// GetService returns the attachment service for direct injection.
func (m *AttachmentsModule) GetService() *Service {
	return m.service
}
