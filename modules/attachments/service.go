package attachments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Attachment is the metadata of one stored non-CSV upload.
type Attachment struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	StoredAt    time.Time `json:"storedAt"`
}

// Service stores and retrieves opaque attachments. Objects are keyed
// "<uuid>/<original name>" so the original filename survives round trips.
type Service struct {
	store ObjectStore
}

// NewService creates a new attachment service.
func NewService(store ObjectStore) *Service {
	return &Service{store: store}
}

// Store persists an uploaded file and returns its metadata.
func (s *Service) Store(ctx context.Context, name string, data []byte, contentType string) (*Attachment, error) {
	if name == "" {
		return nil, fmt.Errorf("attachment name is required")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("attachment data is empty")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	id := uuid.New().String()
	info, err := s.store.Put(ctx, id+"/"+name, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	return &Attachment{
		ID:          id,
		Name:        name,
		Size:        int64(info.Size),
		ContentType: contentType,
		StoredAt:    info.ModTime,
	}, nil
}

// List returns metadata for every stored attachment.
func (s *Service) List(ctx context.Context) ([]*Attachment, error) {
	objects, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	attachments := make([]*Attachment, 0, len(objects))
	for _, obj := range objects {
		id, name, ok := splitObjectName(obj.Name)
		if !ok {
			continue
		}
		attachments = append(attachments, &Attachment{
			ID:          id,
			Name:        name,
			Size:        int64(obj.Size),
			ContentType: obj.ContentType,
			StoredAt:    obj.ModTime,
		})
	}
	return attachments, nil
}

// Get retrieves an attachment's data and metadata by id.
func (s *Service) Get(ctx context.Context, id string) ([]byte, *Attachment, error) {
	objectName, err := s.findObjectName(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data, info, err := s.store.Get(ctx, objectName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get attachment: %w", err)
	}

	_, name, _ := splitObjectName(objectName)
	return data, &Attachment{
		ID:          id,
		Name:        name,
		Size:        int64(info.Size),
		ContentType: info.ContentType,
		StoredAt:    info.ModTime,
	}, nil
}

// Delete removes an attachment by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	objectName, err := s.findObjectName(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, objectName); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return nil
}

func (s *Service) findObjectName(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("attachment id is required")
	}

	objects, err := s.store.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list attachments: %w", err)
	}
	for _, obj := range objects {
		if strings.HasPrefix(obj.Name, id+"/") {
			return obj.Name, nil
		}
	}
	return "", fmt.Errorf("attachment not found: %s", id)
}

func splitObjectName(objectName string) (id, name string, ok bool) {
	id, name, ok = strings.Cut(objectName, "/")
	if !ok || id == "" || name == "" {
		return "", "", false
	}
	return id, name, true
}
