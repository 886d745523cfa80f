package core

import (
	"context"
	"fmt"
	"io"

	"claimcore/internal/blob"
	"claimcore/pkg/domain"
)

// AttachDocumentationFile stores an evidence file in the blob backend and
// creates the documentation record pointing at it. The blob key is derived
// from the claim graph: claims/<claim>/items/<item>/docs/<filename>. When the
// record cannot be committed the uploaded blob is removed again.
func (s *Service) AttachDocumentationFile(ctx context.Context, doc Documentation, filename string, contentType string, r io.Reader) (Documentation, Result, error) {
	ctx, finish := s.instrument(ctx, "attach_documentation_file")
	if s.blobs == nil {
		err := fmt.Errorf("no blob store configured")
		finish(0, err)
		return Documentation{}, Result{}, err
	}
	if filename == "" {
		err := domain.ValidationError{Entity: EntityDocumentation, Field: "file", Message: "filename must not be empty"}
		finish(0, err)
		return Documentation{}, Result{}, err
	}

	var claimID int64
	err := s.store.View(ctx, func(view RuleView) error {
		item, ok := view.FindItem(doc.ItemID)
		if !ok {
			return domain.ReferenceError{Entity: EntityDocumentation, Field: "item_id", Parent: EntityItem, ID: doc.ItemID}
		}
		room, ok := view.FindRoom(item.RoomID)
		if !ok {
			return domain.ValidationError{Entity: EntityDocumentation, Field: "item_id", Message: fmt.Sprintf("item %d is orphaned, attach files before deleting its room", item.ID)}
		}
		claimID = room.ClaimID
		return nil
	})
	if err != nil {
		finish(0, err)
		return Documentation{}, Result{}, err
	}

	key := fmt.Sprintf("claims/%d/items/%d/docs/%s", claimID, doc.ItemID, filename)
	if _, err := s.blobs.Put(ctx, key, r, blob.PutOptions{
		ContentType: contentType,
		Metadata:    map[string]string{"uploaded_by": fmt.Sprintf("%d", doc.UserID)},
	}); err != nil {
		finish(0, err)
		return Documentation{}, Result{}, err
	}

	// The record stores the blob key, not a driver URL, so the backing store
	// can change without rewriting documentation rows.
	doc.FileURL = key
	created, res, err := s.CreateDocumentation(ctx, doc)
	if err != nil {
		if _, delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.logger.Warn("orphaned blob after failed documentation create", "key", key, "error", delErr)
		}
		finish(0, err)
		return Documentation{}, res, err
	}
	finish(created.ID, nil)
	return created, res, nil
}

// OpenDocumentationFile resolves a documentation record and streams its blob.
// Records whose FileURL is an external URL (no stored blob) are unsupported.
func (s *Service) OpenDocumentationFile(ctx context.Context, id int64) (blob.Info, io.ReadCloser, error) {
	if s.blobs == nil {
		return blob.Info{}, nil, fmt.Errorf("no blob store configured")
	}
	doc, err := s.store.GetDocumentation(ctx, id)
	if err != nil {
		return blob.Info{}, nil, err
	}
	return s.blobs.Get(ctx, doc.FileURL)
}
