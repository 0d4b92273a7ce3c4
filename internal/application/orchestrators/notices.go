package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"cafepc/internal/domain/notice"
)

// NoticeStoreForOrchestrator defines the store interface needed by the
// notice orchestrators.
type NoticeStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (notice.Notice, error)
	Save(ctx context.Context, n notice.Notice) error
	Delete(ctx context.Context, id string) error
}

// CreateNoticeInput carries input for creating a lock-screen notice.
type CreateNoticeInput struct {
	Title     string
	Content   string
	Color     string
	CreatedBy string // admin ID
}

// NoticeDeps holds dependencies for the notice orchestrators.
type NoticeDeps struct {
	NoticeStore NoticeStoreForOrchestrator
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteCreateNotice creates a draft notice. Empty color defaults to orange.
// PRE: Title and content are non-empty; color is a valid preset or empty
// POST: Draft stored; not yet visible on the lock screen
func ExecuteCreateNotice(ctx context.Context, input CreateNoticeInput, deps NoticeDeps) (notice.Notice, error) {
	color := input.Color
	if color == "" {
		color = notice.ColorOrange
	}

	n := notice.Notice{
		ID:        deps.GenerateID(),
		Status:    notice.StatusDraft,
		Title:     input.Title,
		Content:   input.Content,
		Color:     color,
		CreatedBy: input.CreatedBy,
		CreatedAt: deps.Now(),
	}
	if err := n.Validate(); err != nil {
		return notice.Notice{}, err
	}

	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}

	slog.Info("notice_event", "event", "notice_created", "notice_id", n.ID, "created_by", n.CreatedBy)
	return n, nil
}

// PublishNoticeInput carries input for publishing a draft.
type PublishNoticeInput struct {
	NoticeID string
}

// ExecutePublishNotice makes a draft visible on the lock screen.
// PRE: Notice exists and is a draft
// POST: Status=published, PublishedAt set
func ExecutePublishNotice(ctx context.Context, input PublishNoticeInput, deps NoticeDeps) (notice.Notice, error) {
	n, err := deps.NoticeStore.GetByID(ctx, input.NoticeID)
	if err != nil {
		return notice.Notice{}, err
	}

	if err := n.Publish(deps.Now()); err != nil {
		return notice.Notice{}, err
	}

	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}

	slog.Info("notice_event", "event", "notice_published", "notice_id", n.ID)
	return n, nil
}

// DeleteNoticeInput carries input for removing a notice.
type DeleteNoticeInput struct {
	NoticeID string
}

// ExecuteDeleteNotice removes a notice, draft or published.
// POST: Notice no longer listed anywhere
func ExecuteDeleteNotice(ctx context.Context, input DeleteNoticeInput, deps NoticeDeps) error {
	if err := deps.NoticeStore.Delete(ctx, input.NoticeID); err != nil {
		return err
	}
	slog.Info("notice_event", "event", "notice_deleted", "notice_id", input.NoticeID)
	return nil
}
