package projections

import (
	"context"

	noticeStore "cafepc/internal/adapters/storage/notice"
	"cafepc/internal/domain/notice"
)

// NoticeLister defines the notice reads used by the board projections.
type NoticeLister interface {
	List(ctx context.Context, filter noticeStore.ListFilter) ([]notice.Notice, error)
}

// QueryGetPublishedNotices returns the lock-screen board, newest first.
func QueryGetPublishedNotices(ctx context.Context, notices NoticeLister) ([]notice.Notice, error) {
	return notices.List(ctx, noticeStore.ListFilter{Status: notice.StatusPublished})
}

// QueryGetAllNotices returns drafts and published notices for the admin
// board editor, newest first.
func QueryGetAllNotices(ctx context.Context, notices NoticeLister) ([]notice.Notice, error) {
	return notices.List(ctx, noticeStore.ListFilter{})
}
