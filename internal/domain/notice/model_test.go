package notice_test

import (
	"errors"
	"testing"
	"time"

	"cafepc/internal/domain/notice"
)

// TestNotice_Validate tests validation of Notice.
func TestNotice_Validate(t *testing.T) {
	tests := []struct {
		name    string
		notice  notice.Notice
		wantErr bool
	}{
		{
			name:    "valid draft",
			notice:  notice.Notice{ID: "1", Status: notice.StatusDraft, Title: "Hours", Content: "Open **24/7**", Color: notice.ColorOrange},
			wantErr: false,
		},
		{
			name:    "empty title",
			notice:  notice.Notice{ID: "2", Status: notice.StatusDraft, Title: " ", Content: "x", Color: notice.ColorOrange},
			wantErr: true,
		},
		{
			name:    "empty content",
			notice:  notice.Notice{ID: "3", Status: notice.StatusDraft, Title: "Hours", Content: "", Color: notice.ColorOrange},
			wantErr: true,
		},
		{
			name:    "bad color",
			notice:  notice.Notice{ID: "4", Status: notice.StatusDraft, Title: "Hours", Content: "x", Color: "magenta"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.notice.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Notice.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestNotice_Publish tests the draft to published transition.
func TestNotice_Publish(t *testing.T) {
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	n := notice.Notice{ID: "1", Status: notice.StatusDraft, Title: "Hours", Content: "x", Color: notice.ColorOrange}

	if err := n.Publish(now); err != nil {
		t.Fatalf("Publish() unexpected error: %v", err)
	}
	if n.Status != notice.StatusPublished || !n.PublishedAt.Equal(now) {
		t.Errorf("notice = %+v, want published at %v", n, now)
	}

	if err := n.Publish(now); !errors.Is(err, notice.ErrAlreadyPublished) {
		t.Errorf("second Publish() error = %v, want ErrAlreadyPublished", err)
	}
}
