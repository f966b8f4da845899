package pagination

import "testing"

func TestPageRequestDefaults(t *testing.T) {
	t.Run("fills_unset_values", func(t *testing.T) {
		req := PageRequest{}
		req.Defaults()
		if req.Page != 1 || req.PageSize != DefaultPageSize {
			t.Errorf("expected page 1 size %d, got %d/%d", DefaultPageSize, req.Page, req.PageSize)
		}
	})

	t.Run("keeps_provided_values", func(t *testing.T) {
		req := PageRequest{Page: 3, PageSize: 5}
		req.Defaults()
		if req.Page != 3 || req.PageSize != 5 {
			t.Errorf("expected 3/5 preserved, got %d/%d", req.Page, req.PageSize)
		}
		if req.Offset() != 10 {
			t.Errorf("expected offset 10, got %d", req.Offset())
		}
	})
}

func TestNewPageResponse(t *testing.T) {
	t.Run("rounds_total_pages_up", func(t *testing.T) {
		resp := NewPageResponse([]string{"a", "b"}, 2, 2, 5)
		if resp.TotalPages != 3 {
			t.Errorf("expected 3 pages for 5 items of 2, got %d", resp.TotalPages)
		}
		if resp.TotalItems != 5 || resp.Page != 2 || resp.PageSize != 2 {
			t.Errorf("unexpected metadata: %+v", resp)
		}
	})

	t.Run("exact_fit", func(t *testing.T) {
		resp := NewPageResponse([]int{1, 2, 3}, 1, 3, 6)
		if resp.TotalPages != 2 {
			t.Errorf("expected 2 pages for 6 items of 3, got %d", resp.TotalPages)
		}
	})

	t.Run("nil_data_becomes_empty_slice", func(t *testing.T) {
		resp := NewPageResponse[int](nil, 1, 20, 0)
		if resp.Data == nil || len(resp.Data) != 0 {
			t.Errorf("expected empty non-nil data, got %v", resp.Data)
		}
		if resp.TotalPages != 0 {
			t.Errorf("expected 0 pages, got %d", resp.TotalPages)
		}
	})
}
